package pipeline

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/semsearch/internal/domain"
	"github.com/kailas-cloud/semsearch/internal/logger"
	"github.com/kailas-cloud/semsearch/internal/metrics"
)

// StepCompleted is the status recorded for a finished step.
const StepCompleted = "completed"

// CompletedMessage is the message of a successful run.
const CompletedMessage = "Data processing workflow completed successfully"

// Report describes one pipeline run. A failed run is still a Report:
// Success is false and Error/Stack describe the failing step.
type Report struct {
	RunID   string
	Success bool
	Message string
	Steps   map[string]string
	Error   string
	Stack   string
}

// Service runs the configured steps in order.
type Service struct {
	steps  []Step
	runner Runner
	logger *zap.Logger
	newID  func() string
}

// New creates a pipeline service.
func New(steps []Step, runner Runner, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		steps:  steps,
		runner: runner,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// Run executes every step sequentially and stops at the first failure.
// Step failures are reported in the Report; the error return is reserved
// for a pipeline that cannot run at all.
func (s *Service) Run(ctx context.Context) (Report, error) {
	if len(s.steps) == 0 {
		return Report{}, fmt.Errorf("pipeline has no steps: %w", domain.ErrNotImplemented)
	}

	runID := s.newID()
	log := logger.FromContext(ctx, s.logger).With(zap.String("run_id", runID))
	log.Info("Starting data processing workflow", zap.Int("steps", len(s.steps)))

	start := time.Now()
	report := Report{RunID: runID, Steps: make(map[string]string, len(s.steps))}

	for i, step := range s.steps {
		log.Info("Running step", zap.Int("n", i+1), zap.String("step", step.Name))
		out, err := s.runner.Run(ctx, step)
		if err != nil {
			log.Error("Data processing step failed", zap.String("step", step.Name), zap.Error(err))
			metrics.PipelineRunsTotal.WithLabelValues("error").Inc()
			report.Error = fmt.Sprintf("step %q: %v", step.Name, err)
			report.Stack = string(debug.Stack())
			return report, nil
		}
		if out.Stdout != "" {
			log.Debug("Step output", zap.String("step", step.Name), zap.String("stdout", out.Stdout))
		}
		report.Steps[step.Name] = StepCompleted
	}

	metrics.PipelineRunsTotal.WithLabelValues("ok").Inc()
	log.Info("Data processing workflow completed", zap.Duration("took", time.Since(start)))

	report.Success = true
	report.Message = CompletedMessage
	return report, nil
}
