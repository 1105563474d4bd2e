package health

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Status represents the aggregated readiness status.
type Status string

const (
	// Ready indicates all dependencies answered.
	Ready Status = "ok"
	// Degraded indicates at least one dependency failed.
	Degraded Status = "degraded"
)

// CheckResult represents an individual dependency check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing check.
	CheckError CheckResult = "error"
)

// Check names.
const (
	CheckVectorStore = "vector_store"
	CheckEmbedding   = "embedding"
)

const defaultCheckTimeout = 3 * time.Second

// Report aggregates readiness check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Ready reports whether every check passed.
func (r Report) Ready() bool { return r.Status == Ready }

// Service probes the upstream dependencies of the gateway.
type Service struct {
	store    StorePinger
	provider ProviderChecker
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates a Service. provider can be nil.
func New(store StorePinger, provider ProviderChecker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, provider: provider, timeout: defaultCheckTimeout, logger: logger}
}

// Check runs every dependency probe, each bounded by its own timeout.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)

	checks[CheckVectorStore] = s.probe(ctx, CheckVectorStore, s.store.Ping)
	if s.provider != nil {
		checks[CheckEmbedding] = s.probe(ctx, CheckEmbedding, s.provider.HealthCheck)
	}

	status := Ready
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

func (s *Service) probe(ctx context.Context, name string, fn func(context.Context) error) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		s.logger.Warn("readiness check failed", zap.String("check", name), zap.Error(err))
		return CheckError
	}
	return CheckOK
}
