// Package shell runs external commands for the data-processing pipeline.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/semsearch/internal/usecase/pipeline"
)

// Runner executes pipeline steps as child processes.
type Runner struct {
	logger *zap.Logger
}

// NewRunner creates a Runner.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger}
}

// Run executes step and returns its trimmed stdout. A non-zero exit status
// is an error carrying the tail of stderr.
func (r *Runner) Run(ctx context.Context, step pipeline.Step) (pipeline.Output, error) {
	cmd := exec.CommandContext(ctx, step.Command, step.Args...)
	cmd.Dir = step.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := pipeline.Output{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if err != nil {
		if out.Stderr != "" {
			return out, fmt.Errorf("%s: %w: %s", step.Command, err, tail(out.Stderr, 512))
		}
		return out, fmt.Errorf("%s: %w", step.Command, err)
	}
	if out.Stderr != "" {
		r.logger.Warn("Step wrote to stderr", zap.String("step", step.Name), zap.String("stderr", tail(out.Stderr, 512)))
	}
	return out, nil
}

// tail returns at most the last n bytes of s, starting on a rune boundary.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := len(s) - n
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return s[i:]
}
