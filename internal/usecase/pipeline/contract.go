package pipeline

import "context"

// Step is one external command of the processing pipeline.
type Step struct {
	Name    string
	Command string
	Args    []string
	Dir     string
}

// Output is what a step printed.
type Output struct {
	Stdout string
	Stderr string
}

// Runner executes a single step.
type Runner interface {
	Run(ctx context.Context, step Step) (Output, error)
}
