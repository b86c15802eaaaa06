package sim

import "errors"

var (
	// ErrInvalidConfig indicates a sampler config that cannot be run.
	ErrInvalidConfig = errors.New("sim: invalid config")

	// ErrCanceled indicates the run was interrupted by its context.
	ErrCanceled = errors.New("sim: run canceled by context")
)

// RunError wraps an error with the sampling step it happened at.
type RunError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *RunError) Error() string {
	return e.Wrapped.Error()
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
