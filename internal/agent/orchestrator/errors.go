package orchestrator

import "errors"

var (
	// ErrModelInvocation wraps any failure of the model call. Fatal for the run.
	ErrModelInvocation = errors.New("model invocation failed")

	// ErrMaxIterations is returned when the run hits its iteration ceiling.
	ErrMaxIterations = errors.New("iteration ceiling exceeded")
)
