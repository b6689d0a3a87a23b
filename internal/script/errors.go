package script

import "errors"

// Errors returned by the script host.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a call runs past its deadline.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNotFunction is returned when a called global is not a function.
	ErrNotFunction = errors.New("not a function")
)
