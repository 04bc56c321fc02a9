package coopsched

import "errors"

// Standard errors returned by this package's API.
var (
	// ErrInvalidArg is returned by Admit when proc is nil.
	ErrInvalidArg = errors.New(`coopsched: invalid argument`)

	// ErrLimit is returned by Admit when the thread pool is full.
	ErrLimit = errors.New(`coopsched: thread pool limit reached`)

	// ErrTimeout is returned by Wait/WaitCond when the wait period elapses
	// before a matching notification arrives.
	ErrTimeout = errors.New(`coopsched: wait timed out`)
)
