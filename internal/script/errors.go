package script

import "errors"

// Errors returned by the engine.
var (
	// ErrClosed is returned when using an engine after Close.
	ErrClosed = errors.New("script engine is closed")

	// ErrTimeout is returned when a chunk or frame runs past its time limit.
	ErrTimeout = errors.New("script timed out")
)
