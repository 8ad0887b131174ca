package core

import (
	"errors"
)

// Usage errors. The caller broke a precondition.
var (
	ErrOddLineCount        = errors.New("lines requires an even number of points")
	ErrDisposed            = errors.New("buffer used after dispose")
	ErrInvalidCapacity     = errors.New("capacity must not be negative")
	ErrInvalidDrawMode     = errors.New("invalid draw mode")
	ErrExpansionInProgress = errors.New("expansion already in progress")
	ErrNoExpansion         = errors.New("no expansion scheduled this frame")
	ErrNotInitialized      = errors.New("context is not initialized")
	ErrAlreadyInitialized  = errors.New("context is already initialized")
)

// Capacity errors.
var (
	ErrStreamTooLarge = errors.New("command stream would grow past its size limit")
)

// Stream integrity errors. A stream that produces one of these cannot be expanded.
var (
	ErrUnknownCommand   = errors.New("unknown command tag")
	ErrStreamTruncated  = errors.New("command stream ends inside a record")
	ErrStreamMisaligned = errors.New("decode did not end on the stream size")
	ErrCorruptRecord    = errors.New("malformed command record")
)
