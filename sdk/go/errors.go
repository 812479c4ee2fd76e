package overseer

import (
	"errors"
	"fmt"
)

// Sentinel errors reported to the error handler. None of them are ever
// returned from the public event API.
var (
	// ErrNotInitialized indicates a send was attempted without an active session.
	ErrNotInitialized = errors.New("overseer: session not initialized")

	// ErrQueueFull indicates the background queue had no room for a payload.
	ErrQueueFull = errors.New("overseer: send queue full")

	// ErrInvalidEventType indicates an event type outside the known set.
	ErrInvalidEventType = errors.New("overseer: invalid event type")

	// ErrInvalidCoordinate indicates a NaN or infinite coordinate.
	ErrInvalidCoordinate = errors.New("overseer: coordinate must be finite")
)

// StatusError is reported when Overseer answers with a non-200 status.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("overseer: %s returned status %d", e.Path, e.StatusCode)
}
