package session

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no session is stored under a name.
	ErrNotFound = errors.New("session not found")

	// ErrBufferExists is returned by Apply when a saved buffer id is
	// already open in the dispatcher.
	ErrBufferExists = errors.New("buffer already open")

	// ErrEmptyName is returned when saving a session without a name.
	ErrEmptyName = errors.New("session name is empty")
)

// VersionError reports a saved state written by an incompatible version.
type VersionError struct {
	Got, Want int
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported session version %d (want %d)", e.Got, e.Want)
}
