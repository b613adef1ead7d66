package macro

import (
	"errors"
	"fmt"
)

// Errors returned by the recorder and player.
var (
	ErrAlreadyRecording = errors.New("already recording")
	ErrNotRecording     = errors.New("not recording")
	ErrNoPrevious       = errors.New("E748: No previously used register")
	ErrInterrupted      = errors.New("Interrupted")

	// ErrRecursion is matched by every RecursionError.
	ErrRecursion = errors.New("E169: Command too recursive")
)

// RecursionError reports macro playback that nested deeper than the
// configured limit. Playback is aborted; the session is not.
type RecursionError struct {
	// Register is the macro that would have exceeded the limit.
	Register rune

	// Depth is the limit.
	Depth int
}

func (e *RecursionError) Error() string {
	return fmt.Sprintf("%s (@%c at depth %d)", ErrRecursion, e.Register, e.Depth)
}

// Is reports whether target is ErrRecursion.
func (e *RecursionError) Is(target error) bool {
	return target == ErrRecursion
}
