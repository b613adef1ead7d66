package vim

import "errors"

// ErrInvalidCommand is matched by every InvalidCommandError.
var ErrInvalidCommand = errors.New("invalid command")

// InvalidCommandError reports a key sequence that does not form a
// command. The pending command is discarded without side effects.
type InvalidCommandError struct {
	// Keys is the abandoned sequence in key notation.
	Keys string
}

func (e *InvalidCommandError) Error() string {
	return "invalid command: " + e.Keys
}

// Is reports whether target is ErrInvalidCommand.
func (e *InvalidCommandError) Is(target error) bool {
	return target == ErrInvalidCommand
}
