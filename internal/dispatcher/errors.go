package dispatcher

import "errors"

// Dispatcher errors. Most reach the user as the Outcome message.
var (
	// ErrNotEditorCommand reports an unknown ex command with no host to
	// forward it to.
	ErrNotEditorCommand = errors.New("E492: Not an editor command")

	// ErrNoPreviousCommand is returned by @: before any ex command.
	ErrNoPreviousCommand = errors.New("E30: No previous command line")

	// ErrUnknownBuffer is returned by Show for an id that is not open.
	ErrUnknownBuffer = errors.New("E86: Buffer does not exist")

	// ErrNumberRequired reports a :set of a number option without a number.
	ErrNumberRequired = errors.New("E521: Number required after =")

	// ErrPositive reports a :set value that must be positive.
	ErrPositive = errors.New("E487: Argument must be positive")

	// ErrInterrupted is reported when Interrupt stops a command.
	ErrInterrupted = errors.New("Interrupted")
)
