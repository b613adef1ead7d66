package history

import "errors"

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// ExhaustedError is returned by Undo or Redo on an empty stack. Its message
// is the status line text shown to the user.
type ExhaustedError struct {
	Redo bool
}

func (e *ExhaustedError) Error() string {
	if e.Redo {
		return "Already at newest change"
	}
	return "Already at oldest change"
}

// Is matches ErrNothingToUndo or ErrNothingToRedo.
func (e *ExhaustedError) Is(target error) bool {
	if e.Redo {
		return target == ErrNothingToRedo
	}
	return target == ErrNothingToUndo
}
