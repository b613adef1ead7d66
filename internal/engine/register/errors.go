package register

import (
	"errors"
	"fmt"
)

// Errors returned by register operations.
var (
	ErrInvalidRegister = errors.New("E354: Invalid register name")
	ErrReadOnly        = errors.New("E354: Register is read-only")
	ErrEmpty           = errors.New("nothing in register")
)

// EmptyError reports a read from a register holding nothing.
type EmptyError struct {
	Name rune
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("E353: Nothing in register %c", e.Name)
}

// Is matches ErrEmpty.
func (e *EmptyError) Is(target error) bool {
	return target == ErrEmpty
}
