package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by buffer operations.
var (
	// ErrOutOfRange is matched by every BoundsError.
	ErrOutOfRange = errors.New("out of range")

	// ErrStaleEdit is returned by Apply when the text at the edit location
	// no longer matches the edit's OldText.
	ErrStaleEdit = errors.New("edit does not match buffer content")
)

// BoundsError reports an offset or position outside the buffer.
type BoundsError struct {
	Op     string
	Offset int
	Pos    *Position
	Limit  int
}

func (e *BoundsError) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("buffer: %s: position %d:%d out of range", e.Op, e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("buffer: %s: offset %d out of range [0, %d]", e.Op, e.Offset, e.Limit)
}

// Is reports whether target is ErrOutOfRange.
func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfRange
}
