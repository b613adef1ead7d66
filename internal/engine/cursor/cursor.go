package cursor

import (
	"fmt"
	"math"
)

// WantEOL is the desired column after $: stay at the end of every line.
const WantEOL = math.MaxInt

// Cursor is a position in a buffer plus the display column vertical
// motions try to return to.
type Cursor struct {
	Offset int
	Want   int
}

// New creates a cursor at offset with the desired column unset.
func New(offset int) Cursor {
	return Cursor{Offset: offset, Want: -1}
}

// MoveTo returns a cursor at offset; the desired column is reset.
func (c Cursor) MoveTo(offset int) Cursor {
	return Cursor{Offset: offset, Want: -1}
}

// Keep returns a cursor at offset keeping the desired column.
func (c Cursor) Keep(offset int) Cursor {
	return Cursor{Offset: offset, Want: c.Want}
}

// WithWant returns the cursor with desired column col.
func (c Cursor) WithWant(col int) Cursor {
	c.Want = col
	return c
}

// HasWant reports whether a desired column is set.
func (c Cursor) HasWant() bool {
	return c.Want >= 0
}

// String returns a human-readable representation.
func (c Cursor) String() string {
	if c.Want == WantEOL {
		return fmt.Sprintf("Cursor(%d, want=$)", c.Offset)
	}
	return fmt.Sprintf("Cursor(%d, want=%d)", c.Offset, c.Want)
}
