package buffer

import (
	"github.com/dshills/modalcore/internal/engine/rope"
)

// Snapshot is a read-only view of a buffer at one revision. It never
// changes and is safe to hand to other goroutines.
type Snapshot struct {
	rope     rope.Rope
	revision uint64
	tabWidth int
}

// Text returns the full snapshot content.
func (s Snapshot) Text() string {
	return s.rope.String()
}

// Slice returns the text in r.
func (s Snapshot) Slice(r Range) string {
	return s.rope.Slice(r.Start, r.End)
}

// Len returns the byte length.
func (s Snapshot) Len() int {
	return s.rope.Len()
}

// LineCount returns the number of lines.
func (s Snapshot) LineCount() int {
	return s.rope.LineCount()
}

// LineText returns the text of line without its newline.
func (s Snapshot) LineText(line int) string {
	if line < 0 || line >= s.rope.LineCount() {
		return ""
	}
	return s.rope.Line(line)
}

// Revision returns the buffer revision the snapshot was taken at.
func (s Snapshot) Revision() uint64 {
	return s.revision
}

// TabWidth returns the buffer tab width at snapshot time.
func (s Snapshot) TabWidth() int {
	return s.tabWidth
}
