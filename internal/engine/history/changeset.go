package history

import (
	"fmt"
	"time"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// ChangeSet is one undo unit.
type ChangeSet struct {
	Seq          int
	Name         string
	Edits        []buffer.Edit
	CursorBefore buffer.Position
	CursorAfter  buffer.Position
	Time         time.Time
}

// IsEmpty reports whether the set holds no edits.
func (cs *ChangeSet) IsEmpty() bool {
	return len(cs.Edits) == 0
}

// Span returns the byte range touched by the set in post-change
// coordinates. ok is false for an empty set.
func (cs *ChangeSet) Span() (start, end int, ok bool) {
	if cs.IsEmpty() {
		return 0, 0, false
	}
	start, end = cs.Edits[0].Start, cs.Edits[0].NewEnd()
	for _, e := range cs.Edits[1:] {
		s, _ := e.TransformOffset(start)
		t, _ := e.TransformOffset(end)
		start, end = min(s, e.Start), max(t, e.NewEnd())
	}
	return start, end, true
}

// apply replays the edits forward.
func (cs *ChangeSet) apply(buf *buffer.Buffer) error {
	for i, e := range cs.Edits {
		if _, err := buf.Apply(e); err != nil {
			rollback(buf, invertAll(cs.Edits[:i]))
			return fmt.Errorf("redo %q: %w", cs.Name, err)
		}
	}
	return nil
}

// revert applies the inverse edits in reverse order.
func (cs *ChangeSet) revert(buf *buffer.Buffer) error {
	inv := invertAll(cs.Edits)
	for i, e := range inv {
		if _, err := buf.Apply(e); err != nil {
			rollback(buf, invertAll(inv[:i]))
			return fmt.Errorf("undo %q: %w", cs.Name, err)
		}
	}
	return nil
}

// invertAll returns the inverses of edits in reverse order.
func invertAll(edits []buffer.Edit) []buffer.Edit {
	out := make([]buffer.Edit, len(edits))
	for i, e := range edits {
		out[len(edits)-1-i] = e.Invert()
	}
	return out
}

func rollback(buf *buffer.Buffer, edits []buffer.Edit) {
	for _, e := range edits {
		_, _ = buf.Apply(e)
	}
}

func (cs *ChangeSet) clone() ChangeSet {
	c := *cs
	c.Edits = append([]buffer.Edit(nil), cs.Edits...)
	return c
}
