package cursor

import "github.com/dshills/modalcore/internal/engine/buffer"

// Transform moves the cursor past edit e. A cursor inside deleted text
// lands on the start of the edit.
func (c Cursor) Transform(e buffer.Edit) Cursor {
	off, _ := e.TransformOffset(c.Offset)
	return c.Keep(off)
}

// Transform moves both ends of the selection past edit e.
func (s Selection) Transform(e buffer.Edit) Selection {
	a, _ := e.TransformOffset(s.Anchor)
	h, _ := e.TransformOffset(s.Head)
	return Selection{Anchor: a, Head: h}
}

// TransformAll applies a sequence of edits in order.
func TransformAll(offset int, edits []buffer.Edit) int {
	for _, e := range edits {
		offset, _ = e.TransformOffset(offset)
	}
	return offset
}
