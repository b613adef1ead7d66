package buffer

import "fmt"

// Edit replaces the bytes [Start, Start+len(OldText)) with NewText.
// Carrying OldText makes every edit invertible without re-reading the buffer.
type Edit struct {
	Start   int
	OldText string
	NewText string
}

// InsertEdit creates an edit inserting text at offset.
func InsertEdit(offset int, text string) Edit {
	return Edit{Start: offset, NewText: text}
}

// OldEnd returns the end of the replaced range in pre-edit coordinates.
func (e Edit) OldEnd() int {
	return e.Start + len(e.OldText)
}

// NewEnd returns the end of the inserted text in post-edit coordinates.
func (e Edit) NewEnd() int {
	return e.Start + len(e.NewText)
}

// Delta returns the change in buffer length.
func (e Edit) Delta() int {
	return len(e.NewText) - len(e.OldText)
}

// Invert returns the edit that undoes e.
func (e Edit) Invert() Edit {
	return Edit{Start: e.Start, OldText: e.NewText, NewText: e.OldText}
}

// IsNoOp reports whether the edit leaves the text unchanged.
func (e Edit) IsNoOp() bool {
	return e.OldText == e.NewText
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	switch {
	case e.OldText == "":
		return fmt.Sprintf("Insert(%d, %q)", e.Start, e.NewText)
	case e.NewText == "":
		return fmt.Sprintf("Delete(%d, %q)", e.Start, e.OldText)
	default:
		return fmt.Sprintf("Replace(%d, %q -> %q)", e.Start, e.OldText, e.NewText)
	}
}

// TransformOffset maps an offset taken before e was applied to the
// equivalent offset afterwards. Offsets inside the replaced text collapse
// to the start of the edit and report ok == false.
func (e Edit) TransformOffset(offset int) (int, bool) {
	switch {
	case offset < e.Start:
		return offset, true
	case offset >= e.OldEnd():
		// an insertion exactly at offset pushes it forward
		return offset + e.Delta(), true
	default:
		return e.Start, false
	}
}
