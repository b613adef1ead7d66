package cursor

import (
	"fmt"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// Selection is a visual selection. Both ends are inclusive: the character
// under the head is selected.
type Selection struct {
	Anchor int
	Head   int
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head int) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// Start returns the lower bound of the selection.
func (s Selection) Start() int {
	return min(s.Anchor, s.Head)
}

// End returns the upper bound of the selection (inclusive).
func (s Selection) End() int {
	return max(s.Anchor, s.Head)
}

// Swap exchanges anchor and head (visual mode o).
func (s Selection) Swap() Selection {
	return Selection{Anchor: s.Head, Head: s.Anchor}
}

// IsForward returns true if the selection extends forward (head >= anchor).
func (s Selection) IsForward() bool {
	return s.Head >= s.Anchor
}

// Range returns the half-open byte range covered by a characterwise
// selection, including the full character under the end.
func (s Selection) Range(buf *buffer.Buffer) buffer.Range {
	end := s.End()
	if _, size := buf.RuneAt(end); size > 0 {
		end += size
	}
	return buffer.Range{Start: s.Start(), End: end}
}

// Lines returns the first and last line touched by the selection.
func (s Selection) Lines(buf *buffer.Buffer) (first, last int) {
	return buf.LineAt(s.Start()), buf.LineAt(s.End())
}

// LineRange returns the byte range of the whole lines touched by the
// selection, including the final newline when there is one.
func (s Selection) LineRange(buf *buffer.Buffer) buffer.Range {
	first, last := s.Lines(buf)
	end := buf.LineEnd(last)
	if last+1 < buf.LineCount() {
		end++
	}
	return buffer.Range{Start: buf.LineStart(first), End: end}
}

// Block is the rectangle of a blockwise selection in display columns.
// Left and Right are inclusive.
type Block struct {
	Top, Bottom int
	Left, Right int
}

// Block computes the rectangle spanned by the selection. When toEOL is set
// ($ in block mode) Right extends to the longest line.
func (s Selection) Block(buf *buffer.Buffer, toEOL bool) Block {
	a := buf.Position(s.Anchor)
	h := buf.Position(s.Head)
	av, hv := buf.VisualColumn(a), buf.VisualColumn(h)
	aw := charWidth(buf, s.Anchor)
	hw := charWidth(buf, s.Head)

	b := Block{Top: min(a.Line, h.Line), Bottom: max(a.Line, h.Line)}
	b.Left = min(av, hv)
	b.Right = max(av+aw-1, hv+hw-1)
	if toEOL {
		for line := b.Top; line <= b.Bottom; line++ {
			w := buffer.DisplayWidth(buf.LineText(line), buf.TabWidth())
			b.Right = max(b.Right, w-1)
		}
	}
	return b
}

// RowRange returns the character columns [start, end) of line covered by
// the block and whether the line reaches the block at all.
func (b Block) RowRange(buf *buffer.Buffer, line int) (start, end int, ok bool) {
	text := buf.LineText(line)
	if buffer.DisplayWidth(text, buf.TabWidth()) <= b.Left {
		return 0, 0, false
	}
	start = buf.ColumnForVisual(line, b.Left)
	end = buf.ColumnForVisual(line, b.Right) + 1
	return start, min(end, buf.LineLen(line)), true
}

// String returns a human-readable representation.
func (s Selection) String() string {
	return fmt.Sprintf("Selection(%d..%d)", s.Anchor, s.Head)
}

func charWidth(buf *buffer.Buffer, offset int) int {
	p := buf.Position(offset)
	w := buf.VisualColumn(buffer.Pos(p.Line, p.Column+1)) - buf.VisualColumn(p)
	return max(w, 1)
}
