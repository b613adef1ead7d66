package motion

import "github.com/dshills/modalcore/internal/engine/buffer"

// Span is the text an operator acts on. For a linewise span Start and
// End are offsets on the first and last line; otherwise End is
// exclusive.
type Span struct {
	Start, End int
	Linewise   bool
}

// Lines returns the first and last line covered by the span.
func (s Span) Lines(buf *buffer.Buffer) (first, last int) {
	return buf.LineAt(s.Start), buf.LineAt(s.End)
}

// IsEmpty reports whether a charwise span covers nothing.
func (s Span) IsEmpty() bool {
	return !s.Linewise && s.End <= s.Start
}

// Span converts a motion or text object result into the text an operator
// acts on.
//
// Inclusive motions take the character under the far end, except a
// newline. Exclusive motions whose end lands in column 0 of a later line
// end at the end of the previous line instead; if the start is at or
// before the first non-blank of its line the span becomes linewise. This
// is what makes dw on the last word of a line delete the whole line.
func (r Result) Span(buf *buffer.Buffer) Span {
	if r.Linewise {
		return Span{Start: r.Start, End: r.End, Linewise: true}
	}
	start, end := r.Start, r.End
	if r.Object {
		return Span{Start: start, End: end}
	}
	if r.Inclusive {
		if ch, size := buf.RuneAt(end); size > 0 && ch != '\n' {
			end += size
		}
		return Span{Start: start, End: end}
	}

	endPos := buf.Position(end)
	startPos := buf.Position(start)
	if end > start && endPos.Column == 0 && endPos.Line > startPos.Line {
		prev := endPos.Line - 1
		if startPos.Column <= buf.FirstNonBlank(startPos.Line) {
			return Span{Start: buf.LineStart(startPos.Line), End: buf.LineStart(prev), Linewise: true}
		}
		end = buf.LineEnd(prev)
	}
	return Span{Start: start, End: end}
}
