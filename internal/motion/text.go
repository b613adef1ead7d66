package motion

import (
	"unicode"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// Character classes for word motions.
const (
	classBlank = iota
	classPunct
	classWord
)

func charClass(r rune, big bool) int {
	if r == ' ' || r == '\t' || r == '\n' || unicode.IsSpace(r) {
		return classBlank
	}
	if big {
		return classPunct
	}
	if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return classWord
	}
	return classPunct
}

// text is a rune cursor over a buffer.
type text struct {
	buf *buffer.Buffer
	n   int
}

func newText(buf *buffer.Buffer) text {
	return text{buf: buf, n: buf.Len()}
}

func (t text) at(off int) rune {
	r, size := t.buf.RuneAt(off)
	if size == 0 {
		return '\n'
	}
	return r
}

func (t text) class(off int, big bool) int {
	return charClass(t.at(off), big)
}

// next returns the offset of the rune after off, or n at the end.
func (t text) next(off int) int {
	_, size := t.buf.RuneAt(off)
	return off + size
}

// prev returns the offset of the rune before off, or 0 at the start.
func (t text) prev(off int) int {
	_, size := t.buf.RuneBefore(off)
	return off - size
}

// emptyLine reports whether off is the start of an empty line.
func (t text) emptyLine(off int) bool {
	if off > t.n {
		return false
	}
	if off < t.n && t.at(off) != '\n' {
		return false
	}
	return off == 0 || t.at(off-1) == '\n'
}

// lastCol returns the column of the last character of line, 0 when empty.
func lastCol(buf *buffer.Buffer, line int) int {
	return max(buf.LineLen(line)-1, 0)
}

// lineOffset returns the offset of col on line, clamping col to the line.
func lineOffset(buf *buffer.Buffer, line, col int) int {
	return buf.Offset(buffer.Pos(line, col))
}

// firstNonBlankOffset returns the offset of the first non-blank character
// of line, or its last character when the line is blank.
func firstNonBlankOffset(buf *buffer.Buffer, line int) int {
	return lineOffset(buf, line, min(buf.FirstNonBlank(line), lastCol(buf, line)))
}

// ClampNormal moves offset onto a character the Normal mode cursor may
// rest on: never on a newline unless the line is empty.
func ClampNormal(buf *buffer.Buffer, offset int) int {
	p := buf.Position(offset)
	if p.Column > lastCol(buf, p.Line) {
		p.Column = lastCol(buf, p.Line)
	}
	return buf.Offset(p)
}

// IsWordEnd reports whether off is on the last character of a word: the
// next character is of another class or ends the line.
func IsWordEnd(buf *buffer.Buffer, off int, big bool) bool {
	t := newText(buf)
	c := t.class(off, big)
	if c == classBlank {
		return false
	}
	next := t.next(off)
	return next >= t.n || t.at(next) == '\n' || t.class(next, big) != c
}

// IsBlank reports whether off is on a space, a tab or a line end.
func IsBlank(buf *buffer.Buffer, off int) bool {
	return newText(buf).class(off, false) == classBlank
}
