package buffer

import (
	"io"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/modalcore/internal/engine/rope"
)

// Observer is notified after every successful mutation with the edit that
// was applied, in post-application order. Observers run outside the buffer
// lock and may read the buffer.
type Observer interface {
	BufferChanged(e Edit)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(e Edit)

// BufferChanged calls f(e).
func (f ObserverFunc) BufferChanged(e Edit) { f(e) }

// Buffer wraps a Rope with line/column addressing and change notification.
type Buffer struct {
	mu        sync.RWMutex
	rope      rope.Rope
	revision  uint64
	tabWidth  int
	observers []observerEntry
	nextObs   int
}

type observerEntry struct {
	id int
	o  Observer
}

// New creates a buffer holding text. CRLF and lone CR line endings are
// normalized to LF.
func New(text string, opts ...Option) *Buffer {
	b := &Buffer{
		rope:     rope.FromString(normalizeLineEndings(text)),
		tabWidth: DefaultTabWidth,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromReader creates a buffer from everything readable from r.
func NewFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(string(data), opts...), nil
}

func normalizeLineEndings(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// AddObserver registers o and returns a function that unregisters it.
func (b *Buffer) AddObserver(o Observer) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextObs++
	id := b.nextObs
	b.observers = append(b.observers, observerEntry{id: id, o: o})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, x := range b.observers {
			if x.id == id {
				b.observers = append(b.observers[:i:i], b.observers[i+1:]...)
				return
			}
		}
	}
}

// Text returns the full content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.String()
}

// Len returns the byte length.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.Len()
}

// IsEmpty reports whether the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// LineCount returns the number of lines; never less than one.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineCount()
}

// Revision returns a counter incremented by every mutation.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// TabWidth returns the tab width used for display columns.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// SetTabWidth changes the tab width; non-positive values are ignored.
func (b *Buffer) SetTabWidth(width int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if width > 0 {
		b.tabWidth = width
	}
}

// Slice returns the text in r, clamped to the buffer.
func (b *Buffer) Slice(r Range) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.Slice(r.Start, r.End)
}

// ===========================================================================
// Mutation
// ===========================================================================

// Insert inserts text at offset and returns the inverse edit.
func (b *Buffer) Insert(offset int, text string) (Edit, error) {
	return b.Replace(Range{Start: offset, End: offset}, text)
}

// Delete removes the text in r and returns the inverse edit.
func (b *Buffer) Delete(r Range) (Edit, error) {
	return b.Replace(r, "")
}

// Replace replaces the text in r and returns the inverse edit.
func (b *Buffer) Replace(r Range, text string) (Edit, error) {
	b.mu.Lock()
	n := b.rope.Len()
	if r.Start < 0 || r.Start > n || r.End > n {
		b.mu.Unlock()
		return Edit{}, &BoundsError{Op: "replace", Offset: max(r.Start, r.End), Limit: n}
	}
	r = NewRange(r.Start, r.End)
	e := Edit{Start: r.Start, OldText: b.rope.Slice(r.Start, r.End), NewText: text}
	return b.commit(e)
}

// Apply applies e after checking that the buffer still holds e.OldText at
// e.Start. It returns the inverse edit.
func (b *Buffer) Apply(e Edit) (Edit, error) {
	b.mu.Lock()
	n := b.rope.Len()
	if e.Start < 0 || e.OldEnd() > n {
		b.mu.Unlock()
		return Edit{}, &BoundsError{Op: "apply", Offset: e.OldEnd(), Limit: n}
	}
	if b.rope.Slice(e.Start, e.OldEnd()) != e.OldText {
		b.mu.Unlock()
		return Edit{}, ErrStaleEdit
	}
	return b.commit(e)
}

// commit applies e with the lock held, releases it and notifies observers.
func (b *Buffer) commit(e Edit) (Edit, error) {
	if e.IsNoOp() {
		b.mu.Unlock()
		return e.Invert(), nil
	}
	b.rope = b.rope.Replace(e.Start, e.OldEnd(), e.NewText)
	b.revision++
	observers := append([]observerEntry(nil), b.observers...)
	b.mu.Unlock()

	for _, x := range observers {
		x.o.BufferChanged(e)
	}
	return e.Invert(), nil
}

// ===========================================================================
// Lines and coordinates
// ===========================================================================

// LineRange returns the byte range of line, excluding its newline.
func (b *Buffer) LineRange(line int) (Range, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= b.rope.LineCount() {
		return Range{}, &BoundsError{Op: "line range", Pos: &Position{Line: line}}
	}
	return Range{Start: b.rope.LineStart(line), End: b.rope.LineEnd(line)}, nil
}

// LineText returns the text of line without its newline, or "" when the
// line does not exist.
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= b.rope.LineCount() {
		return ""
	}
	return b.rope.Line(line)
}

// LineLen returns the number of characters on line, excluding the newline.
func (b *Buffer) LineLen(line int) int {
	return utf8.RuneCountInString(b.LineText(line))
}

// LineStart returns the byte offset where line starts, clamped.
func (b *Buffer) LineStart(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineStart(line)
}

// LineEnd returns the byte offset of line's newline (or the buffer end).
func (b *Buffer) LineEnd(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineEnd(line)
}

// LineAt returns the line containing offset.
func (b *Buffer) LineAt(offset int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineAt(offset)
}

// OffsetToPosition converts a byte offset to a line/column position.
func (b *Buffer) OffsetToPosition(offset int) (Position, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset > b.rope.Len() {
		return Position{}, &BoundsError{Op: "offset to position", Offset: offset, Limit: b.rope.Len()}
	}
	line := b.rope.LineAt(offset)
	start := b.rope.LineStart(line)
	return Position{Line: line, Column: b.rope.RunesBefore(offset) - b.rope.RunesBefore(start)}, nil
}

// PositionToOffset converts a line/column position to a byte offset. The
// column may equal the line length (the position after the last character).
func (b *Buffer) PositionToOffset(p Position) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if p.Line < 0 || p.Line >= b.rope.LineCount() || p.Column < 0 {
		return 0, &BoundsError{Op: "position to offset", Pos: &p}
	}
	start := b.rope.LineStart(p.Line)
	text := b.rope.Line(p.Line)
	idx, ok := runeIndex(text, p.Column)
	if !ok {
		return 0, &BoundsError{Op: "position to offset", Pos: &p}
	}
	return start + idx, nil
}

// ClampPosition returns the nearest valid position to p.
func (b *Buffer) ClampPosition(p Position) Position {
	lines := b.LineCount()
	p.Line = max(0, min(p.Line, lines-1))
	p.Column = max(0, min(p.Column, b.LineLen(p.Line)))
	return p
}

// Offset converts p to an offset after clamping it.
func (b *Buffer) Offset(p Position) int {
	off, _ := b.PositionToOffset(b.ClampPosition(p))
	return off
}

// Position converts offset to a position after clamping it.
func (b *Buffer) Position(offset int) Position {
	p, _ := b.OffsetToPosition(max(0, min(offset, b.Len())))
	return p
}

// RuneAt returns the rune starting at offset and its size, or
// (utf8.RuneError, 0) at the end of the buffer.
func (b *Buffer) RuneAt(offset int) (rune, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset >= b.rope.Len() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(b.rope.Slice(offset, offset+utf8.UTFMax))
}

// RuneBefore returns the rune ending at offset and its size.
func (b *Buffer) RuneBefore(offset int) (rune, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset <= 0 || offset > b.rope.Len() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeLastRuneInString(b.rope.Slice(offset-utf8.UTFMax, offset))
}

// FirstNonBlank returns the column of the first non-blank character on
// line, or the line length when the line is blank.
func (b *Buffer) FirstNonBlank(line int) int {
	col := 0
	for _, r := range b.LineText(line) {
		if r != ' ' && r != '\t' {
			return col
		}
		col++
	}
	return col
}

// IsBlankLine reports whether line holds only whitespace.
func (b *Buffer) IsBlankLine(line int) bool {
	return strings.TrimFunc(b.LineText(line), unicode.IsSpace) == ""
}

// Snapshot returns an immutable view of the current content.
func (b *Buffer) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Snapshot{rope: b.rope, revision: b.revision, tabWidth: b.tabWidth}
}

// runeIndex returns the byte index of the col-th rune in s. col may equal
// the rune count of s.
func runeIndex(s string, col int) (int, bool) {
	i := 0
	for n := 0; n < col; n++ {
		if i >= len(s) {
			return 0, false
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i, true
}
