package motion

import (
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/cursor"
)

// Viewport is the visible line range of the window the motion runs in.
// H, M and L resolve against it.
type Viewport struct {
	Top, Bottom int
	ScrollOff   int
}

// FindState remembers the last f, F, t or T for ; and ,. It is the only
// state the resolver keeps, and callers own it.
type FindState struct {
	Kind Kind
	Char rune
}

// IsSet reports whether a character search has been made.
func (f *FindState) IsSet() bool {
	return f != nil && f.Kind != None
}

// SearchState remembers the last search pattern and direction for n, N.
type SearchState struct {
	Pattern  string
	Backward bool
}

// IsSet reports whether a search has been made.
func (s *SearchState) IsSet() bool {
	return s != nil && s.Pattern != ""
}

// Env is everything a motion may consult besides the cursor.
type Env struct {
	Buf *buffer.Buffer

	Find    *FindState
	Search  *SearchState
	Matcher Matcher

	// Mark returns the offset of mark name in Buf.
	Mark func(name rune) (int, error)

	View Viewport

	IgnoreCase bool
	SmartCase  bool
	WrapScan   bool

	// PastEnd lets the cursor rest after the last character of a line:
	// true for operator-pending and insert mode.
	PastEnd bool

	// Interrupted is polled between count iterations.
	Interrupted func() bool
}

func (e *Env) stopped() bool {
	return e.Interrupted != nil && e.Interrupted()
}

func (e *Env) matcher() Matcher {
	if e.Matcher == nil {
		return RegexpMatcher{}
	}
	return e.Matcher
}

// Result is the outcome of resolving a motion or selecting a text object.
type Result struct {
	// Cursor is where the cursor goes, with its desired column updated.
	Cursor cursor.Cursor

	// Start and End bound the text covered. For motions they are the
	// cursor and target in order. For charwise objects End is exclusive;
	// for linewise results both are offsets on the first and last line.
	Start, End int

	Linewise  bool
	Inclusive bool

	// Jump is set when the motion should update the jump list.
	Jump bool

	// Object marks results produced by a text object, which skip the
	// exclusive-to-linewise adjustment.
	Object bool

	// Message is informational status, such as a search wrapping.
	Message string
}

// Target returns the offset the cursor moves to.
func (r Result) Target() int {
	return r.Cursor.Offset
}
