package motion

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/cursor"
	"github.com/dshills/modalcore/internal/engine/mark"
)

func newEnv(text string) *Env {
	return &Env{
		Buf:      buffer.New(text),
		Find:     &FindState{},
		Search:   &SearchState{},
		WrapScan: true,
		View:     Viewport{Top: 0, Bottom: 9},
	}
}

func resolve(t *testing.T, env *Env, off int, m Motion, count int) Result {
	t.Helper()
	res, err := Resolve(env, cursor.New(off), m, count)
	if err != nil {
		t.Fatalf("Resolve(%v, %d) error: %v", m, count, err)
	}
	return res
}

func TestMotionTargets(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		off   int
		m     Motion
		count int
		want  int
	}{
		{"w", "foo bar baz", 0, Motion{Kind: WordForward}, 0, 4},
		{"2w", "foo bar baz", 0, Motion{Kind: WordForward}, 2, 8},
		{"w punctuation", "foo.bar", 0, Motion{Kind: WordForward}, 0, 3},
		{"W", "foo.bar baz", 0, Motion{Kind: BigWordForward}, 0, 8},
		{"w stops on empty line", "foo\n\nbar", 0, Motion{Kind: WordForward}, 0, 4},
		{"w to end", "foo\n", 0, Motion{Kind: WordForward}, 0, 4},
		{"b", "foo bar baz", 8, Motion{Kind: WordBackward}, 0, 4},
		{"b mid word", "foo bar", 5, Motion{Kind: WordBackward}, 0, 4},
		{"B", "foo.bar baz", 8, Motion{Kind: BigWordBackward}, 0, 0},
		{"e", "foo bar", 0, Motion{Kind: WordEnd}, 0, 2},
		{"e at end of word", "foo bar", 2, Motion{Kind: WordEnd}, 0, 6},
		{"ge", "foo bar", 5, Motion{Kind: WordEndBackward}, 0, 2},
		{"0", "  abc", 4, Motion{Kind: LineStart}, 0, 0},
		{"^", "  abc", 4, Motion{Kind: FirstNonBlank}, 0, 2},
		{"$", "hello\nworld", 0, Motion{Kind: LineEnd}, 0, 4},
		{"2$", "hello\nworld", 0, Motion{Kind: LineEnd}, 2, 10},
		{"g_", "abc  \n", 0, Motion{Kind: LastNonBlank}, 0, 2},
		{"+", "a\n  b", 0, Motion{Kind: NextLine}, 0, 4},
		{"-", "  a\nb", 4, Motion{Kind: PrevLine}, 0, 2},
		{"|", "abcdef", 0, Motion{Kind: Column}, 4, 3},
		{"}", "a\nb\n\nc\nd", 0, Motion{Kind: ParagraphForward}, 0, 4},
		{"} last paragraph", "a\nb\n\nc\nd", 4, Motion{Kind: ParagraphForward}, 0, 8},
		{"{", "a\nb\n\nc\nd", 7, Motion{Kind: ParagraphBackward}, 0, 4},
		{"G", "a\n  b\nc", 0, Motion{Kind: FileEnd}, 0, 6},
		{"2G", "a\n  b\nc", 0, Motion{Kind: FileEnd}, 2, 4},
		{"2gg", "a\n  b\nc", 6, Motion{Kind: FileStart}, 2, 4},
		{"gg", "a\n  b\nc", 6, Motion{Kind: FileStart}, 0, 0},
		{"f", "a,b,c,d", 0, Motion{Kind: FindForward, Char: ','}, 0, 1},
		{"2f", "a,b,c,d", 0, Motion{Kind: FindForward, Char: ','}, 2, 3},
		{"t", "a,b,c,d", 0, Motion{Kind: TillForward, Char: 'c'}, 0, 3},
		{"F", "a,b,c,d", 6, Motion{Kind: FindBackward, Char: ','}, 0, 5},
		{"T", "a,b,c,d", 6, Motion{Kind: TillBackward, Char: 'c'}, 0, 5},
		{"% forward", "(a [b] c)", 0, Motion{Kind: MatchPair}, 0, 8},
		{"% nested", "(a [b] c)", 3, Motion{Kind: MatchPair}, 0, 5},
		{"% searches the line", "(a [b] c)", 1, Motion{Kind: MatchPair}, 0, 5},
		{"% backward", "(a [b] c)", 8, Motion{Kind: MatchPair}, 0, 0},
		{"% across lines", "f(\n (a)\n)", 1, Motion{Kind: MatchPair}, 0, 8},
		{"% back across lines", "f(\n (a)\n)", 8, Motion{Kind: MatchPair}, 0, 1},
		{"50%", "a\nb\nc\nd", 0, Motion{Kind: MatchPair}, 50, 2},
		{"/", "foo bar foo baz", 0, Motion{Kind: SearchForward, Pattern: "foo"}, 0, 8},
		{"?", "foo bar foo baz", 12, Motion{Kind: SearchBackward, Pattern: "foo"}, 0, 8},
		{"/ \\c", "xx Foo", 0, Motion{Kind: SearchForward, Pattern: `\cfoo`}, 0, 3},
		{"*", "foo bar foo", 0, Motion{Kind: WordUnderForward}, 0, 8},
		{"* skips partial words", "foo foobar foo", 0, Motion{Kind: WordUnderForward}, 0, 11},
		{"#", "foo bar foo", 9, Motion{Kind: WordUnderBackward}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(tt.text)
			res := resolve(t, env, tt.off, tt.m, tt.count)
			if got := res.Target(); got != tt.want {
				t.Errorf("target = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVerticalKeepsColumn(t *testing.T) {
	env := newEnv("abcdef\nab\nabcdef")
	res := resolve(t, env, 4, Motion{Kind: Down}, 0)
	if res.Target() != 8 || res.Cursor.Want != 4 {
		t.Fatalf("j = %v, want offset 8 want 4", res.Cursor)
	}
	res, err := Resolve(env, res.Cursor, Motion{Kind: Down}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Target() != 14 {
		t.Errorf("second j = %d, want 14", res.Target())
	}
	if !res.Linewise {
		t.Error("j should be linewise")
	}

	eol := resolve(t, env, 0, Motion{Kind: LineEnd}, 0)
	res, _ = Resolve(env, eol.Cursor, Motion{Kind: Down}, 2)
	if res.Target() != 15 {
		t.Errorf("j after $ = %d, want end of line 15", res.Target())
	}

	if _, err := Resolve(env, cursor.New(0), Motion{Kind: Up}, 0); !errors.Is(err, ErrFailed) {
		t.Errorf("k on first line: %v", err)
	}
}

func TestLeftRight(t *testing.T) {
	env := newEnv("abc\ndef")
	if _, err := Resolve(env, cursor.New(0), Motion{Kind: Left}, 0); !errors.Is(err, ErrFailed) {
		t.Errorf("h at column 0: %v", err)
	}
	if res := resolve(t, env, 0, Motion{Kind: Right}, 10); res.Target() != 2 {
		t.Errorf("10l = %d, want 2", res.Target())
	}
	env.PastEnd = true
	if res := resolve(t, env, 2, Motion{Kind: Right}, 0); res.Target() != 3 {
		t.Errorf("l past end = %d, want 3", res.Target())
	}
}

func TestRepeatFind(t *testing.T) {
	env := newEnv("a,b,c,d")
	resolve(t, env, 0, Motion{Kind: TillForward, Char: ','}, 0)
	if env.Find.Kind != TillForward || env.Find.Char != ',' {
		t.Fatalf("FindState = %+v", env.Find)
	}
	// ; after t skips the adjacent match
	if res := resolve(t, env, 0, Motion{Kind: RepeatFind}, 0); res.Target() != 2 {
		t.Errorf("; = %d, want 2", res.Target())
	}
	res := resolve(t, env, 4, Motion{Kind: RepeatFindReverse}, 0)
	if res.Target() != 2 || res.Inclusive {
		t.Errorf(", = %d inclusive=%v, want 2 exclusive", res.Target(), res.Inclusive)
	}

	_, err := Resolve(env, cursor.New(0), Motion{Kind: FindForward, Char: 'z'}, 0)
	var nm *NoMatchError
	if !errors.As(err, &nm) || nm.What != "find" {
		t.Errorf("f with no match: %v", err)
	}
}

func TestSearchWrapAndState(t *testing.T) {
	env := newEnv("foo bar foo baz")
	resolve(t, env, 0, Motion{Kind: SearchForward, Pattern: "foo"}, 0)
	if env.Search.Pattern != "foo" || env.Search.Backward {
		t.Fatalf("SearchState = %+v", env.Search)
	}
	res := resolve(t, env, 8, Motion{Kind: SearchNext}, 0)
	if res.Target() != 0 || res.Message != "search hit BOTTOM, continuing at TOP" {
		t.Errorf("n wrap = %d %q", res.Target(), res.Message)
	}
	if !res.Jump {
		t.Error("n should be a jump")
	}
	if res := resolve(t, env, 8, Motion{Kind: SearchPrev}, 0); res.Target() != 0 {
		t.Errorf("N = %d, want 0", res.Target())
	}

	env.WrapScan = false
	_, err := Resolve(env, cursor.New(8), Motion{Kind: SearchNext}, 0)
	var nm *NoMatchError
	if !errors.As(err, &nm) || !nm.NoWrap {
		t.Fatalf("nowrapscan: %v", err)
	}
	if nm.Error() != "E385: Search hit BOTTOM without match for: foo" {
		t.Errorf("message = %q", nm.Error())
	}

	_, err = Resolve(env, cursor.New(0), Motion{Kind: SearchForward, Pattern: "zzz"}, 0)
	if !errors.Is(err, ErrNoMatch) || err.Error() != "E486: Pattern not found: zzz" {
		t.Errorf("missing pattern: %v", err)
	}
}

// countingMatcher records how many bytes every pattern is matched against.
type countingMatcher struct {
	scanned *int
}

func (m countingMatcher) Compile(pattern string, ignoreCase bool) (Pattern, error) {
	p, err := RegexpMatcher{}.Compile(pattern, ignoreCase)
	if err != nil {
		return nil, err
	}
	return countingPattern{p, m.scanned}, nil
}

type countingPattern struct {
	Pattern
	scanned *int
}

func (p countingPattern) FindAll(text string) [][]int {
	*p.scanned += len(text)
	return p.Pattern.FindAll(text)
}

func TestSearchAcrossLines(t *testing.T) {
	env := newEnv("one\ntwo foo\nthree\nfoo four\n")
	tests := []struct {
		name    string
		off     int
		kind    Kind
		pattern string
		want    int
		msg     string
	}{
		{"forward next line", 0, SearchForward, "foo", 8, ""},
		{"forward skips current match", 8, SearchForward, "foo", 18, ""},
		{"forward wraps", 18, SearchForward, "foo", 8, "search hit BOTTOM, continuing at TOP"},
		{"backward previous line", 18, SearchBackward, "foo", 8, ""},
		{"backward wraps", 2, SearchBackward, "foo", 18, "search hit TOP, continuing at BOTTOM"},
		{"anchored", 0, SearchForward, "^t", 4, ""},
		{"line end", 0, SearchForward, "o$", 10, ""},
		{"newline in pattern", 0, SearchForward, `foo\nth`, 8, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := resolve(t, env, tt.off, Motion{Kind: tt.kind, Pattern: tt.pattern}, 0)
			if res.Target() != tt.want || res.Message != tt.msg {
				t.Errorf("target = %d %q, want %d %q", res.Target(), res.Message, tt.want, tt.msg)
			}
		})
	}
}

func TestSearchScansFromCursor(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 10000; i++ {
		b.WriteString("lorem ipsum dolor\n")
	}
	env := newEnv(b.String())
	scanned := 0
	env.Matcher = countingMatcher{&scanned}

	res := resolve(t, env, 0, Motion{Kind: SearchForward, Pattern: "dolor"}, 3)
	if line := env.Buf.LineAt(res.Target()); line != 2 {
		t.Fatalf("3/dolor landed on line %d", line)
	}
	if scanned > 100 {
		t.Errorf("matched against %d bytes for a nearby match", scanned)
	}
}

func TestSearchCase(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		ic, sc  bool
		want    int
	}{
		{"case sensitive", "foo", false, false, 8},
		{"ignorecase", "foo", true, false, 4},
		{"smartcase upper", "Foo", true, true, 4},
		{"smartcase lower", "foo", true, true, 4},
		{"\\C forces case", `\Cfoo`, true, false, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv("xx  Foo foo")
			env.IgnoreCase, env.SmartCase = tt.ic, tt.sc
			if res := resolve(t, env, 0, Motion{Kind: SearchForward, Pattern: tt.pattern}, 0); res.Target() != tt.want {
				t.Errorf("target = %d, want %d", res.Target(), tt.want)
			}
		})
	}
}

func TestNoPreviousPattern(t *testing.T) {
	env := newEnv("abc")
	if _, err := Resolve(env, cursor.New(0), Motion{Kind: SearchNext}, 0); !errors.Is(err, ErrNoPreviousPattern) {
		t.Errorf("n without search: %v", err)
	}
}

func TestScreenMotions(t *testing.T) {
	lines := ""
	for i := 0; i < 20; i++ {
		lines += "x\n"
	}
	env := newEnv(lines)
	env.View = Viewport{Top: 5, Bottom: 14, ScrollOff: 2}
	tests := []struct {
		kind Kind
		want int
	}{
		{ScreenTop, 7},
		{ScreenMiddle, 9},
		{ScreenBottom, 12},
	}
	for _, tt := range tests {
		res := resolve(t, env, 0, Motion{Kind: tt.kind}, 0)
		if line := env.Buf.LineAt(res.Target()); line != tt.want {
			t.Errorf("%v line = %d, want %d", tt.kind, line, tt.want)
		}
	}
}

func TestMarkMotions(t *testing.T) {
	env := newEnv("abc\n  def")
	marks := mark.NewTable()
	marks.Set('a', 8)
	env.Mark = marks.Get

	if res := resolve(t, env, 0, Motion{Kind: MarkExact, Char: 'a'}, 0); res.Target() != 8 || res.Linewise {
		t.Errorf("`a = %+v", res)
	}
	if res := resolve(t, env, 0, Motion{Kind: MarkLine, Char: 'a'}, 0); res.Target() != 6 || !res.Linewise {
		t.Errorf("'a = %+v", res)
	}
	if _, err := Resolve(env, cursor.New(0), Motion{Kind: MarkExact, Char: 'b'}, 0); !errors.Is(err, mark.ErrMarkNotSet) {
		t.Errorf("unset mark: %v", err)
	}
}

func TestSpan(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		off   int
		m     Motion
		count int
		want  Span
	}{
		{"dw at last word of buffer line", "foo\n", 0, Motion{Kind: WordForward}, 0, Span{Start: 0, End: 0, Linewise: true}},
		{"dw before next line", "foo bar\nbaz", 4, Motion{Kind: WordForward}, 0, Span{Start: 4, End: 7}},
		{"dw mid line", "foo bar", 0, Motion{Kind: WordForward}, 0, Span{Start: 0, End: 4}},
		{"de inclusive", "foo bar", 0, Motion{Kind: WordEnd}, 0, Span{Start: 0, End: 3}},
		{"d$ excludes newline", "abc\ndef", 1, Motion{Kind: LineEnd}, 0, Span{Start: 1, End: 3}},
		{"dj linewise", "a\nb\nc", 0, Motion{Kind: Down}, 0, Span{Start: 0, End: 2, Linewise: true}},
		{"db backward", "foo bar", 4, Motion{Kind: WordBackward}, 0, Span{Start: 0, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(tt.text)
			env.PastEnd = true
			res := resolve(t, env, tt.off, tt.m, tt.count)
			if got := res.Span(env.Buf); got != tt.want {
				t.Errorf("Span = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClampNormal(t *testing.T) {
	buf := buffer.New("abc\n\nx")
	tests := []struct{ in, want int }{
		{3, 2}, {4, 4}, {1, 1}, {6, 5},
	}
	for _, tt := range tests {
		if got := ClampNormal(buf, tt.in); got != tt.want {
			t.Errorf("ClampNormal(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
