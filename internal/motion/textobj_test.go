package motion

import (
	"errors"
	"testing"
)

func TestSelectObject(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		off   int
		obj   Object
		count int
		start int
		end   int
	}{
		{"iw", "foo bar baz", 5, Object{Kind: Word, Inner: true}, 0, 4, 7},
		{"iw on blank", "foo bar baz", 3, Object{Kind: Word, Inner: true}, 0, 3, 4},
		{"2iw", "foo bar baz", 0, Object{Kind: Word, Inner: true}, 2, 0, 4},
		{"aw trailing space", "foo bar baz", 5, Object{Kind: Word}, 0, 4, 8},
		{"aw last word takes leading space", "foo bar baz", 9, Object{Kind: Word}, 0, 7, 11},
		{"aw on blank", "foo bar baz", 3, Object{Kind: Word}, 0, 3, 7},
		{"iW", "a foo.bar b", 4, Object{Kind: BigWord, Inner: true}, 0, 2, 9},
		{"i\"", `say "hi there" now`, 6, Object{Kind: DoubleQuote, Inner: true}, 0, 5, 13},
		{"a\"", `say "hi there" now`, 6, Object{Kind: DoubleQuote}, 0, 4, 15},
		{"i\" before quotes", `say "hi there" now`, 0, Object{Kind: DoubleQuote, Inner: true}, 0, 5, 13},
		{"i' escaped quote", `x = 'it\'s'`, 6, Object{Kind: SingleQuote, Inner: true}, 0, 5, 10},
		{"i(", "f(a, (b))", 6, Object{Kind: Paren, Inner: true}, 0, 6, 7},
		{"i( on open", "f(a, (b))", 5, Object{Kind: Paren, Inner: true}, 0, 6, 7},
		{"2i(", "f(a, (b))", 6, Object{Kind: Paren, Inner: true}, 2, 2, 8},
		{"a(", "f(a, (b))", 2, Object{Kind: Paren}, 0, 1, 9},
		{"ib", "f(a, (b))", 2, Object{Kind: Paren, Inner: true}, 0, 2, 8},
		{"i{ multi-line", "{\n  x\n  }", 4, Object{Kind: Brace, Inner: true}, 0, 2, 6},
		{"i[ empty", "a[]", 1, Object{Kind: Bracket, Inner: true}, 0, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(tt.text)
			res, err := SelectObject(env, tt.off, tt.obj, tt.count)
			if err != nil {
				t.Fatalf("SelectObject(%v) error: %v", tt.obj, err)
			}
			if res.Start != tt.start || res.End != tt.end {
				t.Errorf("range = [%d,%d), want [%d,%d)", res.Start, res.End, tt.start, tt.end)
			}
			if !res.Object || res.Linewise {
				t.Errorf("Object=%v Linewise=%v", res.Object, res.Linewise)
			}
			if span := res.Span(env.Buf); span.Start != tt.start || span.End != tt.end {
				t.Errorf("Span = %+v", span)
			}
		})
	}
}

func TestSelectObjectCursor(t *testing.T) {
	env := newEnv(`say "hi there" now`)
	res, err := SelectObject(env, 6, Object{Kind: DoubleQuote, Inner: true}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Target() != 12 {
		t.Errorf("cursor = %d, want last selected character 12", res.Target())
	}
}

func TestSelectObjectFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
		off  int
		obj  Object
	}{
		{"no quotes", "abc", 1, Object{Kind: DoubleQuote, Inner: true}},
		{"single quote", `a "b`, 0, Object{Kind: DoubleQuote}},
		{"no enclosing paren", "abc", 1, Object{Kind: Paren, Inner: true}},
		{"unclosed paren", "(abc", 2, Object{Kind: Paren}},
		{"too many levels", "(a)", 1, Object{Kind: Paren, Inner: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count := 0
			if tt.name == "too many levels" {
				count = 2
			}
			_, err := SelectObject(newEnv(tt.text), tt.off, tt.obj, count)
			var nm *NoMatchError
			if !errors.As(err, &nm) || nm.What != "object" {
				t.Fatalf("error = %v, want object NoMatchError", err)
			}
			if !errors.Is(err, ErrNoMatch) {
				t.Error("NoMatchError should match ErrNoMatch")
			}
		})
	}

	if _, err := SelectObject(newEnv("a\n\nb"), 2, Object{Kind: Word, Inner: true}, 0); !errors.Is(err, ErrFailed) {
		t.Errorf("iw on empty line: %v", err)
	}
}

func TestParagraphObject(t *testing.T) {
	tests := []struct {
		name       string
		off        int
		obj        Object
		count      int
		start, end int
	}{
		{"ip", 0, Object{Kind: Paragraph, Inner: true}, 0, 0, 2},
		{"ap", 0, Object{Kind: Paragraph}, 0, 0, 4},
		{"ip on blank", 4, Object{Kind: Paragraph, Inner: true}, 0, 4, 4},
		{"2ip", 0, Object{Kind: Paragraph, Inner: true}, 2, 0, 4},
		{"ap last paragraph takes blank before", 5, Object{Kind: Paragraph}, 0, 4, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv("a\nb\n\nc")
			res, err := SelectObject(env, tt.off, tt.obj, tt.count)
			if err != nil {
				t.Fatal(err)
			}
			if !res.Linewise || res.Start != tt.start || res.End != tt.end {
				t.Errorf("got [%d,%d] linewise=%v, want [%d,%d]", res.Start, res.End, res.Linewise, tt.start, tt.end)
			}
			first, last := res.Span(env.Buf).Lines(env.Buf)
			if first != env.Buf.LineAt(tt.start) || last != env.Buf.LineAt(tt.end) {
				t.Errorf("lines = %d..%d", first, last)
			}
		})
	}
}
