package register

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func get(t *testing.T, s *Store, name rune) Value {
	t.Helper()
	v, err := s.Get(name)
	if err != nil {
		t.Fatalf("Get(%q): %v", name, err)
	}
	return v
}

func TestYankRouting(t *testing.T) {
	s := New()
	s.Yank(0, Chars("foo"))

	if v := get(t, s, '0'); v.Text != "foo" {
		t.Errorf(`"0 = %q`, v.Text)
	}
	if v := get(t, s, Unnamed); v.Text != "foo" {
		t.Errorf(`"" = %q`, v.Text)
	}

	s.Yank('a', Lines("bar"))
	if v := get(t, s, 'a'); v != Lines("bar") {
		t.Errorf(`"a = %+v`, v)
	}
	if v := get(t, s, '0'); v.Text != "foo" {
		t.Error(`named yank must not touch "0`)
	}
	if v := get(t, s, Unnamed); v.Text != "bar\n" {
		t.Errorf(`unnamed should follow "a, got %q`, v.Text)
	}
}

func TestDeleteRotation(t *testing.T) {
	s := New()
	for _, line := range []string{"one", "two", "three"} {
		s.Delete(0, Lines(line))
	}

	want := map[rune]string{'1': "three\n", '2': "two\n", '3': "one\n"}
	for name, text := range want {
		if v := get(t, s, name); v.Text != text {
			t.Errorf(`"%c = %q, want %q`, name, v.Text, text)
		}
	}
	if _, err := s.Get('4'); !errors.Is(err, ErrEmpty) {
		t.Errorf(`"4 should be empty, got %v`, err)
	}
}

func TestDeleteRotationDropsOldest(t *testing.T) {
	s := New()
	for i := 1; i <= 10; i++ {
		s.Delete(0, Lines(string(rune('a'+i-1))))
	}
	if v := get(t, s, '9'); v.Text != "b\n" {
		t.Errorf(`"9 = %q, want "b\n"`, v.Text)
	}
	if v := get(t, s, '1'); v.Text != "j\n" {
		t.Errorf(`"1 = %q, want "j\n"`, v.Text)
	}
}

func TestSmallDelete(t *testing.T) {
	s := New()
	s.Delete(0, Lines("keep"))
	s.Delete(0, Chars("x"))

	if v := get(t, s, '-'); v.Text != "x" {
		t.Errorf(`"- = %q`, v.Text)
	}
	if v := get(t, s, '1'); v.Text != "keep\n" {
		t.Error("small delete must not rotate numbered registers")
	}
	if v := get(t, s, Unnamed); v.Text != "x" {
		t.Errorf("unnamed = %q", v.Text)
	}

	// multi-line charwise deletes count as "a line or more"
	s.Delete(0, Chars("end\nstart"))
	if v := get(t, s, '1'); v.Text != "end\nstart" {
		t.Errorf(`"1 = %q`, v.Text)
	}
}

func TestNamedDeleteDoesNotRotate(t *testing.T) {
	s := New()
	s.Delete('a', Lines("text"))
	if _, err := s.Get('1'); err == nil {
		t.Error(`named delete should not fill "1`)
	}
}

func TestBlackHole(t *testing.T) {
	s := New()
	s.Yank(0, Chars("keep"))
	s.Delete('_', Lines("gone"))

	if v := get(t, s, Unnamed); v.Text != "keep" {
		t.Errorf("black hole changed unnamed to %q", v.Text)
	}
	v, err := s.Get('_')
	if err != nil || v.Text != "" || v.Shape != Charwise {
		t.Errorf("black hole read = %+v, %v; want empty charwise", v, err)
	}
}

func TestUppercaseAppend(t *testing.T) {
	tests := []struct {
		name  string
		first Value
		add   Value
		want  Value
	}{
		{"chars+chars", Chars("foo"), Chars("bar"), Chars("foobar")},
		{"lines+lines", Lines("a"), Lines("b"), Value{"a\nb\n", Linewise}},
		{"chars+lines", Chars("a"), Lines("b"), Value{"a\nb\n", Linewise}},
		{"lines+chars", Lines("a"), Chars("b"), Value{"a\nb\n", Linewise}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Set('q', tt.first)
			s.Set('Q', tt.add)
			if diff := cmp.Diff(tt.want, get(t, s, 'q')); diff != "" {
				t.Errorf("append mismatch (-want +got):\n%s", diff)
			}
		})
	}

	s := New()
	s.Set('Z', Chars("new"))
	if v := get(t, s, 'z'); v.Text != "new" {
		t.Errorf("append to empty register = %q", v.Text)
	}
}

func TestReadOnly(t *testing.T) {
	s := New()
	if err := s.Set('.', Chars("x")); !errors.Is(err, ErrReadOnly) {
		t.Errorf("write to '.': %v", err)
	}
	s.SetReadOnly(':', "s/a/b/")
	if v := get(t, s, ':'); v.Text != "s/a/b/" {
		t.Errorf(`": = %q`, v.Text)
	}
	if err := s.Set('!', Chars("x")); !errors.Is(err, ErrInvalidRegister) {
		t.Errorf("invalid register: %v", err)
	}
}

func TestClipboardKeepsShape(t *testing.T) {
	cb := &MemoryClipboard{}
	s := New(WithClipboard(cb))

	s.Yank('+', Block([]string{"ab", "cd"}))
	if v := get(t, s, '+'); v.Shape != Blockwise {
		t.Errorf("clipboard round trip shape = %v", v.Shape)
	}
	if text, _ := cb.Get(); text != "ab\ncd" {
		t.Errorf("clipboard text = %q", text)
	}

	cb.Set("from outside\n")
	if v := get(t, s, '*'); v.Shape != Linewise {
		t.Errorf("external text ending in newline should be linewise, got %v", v.Shape)
	}
}

func TestList(t *testing.T) {
	s := New()
	s.Yank('b', Chars("b"))
	s.Yank(0, Chars("y"))
	s.Delete(0, Chars("d"))

	var names []rune
	for _, e := range s.List() {
		names = append(names, e.Name)
	}
	if diff := cmp.Diff([]rune{'"', '0', 'b', '-'}, names); diff != "" {
		t.Errorf("List order (-want +got):\n%s", diff)
	}
}

func TestValueRows(t *testing.T) {
	if diff := cmp.Diff([]string{"a", "b"}, Lines("a\nb").Rows()); diff != "" {
		t.Errorf("linewise rows:\n%s", diff)
	}
	if w := Block([]string{"ab", "日本語"}).Width(); w != 3 {
		t.Errorf("Width() = %d, want 3", w)
	}
}
