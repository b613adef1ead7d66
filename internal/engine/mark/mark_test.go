package mark

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

func TestTableShiftAndInvalidate(t *testing.T) {
	buf := buffer.New("line one\nline two\nline three\n")
	tbl := NewTable()
	buf.AddObserver(tbl)

	tbl.Set('a', 0)  // line 0
	tbl.Set('b', 9)  // start of line 1
	tbl.Set('c', 18) // start of line 2

	// insert before every mark
	buf.Insert(0, "> ")
	if off, _ := tbl.Get('a'); off != 2 {
		t.Errorf("mark a = %d, want 2", off)
	}

	// delete line 1 ("line two\n" now at [11, 20))
	buf.Delete(buffer.Range{Start: 11, End: 20})

	if _, err := tbl.Get('b'); !errors.Is(err, ErrMarkDeleted) {
		t.Errorf("mark b: expected ErrMarkDeleted, got %v", err)
	}
	off, err := tbl.Get('c')
	if err != nil {
		t.Fatal(err)
	}
	if off != 11 {
		t.Errorf("mark c = %d, want 11", off)
	}
	pos, _ := buf.OffsetToPosition(off)
	if pos.Line != 1 {
		t.Errorf("mark c on line %d, want 1", pos.Line)
	}
}

func TestTableErrors(t *testing.T) {
	tbl := NewTable()
	if _, err := tbl.Get('q'); !errors.Is(err, ErrMarkNotSet) {
		t.Errorf("unset mark: %v", err)
	}
	if err := tbl.Set('A', 0); !errors.Is(err, ErrInvalidMark) {
		t.Errorf("uppercase in table: %v", err)
	}
	if err := tbl.Set('`', 5); err != nil {
		t.Fatal(err)
	}
	if off, err := tbl.Get('\''); err != nil || off != 5 {
		t.Errorf("backtick alias: %d, %v", off, err)
	}
}

func TestSpecialMarksCollapse(t *testing.T) {
	tbl := NewTable()
	tbl.Set(LastChange, 5)
	tbl.BufferChanged(buffer.Edit{Start: 3, OldText: "abcd"})
	off, err := tbl.Get(LastChange)
	if err != nil || off != 3 {
		t.Errorf("special mark = %d, %v; want 3, nil", off, err)
	}
}

func TestGlobals(t *testing.T) {
	g := NewGlobals()
	if err := g.Set('A', "buf-1", "/tmp/a.txt", 10); err != nil {
		t.Fatal(err)
	}
	g.Shift("buf-2", buffer.InsertEdit(0, "xxxx"))
	g.Shift("buf-1", buffer.InsertEdit(0, "xx"))

	m, err := g.Get('A')
	if err != nil {
		t.Fatal(err)
	}
	if m.Offset != 12 || m.Path != "/tmp/a.txt" {
		t.Errorf("global mark = %+v", m)
	}
	if err := g.Set('a', "buf-1", "", 0); !errors.Is(err, ErrInvalidMark) {
		t.Errorf("lowercase global: %v", err)
	}
}

func TestParseDelmarks(t *testing.T) {
	tests := []struct {
		arg  string
		want []rune
	}{
		{"a", []rune{'a'}},
		{"a b c", []rune{'a', 'b', 'c'}},
		{"aB", []rune{'a', 'B'}},
		{"a-dXY", []rune{'a', 'b', 'c', 'd', 'X', 'Y'}},
		{"a-D", []rune{'a', 'D'}},
		{"aa", []rune{'a'}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ParseDelmarks(tt.arg)); diff != "" {
			t.Errorf("ParseDelmarks(%q) mismatch (-want +got):\n%s", tt.arg, diff)
		}
	}
}

func TestJumpListNavigation(t *testing.T) {
	j := NewJumpList(100)
	j.Push(Jump{"b", 10})
	j.Push(Jump{"b", 20})
	j.Push(Jump{"b", 30})

	// at the end: Back records the current position
	got, ok := j.Back(Jump{"b", 40}, 1)
	if !ok || got.Offset != 30 {
		t.Fatalf("Back = %v, %v; want 30", got, ok)
	}
	got, _ = j.Back(Jump{}, 2)
	if got.Offset != 10 {
		t.Errorf("Back(2) = %v, want 10", got)
	}
	if _, ok := j.Back(Jump{}, 1); ok {
		t.Error("Back past oldest should fail")
	}
	got, _ = j.Forward(3)
	if got.Offset != 40 {
		t.Errorf("Forward(3) = %v, want 40", got)
	}
	if _, ok := j.Forward(1); ok {
		t.Error("Forward past newest should fail")
	}
}

func TestJumpListTruncatesOnBranch(t *testing.T) {
	j := NewJumpList(100)
	for _, off := range []int{1, 2, 3, 4} {
		j.Push(Jump{"b", off})
	}
	j.Back(Jump{"b", 5}, 3) // cursor on entry 2
	j.Push(Jump{"b", 9})

	entries, cursor := j.Entries()
	want := []Jump{{"b", 1}, {"b", 9}}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	if cursor != 2 {
		t.Errorf("cursor = %d, want 2", cursor)
	}
}

func TestJumpListBounded(t *testing.T) {
	j := NewJumpList(3)
	for off := 0; off < 5; off++ {
		j.Push(Jump{"b", off})
	}
	entries, _ := j.Entries()
	if len(entries) != 3 || entries[0].Offset != 2 {
		t.Errorf("entries = %v, want oldest evicted", entries)
	}
}

func TestChangeList(t *testing.T) {
	c := NewChangeList(100)
	if _, err := c.Older(1); !errors.Is(err, ErrChangeListEmpty) {
		t.Errorf("empty list: %v", err)
	}
	c.Add(5)
	c.Add(5) // duplicate of newest is ignored
	c.Add(20)
	c.Add(40)

	off, err := c.Older(1)
	if err != nil || off != 40 {
		t.Fatalf("Older = %d, %v", off, err)
	}
	off, _ = c.Older(10)
	if off != 5 {
		t.Errorf("Older(10) = %d, want oldest 5", off)
	}
	if _, err := c.Older(1); !errors.Is(err, ErrAtStart) {
		t.Errorf("at start: %v", err)
	}
	off, _ = c.Newer(1)
	if off != 20 {
		t.Errorf("Newer = %d, want 20", off)
	}

	c.BufferChanged(buffer.InsertEdit(0, "abc"))
	entries, _ := c.Entries()
	if diff := cmp.Diff([]int{8, 23, 43}, entries); diff != "" {
		t.Errorf("shifted entries (-want +got):\n%s", diff)
	}
}
