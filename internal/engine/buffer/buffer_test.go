package buffer

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	b := New("")
	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}

	b = New("a\r\nb\rc")
	if got := b.Text(); got != "a\nb\nc" {
		t.Errorf("line endings not normalized: %q", got)
	}
}

func TestInsertDeleteReturnInverse(t *testing.T) {
	tests := []struct {
		name string
		text string
		do   func(b *Buffer) (Edit, error)
		want string
	}{
		{"insert", "hello", func(b *Buffer) (Edit, error) { return b.Insert(5, " world") }, "hello world"},
		{"delete", "hello world", func(b *Buffer) (Edit, error) { return b.Delete(Range{5, 11}) }, "hello"},
		{"replace", "hello world", func(b *Buffer) (Edit, error) { return b.Replace(Range{0, 5}, "howdy") }, "howdy world"},
		{"reversed range", "abcdef", func(b *Buffer) (Edit, error) { return b.Delete(Range{4, 1}) }, "aef"},
		{"unicode", "日本語", func(b *Buffer) (Edit, error) { return b.Replace(Range{3, 6}, "x") }, "日x語"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.text)
			inv, err := tt.do(b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := b.Text(); got != tt.want {
				t.Fatalf("after edit: got %q, want %q", got, tt.want)
			}
			if _, err := b.Apply(inv); err != nil {
				t.Fatalf("apply inverse: %v", err)
			}
			if got := b.Text(); got != tt.text {
				t.Errorf("after inverse: got %q, want %q", got, tt.text)
			}
		})
	}
}

func TestOutOfRange(t *testing.T) {
	b := New("abc")

	_, err := b.Insert(10, "x")
	var be *BoundsError
	if !errors.As(err, &be) {
		t.Fatalf("expected BoundsError, got %v", err)
	}
	if !errors.Is(err, ErrOutOfRange) {
		t.Error("BoundsError should match ErrOutOfRange")
	}
	if b.Text() != "abc" {
		t.Error("failed insert modified the buffer")
	}

	if _, err := b.PositionToOffset(Pos(0, 4)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("column past end: got %v", err)
	}
	if _, err := b.PositionToOffset(Pos(1, 0)); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("line past end: got %v", err)
	}
	if _, err := b.OffsetToPosition(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("negative offset: got %v", err)
	}
}

func TestApplyStale(t *testing.T) {
	b := New("hello")
	_, err := b.Apply(Edit{Start: 0, OldText: "jello", NewText: "x"})
	if !errors.Is(err, ErrStaleEdit) {
		t.Errorf("expected ErrStaleEdit, got %v", err)
	}
}

func TestPositionConversion(t *testing.T) {
	b := New("ab\n日本語\n\nz")

	tests := []struct {
		offset int
		pos    Position
	}{
		{0, Pos(0, 0)},
		{2, Pos(0, 2)},
		{3, Pos(1, 0)},
		{6, Pos(1, 1)},
		{12, Pos(1, 3)},
		{13, Pos(2, 0)},
		{14, Pos(3, 0)},
		{15, Pos(3, 1)},
	}

	for _, tt := range tests {
		got, err := b.OffsetToPosition(tt.offset)
		if err != nil {
			t.Fatalf("OffsetToPosition(%d): %v", tt.offset, err)
		}
		if got != tt.pos {
			t.Errorf("OffsetToPosition(%d) = %v, want %v", tt.offset, got, tt.pos)
		}
		off, err := b.PositionToOffset(tt.pos)
		if err != nil {
			t.Fatalf("PositionToOffset(%v): %v", tt.pos, err)
		}
		if off != tt.offset {
			t.Errorf("PositionToOffset(%v) = %d, want %d", tt.pos, off, tt.offset)
		}
	}
}

func TestLineQueries(t *testing.T) {
	b := New("  foo\n\tbar\n")

	if b.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", b.LineCount())
	}
	r, err := b.LineRange(1)
	if err != nil {
		t.Fatal(err)
	}
	if r != (Range{6, 10}) {
		t.Errorf("LineRange(1) = %v", r)
	}
	if got := b.FirstNonBlank(0); got != 2 {
		t.Errorf("FirstNonBlank(0) = %d, want 2", got)
	}
	if !b.IsBlankLine(2) {
		t.Error("last line should be blank")
	}
	if _, err := b.LineRange(3); err == nil {
		t.Error("LineRange past end should fail")
	}
}

func TestVisualColumn(t *testing.T) {
	tests := []struct {
		text string
		col  int
		tab  int
		want int
	}{
		{"abc", 2, 8, 2},
		{"\tx", 1, 8, 8},
		{"a\tx", 2, 4, 4},
		{"日本", 1, 8, 2},
		{"日本x", 2, 8, 4},
	}
	for _, tt := range tests {
		if got := VisualColumn(tt.text, tt.col, tt.tab); got != tt.want {
			t.Errorf("VisualColumn(%q, %d) = %d, want %d", tt.text, tt.col, got, tt.want)
		}
	}

	if got := ColumnForVisual("\tx", 5, 8); got != 0 {
		t.Errorf("inside tab maps to %d, want 0", got)
	}
	if got := ColumnForVisual("日本x", 3, 8); got != 1 {
		t.Errorf("inside wide char maps to %d, want 1", got)
	}
	if got := ColumnForVisual("ab", 40, 8); got != 2 {
		t.Errorf("past end maps to %d, want 2", got)
	}
}

func TestObserversSeeEdits(t *testing.T) {
	b := New("abc")
	var seen []Edit
	remove := b.AddObserver(ObserverFunc(func(e Edit) { seen = append(seen, e) }))

	b.Insert(1, "X")
	b.Delete(Range{0, 1})
	b.Replace(Range{0, 0}, "") // no-op is not reported

	if len(seen) != 2 {
		t.Fatalf("got %d notifications, want 2", len(seen))
	}
	if seen[0] != (Edit{Start: 1, NewText: "X"}) {
		t.Errorf("first edit = %v", seen[0])
	}
	if seen[1] != (Edit{Start: 0, OldText: "a"}) {
		t.Errorf("second edit = %v", seen[1])
	}

	remove()
	b.Insert(0, "z")
	if len(seen) != 2 {
		t.Error("removed observer still notified")
	}
}

func TestEditTransformOffset(t *testing.T) {
	del := Edit{Start: 4, OldText: "abc"}
	ins := InsertEdit(4, "xy")

	tests := []struct {
		name   string
		edit   Edit
		offset int
		want   int
		ok     bool
	}{
		{"before delete", del, 2, 2, true},
		{"inside delete", del, 5, 4, false},
		{"at delete start", del, 4, 4, false},
		{"after delete", del, 9, 6, true},
		{"at insert", ins, 4, 6, true},
		{"before insert", ins, 3, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.edit.TransformOffset(tt.offset)
			if got != tt.want || ok != tt.ok {
				t.Errorf("TransformOffset(%d) = %d, %v; want %d, %v", tt.offset, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSnapshotIsolation(t *testing.T) {
	b := New(strings.Repeat("x\n", 100))
	snap := b.Snapshot()
	b.Delete(Range{0, 50})

	if snap.LineCount() != 101 {
		t.Errorf("snapshot changed: %d lines", snap.LineCount())
	}
	if snap.Revision() == b.Revision() {
		t.Error("revision should advance after edit")
	}
}
