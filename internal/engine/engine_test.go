package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
	"github.com/dshills/modalcore/internal/engine/mark"
)

func TestNewEngine(t *testing.T) {
	e := New(WithContent("hello\nworld"), WithPath("/tmp/x.txt"))
	if e.Text() != "hello\nworld" {
		t.Errorf("Text() = %q", e.Text())
	}
	if e.ID() == "" || e.ID() == New().ID() {
		t.Error("engines should get unique IDs")
	}
	if e.Modified() {
		t.Error("new engine should not be modified")
	}
	if e.Path() != "/tmp/x.txt" {
		t.Errorf("Path() = %q", e.Path())
	}
}

func TestNewFromReader(t *testing.T) {
	e, err := NewFromReader(strings.NewReader("a\r\nb"))
	if err != nil {
		t.Fatal(err)
	}
	if e.Text() != "a\nb" {
		t.Errorf("Text() = %q", e.Text())
	}
}

func TestChangeSetsMarksAndUndo(t *testing.T) {
	e := New(WithContent("one two three\n"))
	buf := e.Buffer()

	e.BeginChange("cw", buffer.Pos(0, 4))
	buf.Delete(buffer.Range{Start: 4, End: 7})
	buf.Insert(4, "2")
	if !e.EndChange(buffer.Pos(0, 4)) {
		t.Fatal("change should be recorded")
	}

	if got := e.Text(); got != "one 2 three\n" {
		t.Fatalf("Text() = %q", got)
	}
	if !e.Modified() {
		t.Error("engine should be modified")
	}
	if off, err := e.Marks().Get(mark.ChangeStart); err != nil || off != 4 {
		t.Errorf("'[ = %d, %v", off, err)
	}
	if off, _ := e.Marks().Get(mark.ChangeEnd); off != 4 {
		t.Errorf("'] = %d, want 4", off)
	}
	if off, _ := e.ChangeList().Older(1); off != 4 {
		t.Errorf("change list newest = %d, want 4", off)
	}

	cur, err := e.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if e.Text() != "one two three\n" {
		t.Errorf("after undo: %q", e.Text())
	}
	if cur != buffer.Pos(0, 4) {
		t.Errorf("undo cursor = %v", cur)
	}

	if _, err := e.Undo(); !errors.Is(err, history.ErrNothingToUndo) {
		t.Errorf("second undo: %v", err)
	}
	if _, err := e.Redo(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "one 2 three\n" {
		t.Errorf("after redo: %q", e.Text())
	}
}

func TestApply(t *testing.T) {
	e := New(WithContent("abc"))
	if err := e.Apply("ext", buffer.Range{Start: 1, End: 2}, "XYZ", buffer.Position{}); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "aXYZc" {
		t.Errorf("Text() = %q", e.Text())
	}
	if e.History().UndoCount() != 1 {
		t.Errorf("UndoCount() = %d", e.History().UndoCount())
	}
	if err := e.Apply("bad", buffer.Range{Start: 10, End: 12}, "", buffer.Position{}); err == nil {
		t.Error("out of range apply should fail")
	}
}

func TestReset(t *testing.T) {
	e := New(WithContent("abc"))
	e.Marks().Set('a', 1)
	e.Apply("x", buffer.Range{Start: 0, End: 1}, "z", buffer.Position{})

	e.Reset("fresh")
	if e.Text() != "fresh" || e.Modified() || e.History().CanUndo() {
		t.Error("Reset should replace text and drop state")
	}
	if _, err := e.Marks().Get('a'); !errors.Is(err, mark.ErrMarkNotSet) {
		t.Errorf("mark survived reset: %v", err)
	}
}
