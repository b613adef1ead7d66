package cursor

import (
	"testing"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

func TestCursorTransform(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		edit   buffer.Edit
		want   int
	}{
		{"edit after", 3, buffer.InsertEdit(5, "xx"), 3},
		{"insert before", 3, buffer.InsertEdit(1, "xx"), 5},
		{"insert at", 3, buffer.InsertEdit(3, "xx"), 5},
		{"delete around", 5, buffer.Edit{Start: 2, OldText: "abcdef"}, 2},
		{"delete before", 9, buffer.Edit{Start: 2, OldText: "abc"}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.offset).WithWant(7)
			got := c.Transform(tt.edit)
			if got.Offset != tt.want {
				t.Errorf("Offset = %d, want %d", got.Offset, tt.want)
			}
			if got.Want != 7 {
				t.Error("Transform should keep the desired column")
			}
		})
	}
}

func TestCursorWant(t *testing.T) {
	c := New(4)
	if c.HasWant() {
		t.Error("new cursor should have no desired column")
	}
	c = c.WithWant(WantEOL).Keep(9)
	if c.Want != WantEOL || c.Offset != 9 {
		t.Errorf("Keep lost state: %v", c)
	}
	if c.MoveTo(1).HasWant() {
		t.Error("MoveTo should reset the desired column")
	}
}

func TestSelectionRanges(t *testing.T) {
	buf := buffer.New("hello\nworld\nagain")
	s := NewSelection(8, 2) // backwards: "llo\nwor"

	if s.IsForward() {
		t.Error("selection should be backwards")
	}
	if r := s.Range(buf); r != (buffer.Range{Start: 2, End: 9}) {
		t.Errorf("Range = %v", r)
	}
	if r := s.LineRange(buf); r != (buffer.Range{Start: 0, End: 12}) {
		t.Errorf("LineRange = %v", r)
	}
	if sw := s.Swap(); sw.Anchor != 2 || sw.Head != 8 {
		t.Errorf("Swap = %v", sw)
	}
}

func TestBlock(t *testing.T) {
	buf := buffer.New("abcdef\nab\nabcdefgh")
	// anchor on 'b' of line 0, head on 'd' of line 2
	s := NewSelection(1, buf.Offset(buffer.Pos(2, 3)))
	b := s.Block(buf, false)
	if b != (Block{Top: 0, Bottom: 2, Left: 1, Right: 3}) {
		t.Fatalf("Block = %+v", b)
	}

	start, end, ok := b.RowRange(buf, 1)
	if !ok || start != 1 || end != 2 {
		t.Errorf("short line row = %d, %d, %v", start, end, ok)
	}
	start, end, _ = b.RowRange(buf, 2)
	if start != 1 || end != 4 {
		t.Errorf("long line row = %d, %d", start, end)
	}

	if eol := s.Block(buf, true); eol.Right != 7 {
		t.Errorf("block to EOL right = %d, want 7", eol.Right)
	}
}
