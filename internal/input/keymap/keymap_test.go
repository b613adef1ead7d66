package keymap

import (
	"errors"
	"testing"

	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/mode"
)

func TestSetLookup(t *testing.T) {
	m := New()
	if err := m.Set(Normal, "gx", "dd"); err != nil {
		t.Fatal(err)
	}
	if err := m.Set(Normal, "gxy", "yy"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		seq       string
		wantRHS   string
		wantFound bool
		wantMore  bool
	}{
		{"g", "", false, true},
		{"gx", "dd", true, true},
		{"gxy", "yy", true, false},
		{"gz", "", false, false},
		{"x", "", false, false},
	}
	for _, tt := range tests {
		b, more := m.Lookup(Normal, key.ParseSequence(tt.seq))
		if (b != nil) != tt.wantFound || more != tt.wantMore {
			t.Errorf("Lookup(%q) = %v, %v; want found=%v more=%v", tt.seq, b, more, tt.wantFound, tt.wantMore)
			continue
		}
		if b != nil && key.Format(b.RHS) != tt.wantRHS {
			t.Errorf("Lookup(%q) rhs = %q, want %q", tt.seq, key.Format(b.RHS), tt.wantRHS)
		}
	}

	if b, _ := m.Lookup(Insert, key.ParseSequence("gx")); b != nil {
		t.Error("normal mapping found in insert scope")
	}
	if m.Len() != 2 {
		t.Errorf("Len = %d, want 2", m.Len())
	}
}

func TestLongest(t *testing.T) {
	m := New()
	m.Set(Insert, "jk", "<Esc>")
	m.Set(Insert, "jkl", "x")

	b := m.Longest(Insert, key.ParseSequence("jkz"))
	if b == nil || key.Format(b.LHS) != "jk" {
		t.Fatalf("Longest(jkz) = %v", b)
	}
	if b := m.Longest(Insert, key.ParseSequence("jz")); b != nil {
		t.Errorf("Longest(jz) = %v, want nil", b)
	}
}

func TestLeader(t *testing.T) {
	m := New()
	m.Set(Normal, "<Leader>w", ":w<CR>")
	m.SetLeader(key.Rune(' '))
	m.Set(Normal, "<leader>q", ":q<CR>")

	if b, _ := m.Lookup(Normal, key.ParseSequence(`\w`)); b == nil {
		t.Error(`\w not mapped`)
	}
	b, _ := m.Lookup(Normal, key.ParseSequence(" q"))
	if b == nil {
		t.Fatal("<Space>q not mapped")
	}
	if got := key.Format(b.RHS); got != ":q<CR>" {
		t.Errorf("rhs = %q", got)
	}
}

func TestDelete(t *testing.T) {
	m := New()
	m.Set(Visual, "ab", "x")
	m.Set(Visual, "abc", "y")

	if err := m.Delete(Visual, "abc"); err != nil {
		t.Fatal(err)
	}
	if _, more := m.Lookup(Visual, key.ParseSequence("ab")); more {
		t.Error("pruned node still has children")
	}
	if err := m.Delete(Visual, "a"); !errors.Is(err, ErrNotMapped) {
		t.Errorf("Delete(a) = %v, want ErrNotMapped", err)
	}
	if err := m.Delete(Visual, "zz"); !errors.Is(err, ErrNotMapped) {
		t.Errorf("Delete(zz) = %v, want ErrNotMapped", err)
	}
	if err := m.Set(Visual, "", "x"); !errors.Is(err, ErrEmptyLHS) {
		t.Errorf("Set(empty) = %v, want ErrEmptyLHS", err)
	}
	m.Clear(Visual)
	if m.Len() != 0 {
		t.Errorf("Len after Clear = %d", m.Len())
	}
}

func TestList(t *testing.T) {
	m := New()
	m.Set(Normal, "zb", "1")
	m.Set(Normal, "za", "2")
	got := m.List(Normal)
	if len(got) != 2 || key.Format(got[0].LHS) != "za" || key.Format(got[1].LHS) != "zb" {
		t.Errorf("List = %v", got)
	}
}

func TestScopeFor(t *testing.T) {
	tests := []struct {
		mode mode.Mode
		want Scope
		ok   bool
	}{
		{mode.Normal, Normal, true},
		{mode.VisualBlock, Visual, true},
		{mode.OperatorPending, OperatorPending, true},
		{mode.Replace, Insert, true},
		{mode.CommandLine, 0, false},
	}
	for _, tt := range tests {
		got, ok := ScopeFor(tt.mode)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ScopeFor(%v) = %v, %v", tt.mode, got, ok)
		}
	}
	if s, ok := ParseScope("insert"); !ok || s != Insert {
		t.Errorf("ParseScope(insert) = %v, %v", s, ok)
	}
}
