package mark

import (
	"sort"
	"sync"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// Special mark names.
const (
	Context     = '\'' // position before the latest jump; '`' is an alias
	LastChange  = '.'
	LastInsert  = '^'
	VisualStart = '<'
	VisualEnd   = '>'
	ChangeStart = '['
	ChangeEnd   = ']'
)

// IsLocal reports whether name is a lowercase buffer mark.
func IsLocal(name rune) bool { return name >= 'a' && name <= 'z' }

// IsGlobal reports whether name is an uppercase file mark.
func IsGlobal(name rune) bool { return name >= 'A' && name <= 'Z' }

// IsSpecial reports whether name is maintained by the editor.
func IsSpecial(name rune) bool {
	switch name {
	case Context, '`', LastChange, LastInsert, VisualStart, VisualEnd, ChangeStart, ChangeEnd:
		return true
	}
	return false
}

// IsValid reports whether name can be looked up.
func IsValid(name rune) bool {
	return IsLocal(name) || IsGlobal(name) || IsSpecial(name)
}

// Entry is one mark as listed by :marks.
type Entry struct {
	Name    rune
	Offset  int
	Deleted bool
}

// Table holds the local and special marks of one buffer.
type Table struct {
	mu    sync.Mutex
	marks map[rune]*Entry
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{marks: make(map[rune]*Entry)}
}

func canonical(name rune) rune {
	if name == '`' {
		return Context
	}
	return name
}

// Set places mark name at offset. Uppercase names belong in Globals.
func (t *Table) Set(name rune, offset int) error {
	name = canonical(name)
	if !IsLocal(name) && !IsSpecial(name) {
		return ErrInvalidMark
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.marks[name] = &Entry{Name: name, Offset: offset}
	return nil
}

// Get returns the offset of mark name.
func (t *Table) Get(name rune) (int, error) {
	name = canonical(name)
	if !IsLocal(name) && !IsSpecial(name) {
		return 0, ErrInvalidMark
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.marks[name]
	switch {
	case !ok:
		return 0, ErrMarkNotSet
	case e.Deleted:
		return e.Offset, ErrMarkDeleted
	}
	return e.Offset, nil
}

// Delete removes mark name and reports whether it existed.
func (t *Table) Delete(name rune) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	name = canonical(name)
	_, ok := t.marks[name]
	delete(t.marks, name)
	return ok
}

// DeleteLocal removes every a-z mark and returns how many were removed.
func (t *Table) DeleteLocal() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for name := range t.marks {
		if IsLocal(name) {
			delete(t.marks, name)
			n++
		}
	}
	return n
}

// List returns all marks ordered the way :marks shows them: special
// context mark first, then a-z, then the remaining specials.
func (t *Table) List() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, 0, len(t.marks))
	for _, e := range t.marks {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		return listRank(out[i].Name) < listRank(out[j].Name)
	})
	return out
}

func listRank(name rune) int {
	switch {
	case name == Context:
		return 0
	case IsLocal(name):
		return int(name)
	}
	return 1000 + int(name)
}

// BufferChanged shifts every mark past e and flags marks inside deleted
// text. It implements buffer.Observer.
func (t *Table) BufferChanged(e buffer.Edit) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, m := range t.marks {
		shift(m, e)
	}
}

// shift moves m past e. Special marks collapse onto the edit instead of
// being invalidated.
func shift(m *Entry, e buffer.Edit) {
	off, ok := e.TransformOffset(m.Offset)
	m.Offset = off
	if !ok && !IsSpecial(m.Name) {
		m.Deleted = true
	}
}
