package mark

import (
	"sort"
	"sync"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// GlobalMark is an uppercase mark: a position in a specific buffer.
type GlobalMark struct {
	Name     rune
	BufferID string
	Path     string
	Offset   int
	Deleted  bool
}

// Globals holds the A-Z marks shared by every buffer of a session.
type Globals struct {
	mu    sync.Mutex
	marks map[rune]*GlobalMark
}

// NewGlobals creates an empty global mark store.
func NewGlobals() *Globals {
	return &Globals{marks: make(map[rune]*GlobalMark)}
}

// Set places mark name in buffer bufID.
func (g *Globals) Set(name rune, bufID, path string, offset int) error {
	if !IsGlobal(name) {
		return ErrInvalidMark
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.marks[name] = &GlobalMark{Name: name, BufferID: bufID, Path: path, Offset: offset}
	return nil
}

// Get returns mark name.
func (g *Globals) Get(name rune) (GlobalMark, error) {
	if !IsGlobal(name) {
		return GlobalMark{}, ErrInvalidMark
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.marks[name]
	switch {
	case !ok:
		return GlobalMark{}, ErrMarkNotSet
	case m.Deleted:
		return *m, ErrMarkDeleted
	}
	return *m, nil
}

// Delete removes mark name and reports whether it existed.
func (g *Globals) Delete(name rune) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.marks[name]
	delete(g.marks, name)
	return ok
}

// List returns all global marks ordered by name.
func (g *Globals) List() []GlobalMark {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]GlobalMark, 0, len(g.marks))
	for _, m := range g.marks {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Shift applies e to the marks of buffer bufID.
func (g *Globals) Shift(bufID string, e buffer.Edit) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, m := range g.marks {
		if m.BufferID != bufID {
			continue
		}
		off, ok := e.TransformOffset(m.Offset)
		m.Offset = off
		if !ok {
			m.Deleted = true
		}
	}
}

// Observer returns a buffer observer shifting the marks of bufID.
func (g *Globals) Observer(bufID string) buffer.Observer {
	return buffer.ObserverFunc(func(e buffer.Edit) { g.Shift(bufID, e) })
}

// ParseDelmarks expands a :delmarks argument such as "a b", "aB" or "a-dXY"
// into mark names, without duplicates.
func ParseDelmarks(arg string) []rune {
	chars := []rune(arg)
	var out []rune
	seen := make(map[rune]bool)
	add := func(r rune) {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	for i := 0; i < len(chars); i++ {
		c := chars[i]
		if i+2 < len(chars) && chars[i+1] == '-' {
			end := chars[i+2]
			if (IsLocal(c) && IsLocal(end) || IsGlobal(c) && IsGlobal(end)) && end >= c {
				for r := c; r <= end; r++ {
					add(r)
				}
				i += 2
				continue
			}
		}
		if IsLocal(c) || IsGlobal(c) || IsSpecial(c) {
			add(c)
		}
	}
	return out
}
