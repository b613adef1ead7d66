package keymap

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/mode"
)

// Errors returned by Set and Delete.
var (
	ErrEmptyLHS  = errors.New("E474: Invalid argument")
	ErrNotMapped = errors.New("E31: No such mapping")
)

// Scope is the group of modes a mapping applies in.
type Scope uint8

const (
	Normal Scope = iota
	Visual
	OperatorPending
	Insert
	scopeCount
)

var scopeNames = [...]string{"normal", "visual", "operator", "insert"}

func (s Scope) String() string {
	if s < scopeCount {
		return scopeNames[s]
	}
	return fmt.Sprintf("Scope(%d)", s)
}

// ParseScope returns the scope with the given name.
func ParseScope(name string) (Scope, bool) {
	for i, n := range scopeNames {
		if n == name {
			return Scope(i), true
		}
	}
	return 0, false
}

// ScopeFor returns the scope whose mappings apply in m, and false for
// modes that are never mapped.
func ScopeFor(m mode.Mode) (Scope, bool) {
	switch m {
	case mode.Normal:
		return Normal, true
	case mode.Visual, mode.VisualLine, mode.VisualBlock:
		return Visual, true
	case mode.OperatorPending:
		return OperatorPending, true
	case mode.Insert, mode.Replace:
		return Insert, true
	default:
		return 0, false
	}
}

// Binding is one mapping.
type Binding struct {
	Scope Scope
	LHS   []key.Event
	RHS   []key.Event
}

// String returns the mapping in the form :map lists it.
func (b Binding) String() string {
	return fmt.Sprintf("%-10s %s", key.Format(b.LHS), key.Format(b.RHS))
}

type node struct {
	children map[key.Event]*node
	binding  *Binding
}

func (n *node) child(ev key.Event) *node {
	if n.children == nil {
		n.children = make(map[key.Event]*node)
	}
	c, ok := n.children[ev]
	if !ok {
		c = &node{}
		n.children[ev] = c
	}
	return c
}

// Map is the set of mappings of a session. It is safe for concurrent use.
type Map struct {
	mu     sync.RWMutex
	leader key.Event
	roots  [scopeCount]node
	count  int
}

// New creates an empty Map with a backslash leader.
func New() *Map {
	return &Map{leader: key.Rune('\\')}
}

// SetLeader changes the key "<Leader>" stands for in later mappings.
func (m *Map) SetLeader(ev key.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leader = ev
}

// Leader returns the leader key.
func (m *Map) Leader() key.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.leader
}

var leaderPattern = regexp.MustCompile(`(?i)<leader>`)

// parse converts a side of a mapping to events, replacing <Leader>.
func (m *Map) parse(s string) []key.Event {
	s = leaderPattern.ReplaceAllLiteralString(s, key.Format([]key.Event{m.leader}))
	return key.ParseSequence(s)
}

// Set maps lhs to rhs in scope, both in key notation, replacing an
// existing mapping of lhs.
func (m *Map) Set(scope Scope, lhs, rhs string) error {
	if scope >= scopeCount {
		return fmt.Errorf("keymap: invalid scope %d", scope)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	from := m.parse(lhs)
	if len(from) == 0 {
		return ErrEmptyLHS
	}
	n := &m.roots[scope]
	for _, ev := range from {
		n = n.child(ev)
	}
	if n.binding == nil {
		m.count++
	}
	n.binding = &Binding{Scope: scope, LHS: from, RHS: m.parse(rhs)}
	return nil
}

// Delete removes the mapping of lhs in scope.
func (m *Map) Delete(scope Scope, lhs string) error {
	if scope >= scopeCount {
		return fmt.Errorf("keymap: invalid scope %d", scope)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	from := m.parse(lhs)
	path := []*node{&m.roots[scope]}
	for _, ev := range from {
		next, ok := path[len(path)-1].children[ev]
		if !ok {
			return ErrNotMapped
		}
		path = append(path, next)
	}
	last := path[len(path)-1]
	if len(from) == 0 || last.binding == nil {
		return ErrNotMapped
	}
	last.binding = nil
	m.count--

	// Prune nodes left without bindings or children.
	for i := len(path) - 1; i > 0; i-- {
		if path[i].binding != nil || len(path[i].children) > 0 {
			break
		}
		delete(path[i-1].children, from[i-1])
	}
	return nil
}

// Clear removes every mapping of scope.
func (m *Map) Clear(scope Scope) {
	if scope >= scopeCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count -= countBindings(&m.roots[scope])
	m.roots[scope] = node{}
}

func countBindings(n *node) int {
	c := 0
	if n.binding != nil {
		c++
	}
	for _, ch := range n.children {
		c += countBindings(ch)
	}
	return c
}

// Len returns the number of mappings in every scope.
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.count
}

// Lookup returns the mapping whose left-hand side is exactly seq, and
// whether a longer mapping starts with seq.
func (m *Map) Lookup(scope Scope, seq []key.Event) (b *Binding, more bool) {
	if scope >= scopeCount || len(seq) == 0 {
		return nil, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := &m.roots[scope]
	for _, ev := range seq {
		next, ok := n.children[ev]
		if !ok {
			return nil, false
		}
		n = next
	}
	return n.binding, len(n.children) > 0
}

// Longest returns the mapping with the longest left-hand side that is a
// prefix of seq.
func (m *Map) Longest(scope Scope, seq []key.Event) *Binding {
	if scope >= scopeCount {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var found *Binding
	n := &m.roots[scope]
	for _, ev := range seq {
		next, ok := n.children[ev]
		if !ok {
			break
		}
		n = next
		if n.binding != nil {
			found = n.binding
		}
	}
	return found
}

// List returns the mappings of scope sorted by left-hand side.
func (m *Map) List(scope Scope) []Binding {
	if scope >= scopeCount {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Binding
	var walk func(n *node)
	walk = func(n *node) {
		if n.binding != nil {
			out = append(out, *n.binding)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(&m.roots[scope])
	sort.Slice(out, func(i, j int) bool {
		return key.Format(out[i].LHS) < key.Format(out[j].LHS)
	})
	return out
}
