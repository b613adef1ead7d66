package register

import (
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Unnamed is the default register name.
const Unnamed = '"'

// IsValid reports whether name is a register.
func IsValid(name rune) bool {
	switch {
	case name == Unnamed, name == '-', name == '_', name == '+', name == '*':
		return true
	case name == '.', name == ':', name == '/', name == '%':
		return true
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z', name >= '0' && name <= '9':
		return true
	}
	return false
}

// IsReadOnly reports whether name can only be written by the editor.
func IsReadOnly(name rune) bool {
	switch name {
	case '.', ':', '/', '%':
		return true
	}
	return false
}

func isClipboard(name rune) bool { return name == '+' || name == '*' }

// Option configures a Store.
type Option func(*Store)

// WithClipboard sets the provider backing + and *.
func WithClipboard(p ClipboardProvider) Option {
	return func(s *Store) {
		if p != nil {
			s.clipboard = p
		}
	}
}

// Store holds every register of an editing session.
type Store struct {
	mu        sync.RWMutex
	values    map[rune]Value
	clipboard ClipboardProvider

	// last value written to the clipboard, to keep its shape on read back
	clipShadow Value
}

// New creates an empty register store with an in-memory clipboard.
func New(opts ...Option) *Store {
	s := &Store{
		values:    make(map[rune]Value),
		clipboard: &MemoryClipboard{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the content of register name. Uppercase names read the
// lowercase register. The black hole register always reads empty.
func (s *Store) Get(name rune) (Value, error) {
	if !IsValid(name) {
		return Value{}, ErrInvalidRegister
	}
	name = unicode.ToLower(name)
	if name == '_' {
		return Value{Shape: Charwise}, nil
	}
	if isClipboard(name) {
		return s.readClipboard(name)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	if !ok || v.IsEmpty() {
		return Value{}, &EmptyError{Name: name}
	}
	return v, nil
}

func (s *Store) readClipboard(name rune) (Value, error) {
	s.mu.RLock()
	cb, shadow := s.clipboard, s.clipShadow
	s.mu.RUnlock()

	text, err := cb.Get()
	if err != nil {
		return Value{}, err
	}
	switch {
	case text == "":
		return Value{}, &EmptyError{Name: name}
	case text == shadow.Text:
		return shadow, nil
	case strings.HasSuffix(text, "\n"):
		return Value{Text: text, Shape: Linewise}, nil
	default:
		return Chars(text), nil
	}
}

// Set writes register name directly. Uppercase names append. The unnamed
// register is not touched unless name is '"'.
func (s *Store) Set(name rune, v Value) error {
	if !IsValid(name) {
		return ErrInvalidRegister
	}
	if IsReadOnly(name) {
		return ErrReadOnly
	}
	switch {
	case name == '_':
		return nil
	case isClipboard(name):
		return s.writeClipboard(v)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(name, v)
	return nil
}

func (s *Store) setLocked(name rune, v Value) {
	if unicode.IsUpper(name) {
		lower := unicode.ToLower(name)
		if old, ok := s.values[lower]; ok && !old.IsEmpty() {
			v = appendValue(old, v)
		}
		name = lower
	}
	s.values[name] = v
}

func (s *Store) writeClipboard(v Value) error {
	s.mu.Lock()
	cb := s.clipboard
	s.clipShadow = v
	s.mu.Unlock()
	return cb.Set(v.Text)
}

// Yank stores the result of a yank. Without an explicit register (0 or
// '"') it goes to "0; otherwise to the named register. The unnamed
// register receives the value in both cases unless name is '_'.
func (s *Store) Yank(name rune, v Value) error {
	return s.route(name, v, func() { s.values['0'] = v })
}

// Delete stores the result of a delete or change. Without an explicit
// register, text spanning a line or more rotates "1.."9 and shorter text
// goes to "-.
func (s *Store) Delete(name rune, v Value) error {
	return s.route(name, v, func() {
		if v.Shape == Linewise || strings.Contains(v.Text, "\n") {
			for i := '9'; i > '1'; i-- {
				if prev, ok := s.values[i-1]; ok {
					s.values[i] = prev
				}
			}
			s.values['1'] = v
			return
		}
		s.values['-'] = v
	})
}

func (s *Store) route(name rune, v Value, implicit func()) error {
	if name == 0 {
		name = Unnamed
	}
	if !IsValid(name) {
		return ErrInvalidRegister
	}
	if IsReadOnly(name) {
		return ErrReadOnly
	}
	if name == '_' {
		return nil
	}
	if isClipboard(name) {
		if err := s.writeClipboard(v); err != nil {
			return err
		}
		s.mu.Lock()
		s.values[Unnamed] = v
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if name == Unnamed {
		implicit()
		s.values[Unnamed] = v
		return nil
	}
	s.setLocked(name, v)
	s.values[Unnamed] = s.values[unicode.ToLower(name)]
	return nil
}

// SetReadOnly updates one of the editor-maintained registers (. : / %).
func (s *Store) SetReadOnly(name rune, text string) {
	if !IsReadOnly(name) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = Chars(text)
}

// Entry is one register as listed by :registers.
type Entry struct {
	Name  rune
	Value Value
}

// List returns every non-empty register in :registers order. The
// clipboard registers are not read.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.values))
	for name, v := range s.values {
		if !v.IsEmpty() {
			out = append(out, Entry{Name: name, Value: v})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return listRank(out[i].Name) < listRank(out[j].Name)
	})
	return out
}

func listRank(name rune) int {
	switch {
	case name == Unnamed:
		return 0
	case name >= '0' && name <= '9':
		return 10 + int(name-'0')
	case name >= 'a' && name <= 'z':
		return 100 + int(name-'a')
	case name == '-':
		return 200
	}
	return 300 + int(name)
}

// Restore replaces the stored values, typically from a saved session.
// Read-only and clipboard registers in values are ignored except for the
// editor-maintained ones.
func (s *Store) Restore(values map[rune]Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[rune]Value, len(values))
	for name, v := range values {
		if IsValid(name) && !isClipboard(name) && name != '_' && !unicode.IsUpper(name) {
			s.values[name] = v
		}
	}
}
