package key

import (
	"fmt"
	"strings"
)

// Key identifies a keyboard key. Character keys use KeyRune with the
// character stored in Event.Rune.
type Key uint8

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// KeyRune is used for character keys.
	KeyRune
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyEscape:
		return "Escape"
	case KeyEnter:
		return "Enter"
	case KeyTab:
		return "Tab"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyInsert:
		return "Insert"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyPageUp:
		return "PageUp"
	case KeyPageDown:
		return "PageDown"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyRune:
		return "Rune"
	}
	if k.IsFunctionKey() {
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsSpecial returns true if this is a special (non-character) key.
func (k Key) IsSpecial() bool {
	return k != KeyNone && k != KeyRune
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}

// notationNames maps the name used inside <...> to each special key. The
// first spelling is the one Format writes.
var notationNames = map[Key][]string{
	KeyEscape:    {"Esc", "Escape"},
	KeyEnter:     {"CR", "Enter", "Return", "NL"},
	KeyTab:       {"Tab"},
	KeyBackspace: {"BS", "Backspace"},
	KeyDelete:    {"Del", "Delete"},
	KeyInsert:    {"Insert", "Ins"},
	KeyHome:      {"Home"},
	KeyEnd:       {"End"},
	KeyPageUp:    {"PageUp", "PgUp"},
	KeyPageDown:  {"PageDown", "PgDn"},
	KeyUp:        {"Up"},
	KeyDown:      {"Down"},
	KeyLeft:      {"Left"},
	KeyRight:     {"Right"},
}

// runeNames are <...> names that stand for a plain character.
var runeNames = map[string]rune{
	"lt":     '<',
	"space":  ' ',
	"bar":    '|',
	"bslash": '\\',
}

// keyByName is the lowercase reverse index of notationNames.
var keyByName = func() map[string]Key {
	m := make(map[string]Key)
	for k, names := range notationNames {
		for _, n := range names {
			m[strings.ToLower(n)] = k
		}
	}
	for k := KeyF1; k <= KeyF12; k++ {
		m[strings.ToLower(k.String())] = k
	}
	return m
}()

// notationName returns the name Format writes for a special key.
func notationName(k Key) string {
	if names, ok := notationNames[k]; ok {
		return names[0]
	}
	return k.String()
}
