package key

import "strings"

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key. It is only reported for special
	// keys; shifted characters arrive as their uppercase rune.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// String returns the notation prefix such as "C-" or "C-A-".
func (m Modifier) String() string {
	var b strings.Builder
	if m.Has(ModCtrl) {
		b.WriteString("C-")
	}
	if m.Has(ModAlt) {
		b.WriteString("A-")
	}
	if m.Has(ModShift) {
		b.WriteString("S-")
	}
	return b.String()
}

// modifierFromLetter maps a notation prefix letter to a Modifier.
func modifierFromLetter(s string) (Modifier, bool) {
	switch s {
	case "c", "C":
		return ModCtrl, true
	case "a", "A", "m", "M":
		return ModAlt, true
	case "s", "S":
		return ModShift, true
	}
	return ModNone, false
}
