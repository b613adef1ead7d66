package key

import "unicode"

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// Rune creates an event for a plain character.
func Rune(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// Ctrl creates an event for Ctrl plus a character, such as Ctrl('r').
func Ctrl(r rune) Event {
	return Event{Key: KeyRune, Rune: unicode.ToLower(r), Modifiers: ModCtrl}
}

// Special creates an event for a special key.
func Special(k Key) Event {
	return Event{Key: k}
}

// Runes converts text into one event per character. Newlines become
// Enter and tabs become Tab.
func Runes(s string) []Event {
	events := make([]Event, 0, len(s))
	for _, r := range s {
		switch r {
		case '\n':
			events = append(events, Special(KeyEnter))
		case '\t':
			events = append(events, Special(KeyTab))
		default:
			events = append(events, Rune(r))
		}
	}
	return events
}

// IsRune returns true if this is an unmodified character key.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0 && e.Modifiers&(ModCtrl|ModAlt) == 0
}

// IsCtrl reports whether the event is Ctrl plus r.
func (e Event) IsCtrl(r rune) bool {
	return e.Key == KeyRune && e.Modifiers.Has(ModCtrl) && unicode.ToLower(e.Rune) == unicode.ToLower(r)
}

// Is reports whether the event is the unmodified special key k.
func (e Event) Is(k Key) bool {
	return e.Key == k && e.Modifiers == ModNone
}

// IsDigit reports whether the event is an unmodified decimal digit.
func (e Event) IsDigit() bool {
	return e.IsRune() && e.Rune >= '0' && e.Rune <= '9'
}

// IsEscape reports whether the event cancels the current mode: Esc or
// Ctrl-[ or Ctrl-C.
func (e Event) IsEscape() bool {
	return e.Is(KeyEscape) || e.IsCtrl('[') || e.IsCtrl('c')
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	return e == other
}

// String returns the Vim notation of the event.
func (e Event) String() string {
	return Format([]Event{e})
}
