package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a single key in Vim notation: "a", "<Esc>", "<C-r>",
// "<S-Up>", "<lt>".
func Parse(spec string) (Event, error) {
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	events, n, ok := parseOne(spec)
	if !ok || n != len(spec) || len(events) != 1 {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	return events[0], nil
}

// MustParse is like Parse but panics on error. Intended for tables of
// constant key specs.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return e
}

// ParseSequence converts text in key notation into events. It never
// fails: a '<' that does not start a recognised key name is taken
// literally, so arbitrary register text can be replayed. Raw control
// characters are accepted as well (0x1b is Esc, 0x12 is Ctrl-R).
func ParseSequence(s string) []Event {
	var events []Event
	for len(s) > 0 {
		ev, n, ok := parseOne(s)
		if !ok {
			ev, n = []Event{Rune('<')}, 1
		}
		events = append(events, ev...)
		s = s[n:]
	}
	return events
}

// parseOne parses the key at the start of s and returns it with the
// number of bytes consumed.
func parseOne(s string) ([]Event, int, bool) {
	if s[0] == '<' {
		end := strings.IndexByte(s[1:], '>')
		if end > 0 {
			if ev, ok := parseBracketed(s[1 : end+1]); ok {
				return []Event{ev}, end + 2, true
			}
		}
		if len(s) == 1 {
			return []Event{Rune('<')}, 1, true
		}
		return nil, 0, false
	}
	r, size := utf8.DecodeRuneInString(s)
	return []Event{fromRaw(r)}, size, true
}

// parseBracketed parses the inside of a <...> key name.
func parseBracketed(inner string) (Event, bool) {
	var mods Modifier
	for len(inner) > 2 && inner[1] == '-' {
		m, ok := modifierFromLetter(inner[:1])
		if !ok {
			break
		}
		mods = mods.With(m)
		inner = inner[2:]
	}

	if utf8.RuneCountInString(inner) == 1 {
		r, _ := utf8.DecodeRuneInString(inner)
		return runeWithMods(r, mods), true
	}
	name := strings.ToLower(inner)
	if r, ok := runeNames[name]; ok {
		return runeWithMods(r, mods), true
	}
	if k, ok := keyByName[name]; ok {
		return Event{Key: k, Modifiers: mods}, true
	}
	return Event{}, false
}

func runeWithMods(r rune, mods Modifier) Event {
	if mods.Has(ModShift) && r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
		mods &^= ModShift
	}
	if mods.Has(ModCtrl) && r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// fromRaw maps a raw character, including ASCII control codes, to an event.
func fromRaw(r rune) Event {
	switch {
	case r == 0x1b:
		return Special(KeyEscape)
	case r == '\r' || r == '\n':
		return Special(KeyEnter)
	case r == '\t':
		return Special(KeyTab)
	case r == 0x08 || r == 0x7f:
		return Special(KeyBackspace)
	case r >= 0x01 && r <= 0x1a:
		return Ctrl('a' + r - 1)
	}
	return Rune(r)
}

// Format writes events in Vim notation. ParseSequence(Format(ev))
// returns ev for every event Format can express.
func Format(events []Event) string {
	var b strings.Builder
	for _, e := range events {
		switch {
		case e.Key == KeyRune && e.Modifiers == ModNone:
			if e.Rune == '<' {
				b.WriteString("<lt>")
			} else {
				b.WriteRune(e.Rune)
			}
		case e.Key == KeyRune:
			b.WriteString("<" + e.Modifiers.String())
			if e.Rune == '<' {
				b.WriteString("lt")
			} else {
				b.WriteRune(e.Rune)
			}
			b.WriteByte('>')
		case e.Key == KeyNone:
		default:
			b.WriteString("<" + e.Modifiers.String() + notationName(e.Key) + ">")
		}
	}
	return b.String()
}
