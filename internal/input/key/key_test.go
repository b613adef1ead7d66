package key

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyEscape, "Escape"},
		{KeyEnter, "Enter"},
		{KeyBackspace, "Backspace"},
		{KeyUp, "Up"},
		{KeyF1, "F1"},
		{KeyF12, "F12"},
		{KeyRune, "Rune"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", Rune('a')},
		{"A", Rune('A')},
		{"<Esc>", Special(KeyEscape)},
		{"<esc>", Special(KeyEscape)},
		{"<CR>", Special(KeyEnter)},
		{"<Enter>", Special(KeyEnter)},
		{"<BS>", Special(KeyBackspace)},
		{"<C-r>", Ctrl('r')},
		{"<C-R>", Ctrl('r')},
		{"<S-a>", Rune('A')},
		{"<S-Up>", Event{Key: KeyUp, Modifiers: ModShift}},
		{"<A-x>", Event{Key: KeyRune, Rune: 'x', Modifiers: ModAlt}},
		{"<lt>", Rune('<')},
		{"<Space>", Rune(' ')},
		{"<F5>", Special(KeyF5)},
		{"<C-->", Event{Key: KeyRune, Rune: '-', Modifiers: ModCtrl}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("Parse(\"\") error = %v", err)
	}
	for _, spec := range []string{"<Nope>", "ab", "<C-r>x"} {
		if _, err := Parse(spec); !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidSpec", spec, err)
		}
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		in   string
		want []Event
	}{
		{"dw", []Event{Rune('d'), Rune('w')}},
		{"ihi<Esc>", []Event{Rune('i'), Rune('h'), Rune('i'), Special(KeyEscape)}},
		{"a<b", []Event{Rune('a'), Rune('<'), Rune('b')}},
		{"<nope>", []Event{Rune('<'), Rune('n'), Rune('o'), Rune('p'), Rune('e'), Rune('>')}},
		{"x\x1b", []Event{Rune('x'), Special(KeyEscape)}},
		{"\x12a", []Event{Ctrl('r'), Rune('a')}},
		{"<", []Event{Rune('<')}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseSequence(tt.in)); diff != "" {
				t.Errorf("ParseSequence(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	events := []Event{
		Rune('c'), Rune('w'), Rune('<'), Rune(' '), Ctrl('w'),
		Special(KeyEnter), Special(KeyEscape), {Key: KeyLeft, Modifiers: ModShift},
	}
	s := Format(events)
	if s != "cw<lt> <C-w><CR><Esc><S-Left>" {
		t.Errorf("Format() = %q", s)
	}
	if diff := cmp.Diff(events, ParseSequence(s)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEventPredicates(t *testing.T) {
	if !Ctrl('R').IsCtrl('r') {
		t.Error("Ctrl('R') should match IsCtrl('r')")
	}
	if Ctrl('r').IsRune() {
		t.Error("Ctrl events are not plain runes")
	}
	if !Rune('7').IsDigit() || Rune('x').IsDigit() {
		t.Error("IsDigit mismatch")
	}
	if !Ctrl('[').IsEscape() || !Special(KeyEscape).IsEscape() {
		t.Error("IsEscape should accept Esc and Ctrl-[")
	}
	if diff := cmp.Diff([]Event{Rune('a'), Special(KeyEnter), Special(KeyTab)}, Runes("a\n\t")); diff != "" {
		t.Errorf("Runes mismatch:\n%s", diff)
	}
}

func TestFromTcell(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), Rune('x')},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModShift), Rune('X')},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Special(KeyEscape)},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Special(KeyEnter)},
		{"ctrl-r", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), Ctrl('r')},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), Special(KeyBackspace)},
		{"f3", tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModNone), Special(KeyF3)},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModAlt), Event{Key: KeyRune, Rune: 'f', Modifiers: ModAlt}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromTcell(tt.ev); got != tt.want {
				t.Errorf("FromTcell() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
