package renderer

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modalcore/internal/dispatcher"
)

func newScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(width, height)
	t.Cleanup(s.Fini)
	return s
}

// row returns the text of screen row y with trailing blanks removed.
func row(s tcell.SimulationScreen, y int) string {
	cells, width, _ := s.GetContents()
	var sb strings.Builder
	for x := range width {
		c := cells[y*width+x]
		if len(c.Runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteString(string(c.Runes))
	}
	return strings.TrimRight(sb.String(), " ")
}

func styleAt(s tcell.SimulationScreen, x, y int) tcell.Style {
	cells, width, _ := s.GetContents()
	return cells[y*width+x].Style
}

func TestDrawText(t *testing.T) {
	s := newScreen(t, 40, 5)
	d := dispatcher.New("one\n\ttwo", dispatcher.WithSize(40, 4))
	r := New(s)
	r.Draw(d, dispatcher.Outcome{})

	want := []string{"one", "        two", "~", "~"}
	for y, w := range want {
		if got := row(s, y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}
	if got := row(s, 4); !strings.HasSuffix(got, "1,1") {
		t.Errorf("status = %q, want ruler 1,1", got)
	}
}

func TestDrawStatus(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want string
	}{
		{name: "insert", keys: "i", want: "-- INSERT --"},
		{name: "visual line", keys: "V", want: "-- VISUAL LINE --"},
		{name: "command line", keys: ":s/a", want: ":s/a"},
		{name: "recording", keys: "qa", want: "recording @a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScreen(t, 40, 4)
			d := dispatcher.New("abc", dispatcher.WithSize(40, 3))
			out := d.SubmitKeys(tt.keys)
			New(s).Draw(d, out)
			if got := row(s, 3); !strings.HasPrefix(got, tt.want) {
				t.Errorf("status = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestDrawMessage(t *testing.T) {
	s := newScreen(t, 40, 4)
	d := dispatcher.New("abc", dispatcher.WithSize(40, 3))
	out := d.SubmitKeys("/zzz<CR>")
	New(s).Draw(d, out)

	got := row(s, 3)
	if !strings.HasPrefix(got, "E486") {
		t.Fatalf("status = %q, want E486 message", got)
	}
	if styleAt(s, 0, 3) != DefaultStyles().Error {
		t.Error("error message not drawn in the error style")
	}
}

func TestDrawSelection(t *testing.T) {
	s := newScreen(t, 20, 4)
	d := dispatcher.New("abcdef\nghi", dispatcher.WithSize(20, 3))
	out := d.SubmitKeys("lvl")
	New(s).Draw(d, out)

	sel := DefaultStyles().Selection
	for x, want := range []bool{false, true, true, false} {
		if got := styleAt(s, x, 0) == sel; got != want {
			t.Errorf("cell %d selected = %v, want %v", x, got, want)
		}
	}
	if styleAt(s, 0, 1) == sel {
		t.Error("second line selected")
	}
}

func TestDrawVerticalSplit(t *testing.T) {
	s := newScreen(t, 21, 3)
	d := dispatcher.New("left", dispatcher.WithSize(21, 2))
	out := d.SubmitKeys("<C-w>v")
	New(s).Draw(d, out)

	if got := row(s, 0); got != "left      │left" {
		t.Errorf("row 0 = %q", got)
	}
}

func TestDrawScrolled(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = string(rune('a' + i))
	}
	s := newScreen(t, 10, 4)
	d := dispatcher.New(strings.Join(lines, "\n"), dispatcher.WithSize(10, 3))
	out := d.SubmitKeys("G")
	New(s).Draw(d, out)

	for y, want := range []string{"r", "s", "t"} {
		if got := row(s, y); got != want {
			t.Errorf("row %d = %q, want %q", y, got, want)
		}
	}
}
