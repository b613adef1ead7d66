package renderer

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/mode"
)

// Terminal owns the tcell screen of an interactive host.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a terminal on the process's tty.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalScreen wraps an existing screen, such as a simulation screen
// in tests.
func NewTerminalScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init puts the terminal into raw mode.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Screen returns the underlying screen.
func (t *Terminal) Screen() tcell.Screen { return t.screen }

// Size returns the area available to the layout: the screen without its
// status row.
func (t *Terminal) Size() (width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.screen.Size()
	return w, max(h-1, 1)
}

// SetCursorStyle shapes the cursor for m.
func (t *Terminal) SetCursorStyle(m mode.Mode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var style tcell.CursorStyle
	switch m.CursorStyle() {
	case mode.CursorBar:
		style = tcell.CursorStyleSteadyBar
	case mode.CursorUnderline:
		style = tcell.CursorStyleSteadyUnderline
	default:
		style = tcell.CursorStyleSteadyBlock
	}
	t.screen.SetCursorStyle(style)
}

// Event is one input event of interest to a host.
type Event struct {
	Key    key.Event
	IsKey  bool
	Resize bool

	// Paste is the text of a bracketed paste.
	Paste string
}

// PollEvent blocks until the next key, resize or paste. It returns false
// once the screen is finished.
func (t *Terminal) PollEvent() (Event, bool) {
	var paste []rune
	pasting := false
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return Event{}, false
		case *tcell.EventResize:
			return Event{Resize: true}, true
		case *tcell.EventPaste:
			if ev.Start() {
				pasting, paste = true, paste[:0]
				continue
			}
			pasting = false
			return Event{Paste: string(paste)}, true
		case *tcell.EventKey:
			if pasting {
				if ev.Key() == tcell.KeyEnter {
					paste = append(paste, '\n')
				} else if ev.Key() == tcell.KeyRune {
					paste = append(paste, ev.Rune())
				}
				continue
			}
			return Event{Key: key.FromTcell(ev), IsKey: true}, true
		}
	}
}
