package dispatcher

import (
	"github.com/dshills/modalcore/internal/input/vim"
	"github.com/dshills/modalcore/internal/layout"
)

// window runs the Ctrl-W command named by ch.
func (d *Dispatcher) window(ch rune, count int) error {
	if d.isVisual() {
		d.exitVisual()
	}

	switch ch {
	case 's', 'S':
		return d.split(layout.Horizontal)
	case 'v':
		return d.split(layout.Vertical)
	case 'n':
		if err := d.split(layout.Horizontal); err != nil {
			return err
		}
		d.switchBuffer(d.Open("").ID())
	case 'w', 'j', 'l':
		d.focus(d.layout.Next(count))
	case 'W', 'k', 'h', 'p':
		d.focus(d.layout.Next(-count))
	case 'c':
		return d.closeWindow()
	case 'q':
		if d.layout.Len() == 1 {
			return d.forward("quit")
		}
		return d.closeWindow()
	case 'o':
		d.layout.Only()
		d.focus(d.win())
	default:
		return &vim.InvalidCommandError{Keys: "\x17" + string(ch)}
	}
	return nil
}

func (d *Dispatcher) split(dir layout.Direction) error {
	w, err := d.layout.Split(dir)
	if err != nil {
		return err
	}
	d.logger.Debug("window split", "window", w.ID(), "buffer", w.BufferID())
	return nil
}

func (d *Dispatcher) closeWindow() error {
	if err := d.layout.Close(); err != nil {
		return err
	}
	d.focus(d.win())
	return nil
}

// focus brings the session state in line with the current window.
func (d *Dispatcher) focus(w *layout.Window) {
	d.regs.SetReadOnly('%', d.buffers[w.BufferID()].Path())
}
