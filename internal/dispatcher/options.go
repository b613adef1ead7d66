package dispatcher

import (
	"log/slog"

	"github.com/dshills/modalcore/internal/engine/mark"
	"github.com/dshills/modalcore/internal/engine/register"
	"github.com/dshills/modalcore/internal/input/keymap"
	"github.com/dshills/modalcore/internal/input/macro"
	"github.com/dshills/modalcore/internal/motion"
)

// Option configures a Dispatcher during creation.
type Option func(*Dispatcher)

// WithSettings sets the initial option values.
func WithSettings(s Settings) Option {
	return func(d *Dispatcher) {
		d.settings = s
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithPath sets the path of the first buffer.
func WithPath(path string) Option {
	return func(d *Dispatcher) {
		d.path = path
	}
}

// WithKeymap sets the user key mappings.
func WithKeymap(m *keymap.Map) Option {
	return func(d *Dispatcher) {
		d.keymap = m
	}
}

// WithHost attaches the host that receives forwarded ex commands.
func WithHost(h Host) Option {
	return func(d *Dispatcher) {
		d.host = h
	}
}

// WithClipboard sets the provider behind the + and * registers.
func WithClipboard(p register.ClipboardProvider) Option {
	return func(d *Dispatcher) {
		d.clipboard = p
	}
}

// WithMatcher replaces the regular expression engine used by searches.
func WithMatcher(m motion.Matcher) Option {
	return func(d *Dispatcher) {
		d.matcher = m
	}
}

// WithSize sets the screen size shared by the windows.
func WithSize(width, height int) Option {
	return func(d *Dispatcher) {
		d.width, d.height = width, height
	}
}

// WithJumpListSize bounds the jump list.
func WithJumpListSize(n int) Option {
	return func(d *Dispatcher) {
		d.jumpListSize = n
	}
}

// WithChangeListSize bounds the change list of every buffer.
func WithChangeListSize(n int) Option {
	return func(d *Dispatcher) {
		d.changeListSize = n
	}
}

// WithMacroDepth sets how deeply macros may run other macros.
func WithMacroDepth(n int) Option {
	return func(d *Dispatcher) {
		d.macroDepth = n
	}
}

func defaults(d *Dispatcher) {
	d.settings = DefaultSettings()
	d.width, d.height = 80, 24
	d.jumpListSize = mark.DefaultListSize
	d.changeListSize = mark.DefaultListSize
	d.macroDepth = macro.DefaultMaxDepth
}
