package dispatcher

import (
	"github.com/dshills/modalcore/internal/dispatcher/ex"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/cursor"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/layout"
)

// Outcome is the result of one SubmitKey.
type Outcome struct {
	// Redraw is set when anything visible changed.
	Redraw bool

	// Mode is the mode after the key.
	Mode mode.Mode

	// PendingEcho is the partial command ("2d", "\"a") or the command
	// line being typed (":s/a").
	PendingEcho string

	// Message is the status line text, such as an error.
	Message string

	// Forwarded holds ex command lines the core does not handle, when no
	// Host is attached.
	Forwarded []string
}

// State is a snapshot of what a host needs to draw.
type State struct {
	Text   string
	Cursor buffer.Position
	Offset int
	Mode   mode.Mode

	// Selection is set in the Visual modes.
	Selection *cursor.Selection

	// Buffer is the id of the buffer in the current window.
	Buffer   string
	Viewport layout.State

	CommandLine string
	Recording   rune
}

// Host runs the ex commands the core forwards, such as :w and :e.
type Host interface {
	Ex(cmd ex.Command) (string, error)
}

// HostFunc adapts a function to Host.
type HostFunc func(cmd ex.Command) (string, error)

// Ex implements Host.
func (f HostFunc) Ex(cmd ex.Command) (string, error) { return f(cmd) }
