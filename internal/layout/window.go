package layout

import "github.com/dshills/modalcore/internal/engine/cursor"

// Rect is a window's position and size in screen cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Window shows one buffer with its own cursor and viewport. Several
// windows may show the same buffer.
type Window struct {
	id       int
	bufferID string

	// Cursor is the window's cursor in its buffer.
	Cursor cursor.Cursor

	view *Viewport
	rect Rect
}

// ID returns the window number, unique within its Layout.
func (w *Window) ID() int { return w.id }

// BufferID returns the id of the buffer the window shows.
func (w *Window) BufferID() string { return w.bufferID }

// SetBuffer switches the window to another buffer.
func (w *Window) SetBuffer(id string) {
	w.bufferID = id
	w.Cursor = cursor.New(0)
	w.view.ScrollTo(0)
}

// View returns the window's viewport.
func (w *Window) View() *Viewport { return w.view }

// Rect returns the window's screen area.
func (w *Window) Rect() Rect { return w.rect }

func (w *Window) setRect(r Rect) {
	w.rect = r
	w.view.Resize(r.Width, r.Height)
}
