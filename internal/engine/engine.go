package engine

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
	"github.com/dshills/modalcore/internal/engine/mark"
)

// Re-export commonly used types for convenience.
type (
	// Position is a line/column location.
	Position = buffer.Position

	// Range is a half-open byte range.
	Range = buffer.Range

	// Edit is an invertible buffer edit.
	Edit = buffer.Edit

	// ChangeSet is one undo unit.
	ChangeSet = history.ChangeSet
)

// Engine combines a buffer with its history, marks and change list.
type Engine struct {
	id   string
	path string

	buf     *buffer.Buffer
	hist    *history.History
	marks   *mark.Table
	changes *mark.ChangeList

	modified bool
	logger   *slog.Logger

	// construction settings
	content        string
	tabWidth       int
	undoLevels     int
	changeListSize int
	observers      []buffer.Observer
}

// New creates an engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		id:             uuid.NewString(),
		tabWidth:       buffer.DefaultTabWidth,
		undoLevels:     history.DefaultMaxEntries,
		changeListSize: mark.DefaultListSize,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.buf = buffer.New(e.content, buffer.WithTabWidth(e.tabWidth))
	e.content = ""
	e.hist = history.New(e.undoLevels)
	e.marks = mark.NewTable()
	e.changes = mark.NewChangeList(e.changeListSize)

	e.buf.AddObserver(e.hist)
	e.buf.AddObserver(e.marks)
	e.buf.AddObserver(e.changes)
	e.buf.AddObserver(buffer.ObserverFunc(func(buffer.Edit) { e.modified = true }))
	for _, o := range e.observers {
		e.buf.AddObserver(o)
	}
	e.observers = nil
	return e
}

// NewFromReader creates an engine with content read from r.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(append(opts, WithContent(string(data)))...), nil
}

// ID returns the session-unique buffer ID.
func (e *Engine) ID() string { return e.id }

// Path returns the file path associated with the buffer, if any.
func (e *Engine) Path() string { return e.path }

// SetPath associates a file path with the buffer.
func (e *Engine) SetPath(path string) { e.path = path }

// Buffer returns the underlying buffer.
func (e *Engine) Buffer() *buffer.Buffer { return e.buf }

// History returns the undo history.
func (e *Engine) History() *history.History { return e.hist }

// Marks returns the local mark table.
func (e *Engine) Marks() *mark.Table { return e.marks }

// ChangeList returns the change list.
func (e *Engine) ChangeList() *mark.ChangeList { return e.changes }

// Text returns the full buffer content.
func (e *Engine) Text() string { return e.buf.Text() }

// Snapshot returns an immutable view of the buffer.
func (e *Engine) Snapshot() buffer.Snapshot { return e.buf.Snapshot() }

// Modified reports whether the buffer changed since the last SetModified(false).
func (e *Engine) Modified() bool { return e.modified }

// SetModified sets the modified flag, typically cleared by the host after a write.
func (e *Engine) SetModified(m bool) { e.modified = m }

// AddObserver registers an additional buffer observer.
func (e *Engine) AddObserver(o buffer.Observer) func() {
	return e.buf.AddObserver(o)
}

// ===========================================================================
// Changes and undo
// ===========================================================================

// BeginChange opens an undo unit. Calls nest.
func (e *Engine) BeginChange(name string, cursor Position) {
	e.hist.BeginGroup(name, cursor)
}

// EndChange closes the undo unit opened by the matching BeginChange. When
// the outermost unit closes with edits, the change marks and change list
// are updated. It reports whether an undo unit was recorded.
func (e *Engine) EndChange(cursor Position) bool {
	if !e.hist.EndGroup(cursor) {
		return false
	}
	cs, ok := e.hist.Last()
	if !ok {
		return true
	}
	e.noteChange(cs)
	e.logger.Debug("change recorded", "buffer", e.id, "name", cs.Name, "edits", len(cs.Edits), "seq", cs.Seq)
	return true
}

// InChange reports whether an undo unit is open.
func (e *Engine) InChange() bool {
	return e.hist.InGroup()
}

// Apply runs a single replacement as its own undo unit.
func (e *Engine) Apply(name string, r Range, text string, cursor Position) error {
	e.BeginChange(name, cursor)
	_, err := e.buf.Replace(r, text)
	after := cursor
	if err == nil {
		after = e.buf.Position(r.Start + len(text))
	}
	e.EndChange(after)
	return err
}

func (e *Engine) noteChange(cs ChangeSet) {
	start, end, ok := cs.Span()
	if !ok {
		return
	}
	e.marks.Set(mark.ChangeStart, start)
	e.marks.Set(mark.ChangeEnd, max(start, end-1))
	e.marks.Set(mark.LastChange, start)
	e.changes.Add(start)
}

// Undo reverts the newest undo unit and returns the cursor to restore.
func (e *Engine) Undo() (Position, error) {
	cs, err := e.hist.Undo(e.buf)
	if err != nil {
		return Position{}, err
	}
	e.logger.Debug("undo", "buffer", e.id, "name", cs.Name, "seq", cs.Seq)
	if start, _, ok := cs.Span(); ok {
		e.marks.Set(mark.LastChange, min(start, e.buf.Len()))
	}
	return e.buf.ClampPosition(cs.CursorBefore), nil
}

// Redo reapplies the newest undone unit and returns the cursor to restore.
func (e *Engine) Redo() (Position, error) {
	cs, err := e.hist.Redo(e.buf)
	if err != nil {
		return Position{}, err
	}
	e.logger.Debug("redo", "buffer", e.id, "name", cs.Name, "seq", cs.Seq)
	e.noteChange(cs)
	return e.buf.ClampPosition(cs.CursorBefore), nil
}

// Reset replaces the whole content, dropping history and marks. Used when
// the host reloads the file from disk.
func (e *Engine) Reset(text string) {
	e.hist.CancelGroup()
	e.buf.Replace(buffer.Range{Start: 0, End: e.buf.Len()}, text)
	e.hist.Clear()
	for _, m := range e.marks.List() {
		e.marks.Delete(m.Name)
	}
	e.changes.Restore(nil, 0)
	e.modified = false
}
