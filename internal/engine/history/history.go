package history

import (
	"sync"
	"time"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// DefaultMaxEntries bounds the undo stack unless overridden.
const DefaultMaxEntries = 1000

// History manages undo/redo state for one buffer.
type History struct {
	mu sync.Mutex

	undoStack []*ChangeSet
	redoStack []*ChangeSet

	// open group
	open      *ChangeSet
	depth     int
	replaying bool

	seq        int
	maxEntries int
}

// New creates a history holding at most maxEntries change sets.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// SetMaxEntries changes the undo depth, discarding the oldest sets if needed.
func (h *History) SetMaxEntries(n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n <= 0 {
		return
	}
	h.maxEntries = n
	h.trimLocked()
}

// BufferChanged records e. It implements buffer.Observer.
func (h *History) BufferChanged(e buffer.Edit) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.replaying {
		return
	}
	if h.open != nil {
		h.open.Edits = append(h.open.Edits, e)
		return
	}
	h.pushLocked(&ChangeSet{Name: "edit", Edits: []buffer.Edit{e}, Time: time.Now()})
}

// BeginGroup opens a change set. Nested calls only bump a depth counter.
func (h *History) BeginGroup(name string, cursor buffer.Position) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.depth++
	if h.depth > 1 {
		return
	}
	h.open = &ChangeSet{Name: name, CursorBefore: cursor, Time: time.Now()}
}

// EndGroup closes the outermost open group and records it when it holds
// any edits. It reports whether a change set was recorded.
func (h *History) EndGroup(cursor buffer.Position) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth == 0 {
		return false
	}
	h.depth--
	if h.depth > 0 {
		return false
	}
	cs := h.open
	h.open = nil
	if cs.IsEmpty() {
		return false
	}
	cs.CursorAfter = cursor
	h.pushLocked(cs)
	return true
}

// CancelGroup closes all open groups without recording them. Edits
// already applied stay in the buffer.
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.open = nil
	h.depth = 0
}

// InGroup reports whether a group is open.
func (h *History) InGroup() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.depth > 0
}

func (h *History) pushLocked(cs *ChangeSet) {
	h.seq++
	cs.Seq = h.seq
	h.undoStack = append(h.undoStack, cs)
	h.redoStack = nil
	h.trimLocked()
}

func (h *History) trimLocked() {
	if excess := len(h.undoStack) - h.maxEntries; excess > 0 {
		h.undoStack = append([]*ChangeSet(nil), h.undoStack[excess:]...)
	}
}

// Undo reverts the newest change set and returns it. On an empty stack it
// returns an *ExhaustedError and leaves the buffer untouched.
func (h *History) Undo(buf *buffer.Buffer) (ChangeSet, error) {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return ChangeSet{}, &ExhaustedError{}
	}
	cs := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.replaying = true
	h.mu.Unlock()

	err := cs.revert(buf)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.replaying = false
	if err != nil {
		h.undoStack = append(h.undoStack, cs)
		return ChangeSet{}, err
	}
	h.redoStack = append(h.redoStack, cs)
	return cs.clone(), nil
}

// Redo reapplies the most recently undone change set and returns it.
func (h *History) Redo(buf *buffer.Buffer) (ChangeSet, error) {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return ChangeSet{}, &ExhaustedError{Redo: true}
	}
	cs := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.replaying = true
	h.mu.Unlock()

	err := cs.apply(buf)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.replaying = false
	if err != nil {
		h.redoStack = append(h.redoStack, cs)
		return ChangeSet{}, err
	}
	h.undoStack = append(h.undoStack, cs)
	return cs.clone(), nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Last returns a copy of the newest recorded change set.
func (h *History) Last() (ChangeSet, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undoStack) == 0 {
		return ChangeSet{}, false
	}
	return h.undoStack[len(h.undoStack)-1].clone(), true
}

// Stacks returns copies of the undo and redo stacks, oldest first.
func (h *History) Stacks() (undo, redo []ChangeSet) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, cs := range h.undoStack {
		undo = append(undo, cs.clone())
	}
	for _, cs := range h.redoStack {
		redo = append(redo, cs.clone())
	}
	return undo, redo
}

// Restore replaces both stacks, typically with state loaded from a session.
// The caller guarantees the stacks match the buffer content.
func (h *History) Restore(undo, redo []ChangeSet) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack, h.redoStack = nil, nil
	for i := range undo {
		cs := undo[i].clone()
		h.undoStack = append(h.undoStack, &cs)
		h.seq = max(h.seq, cs.Seq)
	}
	for i := range redo {
		cs := redo[i].clone()
		h.redoStack = append(h.redoStack, &cs)
		h.seq = max(h.seq, cs.Seq)
	}
	h.trimLocked()
}

// Clear drops all history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack, h.redoStack = nil, nil
	h.open, h.depth = nil, 0
}
