package history

import "github.com/dshills/modalcore/internal/engine/buffer"

// Transaction runs fn inside a group so its edits undo as one unit.
// If fn fails, the edits it made are reverted and nothing is recorded.
func (h *History) Transaction(buf *buffer.Buffer, name string, cursor buffer.Position, fn func() (buffer.Position, error)) error {
	h.BeginGroup(name, cursor)
	after, err := fn()
	if err == nil {
		h.EndGroup(after)
		return nil
	}

	h.mu.Lock()
	if h.depth > 1 {
		// the enclosing group decides what happens to the edits
		h.depth--
		h.mu.Unlock()
		return err
	}
	var edits []buffer.Edit
	if h.open != nil {
		edits = invertAll(h.open.Edits)
		h.replaying = true
	}
	h.open, h.depth = nil, 0
	h.mu.Unlock()

	rollback(buf, edits)

	h.mu.Lock()
	h.replaying = false
	h.mu.Unlock()
	return err
}
