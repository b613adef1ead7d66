package mark

import (
	"sync"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// DefaultListSize bounds jump and change lists unless overridden.
const DefaultListSize = 100

// Jump is a jump list entry.
type Jump struct {
	BufferID string
	Offset   int
}

// JumpList is the bounded history of jump origins shared by a session.
// Pushing while the cursor is not at the end truncates the newer entries.
type JumpList struct {
	mu       sync.Mutex
	entries  []Jump
	cursor   int
	capacity int
}

// NewJumpList creates a jump list holding at most capacity entries.
func NewJumpList(capacity int) *JumpList {
	if capacity <= 0 {
		capacity = DefaultListSize
	}
	return &JumpList{capacity: capacity}
}

// Push records a jump origin and resets the cursor to the end.
func (j *JumpList) Push(jump Jump) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cursor < len(j.entries) {
		j.entries = j.entries[:j.cursor]
	}
	j.appendLocked(jump)
	j.cursor = len(j.entries)
}

func (j *JumpList) appendLocked(jump Jump) {
	for i, e := range j.entries {
		if e == jump {
			j.entries = append(j.entries[:i], j.entries[i+1:]...)
			break
		}
	}
	j.entries = append(j.entries, jump)
	if excess := len(j.entries) - j.capacity; excess > 0 {
		j.entries = append([]Jump(nil), j.entries[excess:]...)
	}
}

// Back moves count entries towards older jumps. When called from the end
// of the list, current is recorded first so Forward can return to it.
func (j *JumpList) Back(current Jump, count int) (Jump, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cursor >= len(j.entries) {
		j.appendLocked(current)
		j.cursor = len(j.entries) - 1
	}
	target := j.cursor - max(count, 1)
	if target < 0 {
		return Jump{}, false
	}
	j.cursor = target
	return j.entries[target], true
}

// Forward moves count entries towards newer jumps.
func (j *JumpList) Forward(count int) (Jump, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	target := j.cursor + max(count, 1)
	if target >= len(j.entries) {
		return Jump{}, false
	}
	j.cursor = target
	return j.entries[target], true
}

// Shift applies e to the entries in buffer bufID. Entries inside deleted
// text collapse onto the edit start.
func (j *JumpList) Shift(bufID string, e buffer.Edit) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i := range j.entries {
		if j.entries[i].BufferID == bufID {
			j.entries[i].Offset, _ = e.TransformOffset(j.entries[i].Offset)
		}
	}
}

// Observer returns a buffer observer shifting the entries of bufID.
func (j *JumpList) Observer(bufID string) buffer.Observer {
	return buffer.ObserverFunc(func(e buffer.Edit) { j.Shift(bufID, e) })
}

// Entries returns a copy of the list and the cursor index.
func (j *JumpList) Entries() ([]Jump, int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Jump(nil), j.entries...), j.cursor
}

// Restore replaces the list contents.
func (j *JumpList) Restore(entries []Jump, cursor int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = nil
	for _, e := range entries {
		j.appendLocked(e)
	}
	j.cursor = max(0, min(cursor, len(j.entries)))
}

// Len returns the number of entries.
func (j *JumpList) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}

// ChangeList is the bounded list of change positions of one buffer.
type ChangeList struct {
	mu       sync.Mutex
	entries  []int
	cursor   int
	capacity int
}

// NewChangeList creates a change list holding at most capacity entries.
func NewChangeList(capacity int) *ChangeList {
	if capacity <= 0 {
		capacity = DefaultListSize
	}
	return &ChangeList{capacity: capacity}
}

// Add records a change position and resets the cursor to the end.
func (c *ChangeList) Add(offset int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor < len(c.entries) {
		c.entries = c.entries[:c.cursor]
	}
	if n := len(c.entries); n == 0 || c.entries[n-1] != offset {
		c.entries = append(c.entries, offset)
	}
	if excess := len(c.entries) - c.capacity; excess > 0 {
		c.entries = append([]int(nil), c.entries[excess:]...)
	}
	c.cursor = len(c.entries)
}

// Older moves count entries back (g;). A count past the oldest entry stops
// at the oldest one; only a move from the oldest entry fails.
func (c *ChangeList) Older(count int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) == 0 {
		return 0, ErrChangeListEmpty
	}
	if c.cursor == 0 {
		return 0, ErrAtStart
	}
	c.cursor = max(0, c.cursor-max(count, 1))
	return c.entries[c.cursor], nil
}

// Newer moves count entries forward (g,).
func (c *ChangeList) Newer(count int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) == 0 {
		return 0, ErrChangeListEmpty
	}
	if c.cursor >= len(c.entries)-1 {
		return 0, ErrAtEnd
	}
	c.cursor = min(len(c.entries)-1, c.cursor+max(count, 1))
	return c.entries[c.cursor], nil
}

// BufferChanged shifts entries past e. It implements buffer.Observer.
func (c *ChangeList) BufferChanged(e buffer.Edit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.entries {
		c.entries[i], _ = e.TransformOffset(c.entries[i])
	}
}

// Entries returns a copy of the list and the cursor index.
func (c *ChangeList) Entries() ([]int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.entries...), c.cursor
}

// Restore replaces the list contents.
func (c *ChangeList) Restore(entries []int, cursor int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append([]int(nil), entries...)
	if excess := len(c.entries) - c.capacity; excess > 0 {
		c.entries = c.entries[excess:]
	}
	c.cursor = max(0, min(cursor, len(c.entries)))
}
