package mode

// ChangeFunc is called when the mode changes.
type ChangeFunc func(from, to Mode)

// Manager tracks the current mode and coordinates transitions. Modes
// entered temporarily (a search prompt opened from Visual mode) are pushed
// so that leaving them returns to the mode underneath.
//
// Manager is not safe for concurrent use; it belongs to the dispatcher's
// single event loop.
type Manager struct {
	current  Mode
	previous Mode

	// stack holds the modes saved by Push.
	stack []Mode

	callbacks []ChangeFunc
}

// NewManager creates a manager in Normal mode.
func NewManager() *Manager {
	return &Manager{stack: make([]Mode, 0, 4)}
}

// Current returns the current mode.
func (m *Manager) Current() Mode {
	return m.current
}

// Previous returns the mode before the current one.
func (m *Manager) Previous() Mode {
	return m.previous
}

// Is returns true if the current mode is any of modes.
func (m *Manager) Is(modes ...Mode) bool {
	for _, mode := range modes {
		if m.current == mode {
			return true
		}
	}
	return false
}

// Switch changes to mode and drops any pushed modes. It reports whether
// the mode changed.
func (m *Manager) Switch(to Mode) bool {
	m.stack = m.stack[:0]
	return m.set(to)
}

// Push saves the current mode and switches to a new one.
// Use Pop to restore the previous mode.
func (m *Manager) Push(to Mode) {
	m.stack = append(m.stack, m.current)
	m.set(to)
}

// Pop restores the most recently pushed mode, or Normal when nothing
// was pushed.
func (m *Manager) Pop() Mode {
	to := Normal
	if n := len(m.stack); n > 0 {
		to = m.stack[n-1]
		m.stack = m.stack[:n-1]
	}
	m.set(to)
	return to
}

// StackDepth returns the number of modes on the stack.
func (m *Manager) StackDepth() int {
	return len(m.stack)
}

// OnChange registers a callback for mode changes.
// Returns a function to unregister the callback.
func (m *Manager) OnChange(fn ChangeFunc) func() {
	m.callbacks = append(m.callbacks, fn)
	index := len(m.callbacks) - 1

	return func() {
		// Remove callback by setting to nil (preserves indices)
		if index < len(m.callbacks) {
			m.callbacks[index] = nil
		}
	}
}

func (m *Manager) set(to Mode) bool {
	from := m.current
	if from == to {
		return false
	}
	m.previous = from
	m.current = to
	for _, cb := range m.callbacks {
		if cb != nil {
			cb(from, to)
		}
	}
	return true
}
