package mode

import "testing"

func TestModeNames(t *testing.T) {
	tests := []struct {
		mode    Mode
		name    string
		display string
		cursor  CursorStyle
	}{
		{Normal, "normal", "", CursorBlock},
		{Insert, "insert", "-- INSERT --", CursorBar},
		{Replace, "replace", "-- REPLACE --", CursorUnderline},
		{Visual, "visual", "-- VISUAL --", CursorBlock},
		{VisualLine, "visual-line", "-- VISUAL LINE --", CursorBlock},
		{VisualBlock, "visual-block", "-- VISUAL BLOCK --", CursorBlock},
		{OperatorPending, "operator-pending", "", CursorUnderline},
		{CommandLine, "command-line", "", CursorBar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mode.Name(); got != tt.name {
				t.Errorf("Name() = %q, want %q", got, tt.name)
			}
			if got := tt.mode.DisplayName(); got != tt.display {
				t.Errorf("DisplayName() = %q, want %q", got, tt.display)
			}
			if got := tt.mode.CursorStyle(); got != tt.cursor {
				t.Errorf("CursorStyle() = %v, want %v", got, tt.cursor)
			}
			if got, ok := Parse(tt.name); !ok || got != tt.mode {
				t.Errorf("Parse(%q) = %v, %v", tt.name, got, ok)
			}
		})
	}
}

func TestManagerSwitch(t *testing.T) {
	m := NewManager()
	var changes []string
	unregister := m.OnChange(func(from, to Mode) {
		changes = append(changes, from.Name()+">"+to.Name())
	})

	if !m.Switch(Insert) {
		t.Error("Switch(Insert) should report a change")
	}
	if m.Switch(Insert) {
		t.Error("switching to the current mode is not a change")
	}
	if m.Current() != Insert || m.Previous() != Normal {
		t.Errorf("Current/Previous = %v/%v", m.Current(), m.Previous())
	}

	unregister()
	m.Switch(Normal)
	if len(changes) != 1 || changes[0] != "normal>insert" {
		t.Errorf("callbacks = %v", changes)
	}
}

func TestManagerPushPop(t *testing.T) {
	m := NewManager()
	m.Switch(Visual)
	m.Push(CommandLine)

	if !m.Is(CommandLine) || m.StackDepth() != 1 {
		t.Fatalf("after Push: %v depth %d", m.Current(), m.StackDepth())
	}
	if got := m.Pop(); got != Visual {
		t.Errorf("Pop() = %v, want visual", got)
	}
	if got := m.Pop(); got != Normal {
		t.Errorf("Pop() on empty stack = %v, want normal", got)
	}

	m.Push(CommandLine)
	m.Switch(Insert)
	if m.StackDepth() != 0 {
		t.Error("Switch should drop pushed modes")
	}
}
