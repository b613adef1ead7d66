package mode

import "fmt"

// Mode is one state of the modal editor.
type Mode uint8

const (
	Normal Mode = iota
	Insert
	Replace
	Visual
	VisualLine
	VisualBlock
	OperatorPending
	CommandLine
)

// Name returns the unique mode identifier (e.g., "normal", "insert").
func (m Mode) Name() string {
	switch m {
	case Normal:
		return "normal"
	case Insert:
		return "insert"
	case Replace:
		return "replace"
	case Visual:
		return "visual"
	case VisualLine:
		return "visual-line"
	case VisualBlock:
		return "visual-block"
	case OperatorPending:
		return "operator-pending"
	case CommandLine:
		return "command-line"
	default:
		return fmt.Sprintf("mode(%d)", m)
	}
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return m.Name()
}

// DisplayName returns the status line indicator, empty for Normal.
func (m Mode) DisplayName() string {
	switch m {
	case Insert:
		return "-- INSERT --"
	case Replace:
		return "-- REPLACE --"
	case Visual:
		return "-- VISUAL --"
	case VisualLine:
		return "-- VISUAL LINE --"
	case VisualBlock:
		return "-- VISUAL BLOCK --"
	default:
		return ""
	}
}

// CursorStyle returns the cursor style for this mode.
func (m Mode) CursorStyle() CursorStyle {
	switch m {
	case Insert, CommandLine:
		return CursorBar
	case Replace, OperatorPending:
		return CursorUnderline
	default:
		return CursorBlock
	}
}

// IsVisual reports whether m is one of the three visual modes.
func (m Mode) IsVisual() bool {
	return m == Visual || m == VisualLine || m == VisualBlock
}

// IsInsert reports whether typed characters go into the buffer.
func (m Mode) IsInsert() bool {
	return m == Insert || m == Replace
}

// Parse returns the mode with the given name.
func Parse(name string) (Mode, bool) {
	for m := Normal; m <= CommandLine; m++ {
		if m.Name() == name {
			return m, true
		}
	}
	return Normal, false
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor.
	CursorUnderline
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	default:
		return "unknown"
	}
}
