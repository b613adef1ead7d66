package layout

// Viewport is the visible portion of a buffer in a window.
type Viewport struct {
	// Position in buffer (first visible line)
	topLine    int
	leftColumn int

	// Size in screen cells
	width  int
	height int

	// Scroll margins (keep cursor this far from edges)
	scrollOff     int
	sideScrollOff int

	// Buffer size limit
	lineCount int
}

// NewViewport creates a viewport with the given size.
// Width and height are clamped to a minimum of 1 to prevent underflow.
func NewViewport(width, height int) *Viewport {
	return &Viewport{
		width:     max(width, 1),
		height:    max(height, 1),
		lineCount: 1,
	}
}

// Width returns the viewport width.
func (v *Viewport) Width() int { return v.width }

// Height returns the viewport height.
func (v *Viewport) Height() int { return v.height }

// TopLine returns the first visible line.
func (v *Viewport) TopLine() int { return v.topLine }

// LeftColumn returns the first visible display column.
func (v *Viewport) LeftColumn() int { return v.leftColumn }

// BottomLine returns the last visible line.
func (v *Viewport) BottomLine() int {
	return max(v.topLine, min(v.topLine+v.height, v.lineCount)-1)
}

// VisibleLineRange returns the range of visible buffer lines.
func (v *Viewport) VisibleLineRange() (top, bottom int) {
	return v.topLine, v.BottomLine()
}

// IsLineVisible returns true if the line is within the viewport.
func (v *Viewport) IsLineVisible(line int) bool {
	return line >= v.topLine && line <= v.BottomLine()
}

// Resize updates the viewport size.
// Width and height are clamped to a minimum of 1 to prevent underflow.
func (v *Viewport) Resize(width, height int) {
	v.width = max(width, 1)
	v.height = max(height, 1)
}

// SetLineCount sets the number of lines in the buffer and clamps the
// top line to it.
func (v *Viewport) SetLineCount(n int) {
	v.lineCount = max(n, 1)
	v.topLine = min(v.topLine, v.maxTop())
}

// SetScrollOff sets the vertical and horizontal scroll margins.
func (v *Viewport) SetScrollOff(lines, cols int) {
	v.scrollOff = max(lines, 0)
	v.sideScrollOff = max(cols, 0)
}

// ScrollOff returns the vertical margin in effect, which is never more
// than half the height.
func (v *Viewport) ScrollOff() int {
	return min(v.scrollOff, (v.height-1)/2)
}

func (v *Viewport) maxTop() int {
	return max(v.lineCount-1, 0)
}

// ScrollTo shows line at the top.
func (v *Viewport) ScrollTo(line int) {
	v.topLine = max(0, min(line, v.maxTop()))
}

// ScrollBy scrolls by a delta number of lines and returns how far it
// actually moved.
func (v *Viewport) ScrollBy(delta int) int {
	old := v.topLine
	v.ScrollTo(v.topLine + delta)
	return v.topLine - old
}

// ScrollToReveal scrolls minimally so that line and display column vcol
// are visible with the scroll margins around them.
// Returns true if scrolling occurred.
func (v *Viewport) ScrollToReveal(line, vcol int) bool {
	oldTop, oldLeft := v.topLine, v.leftColumn
	so := v.ScrollOff()

	switch {
	case line < v.topLine+so:
		v.topLine = max(0, line-so)
	case line > v.topLine+v.height-1-so:
		v.topLine = line - v.height + 1 + so
	}
	v.topLine = max(0, min(v.topLine, v.maxTop()))

	sso := min(v.sideScrollOff, (v.width-1)/2)
	switch {
	case vcol < v.leftColumn+sso:
		v.leftColumn = max(0, vcol-sso)
	case vcol > v.leftColumn+v.width-1-sso:
		v.leftColumn = vcol - v.width + 1 + sso
	}

	return v.topLine != oldTop || v.leftColumn != oldLeft
}

// CenterOn centers the viewport on the given line.
func (v *Viewport) CenterOn(line int) {
	v.ScrollTo(line - v.height/2)
}

// HalfPage returns the number of lines Ctrl-D and Ctrl-U scroll.
func (v *Viewport) HalfPage() int {
	return max(v.height/2, 1)
}

// Page returns the number of lines Ctrl-F and Ctrl-B scroll, keeping two
// lines of overlap.
func (v *Viewport) Page() int {
	return max(v.height-2, 1)
}

// State is a copy of the viewport for snapshots.
type State struct {
	TopLine    int
	BottomLine int
	LeftColumn int
	Width      int
	Height     int
}

// State returns the current viewport state.
func (v *Viewport) State() State {
	return State{
		TopLine:    v.topLine,
		BottomLine: v.BottomLine(),
		LeftColumn: v.leftColumn,
		Width:      v.width,
		Height:     v.height,
	}
}

// Clone creates a copy of the viewport.
func (v *Viewport) Clone() *Viewport {
	c := *v
	return &c
}
