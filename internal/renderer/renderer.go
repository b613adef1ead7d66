package renderer

import (
	"fmt"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/modalcore/internal/dispatcher"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/cursor"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/layout"
)

// Renderer paints sessions onto a screen.
type Renderer struct {
	screen tcell.Screen
	styles Styles
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyles replaces the default colors.
func WithStyles(s Styles) Option {
	return func(r *Renderer) {
		r.styles = s
	}
}

// New creates a renderer drawing on screen.
func New(screen tcell.Screen, opts ...Option) *Renderer {
	r := &Renderer{screen: screen, styles: DefaultStyles()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Draw repaints the whole screen from d and the outcome of the last key,
// then shows it.
func (r *Renderer) Draw(d *dispatcher.Dispatcher, out dispatcher.Outcome) {
	r.screen.Clear()
	width, height := r.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}

	st := d.Snapshot()
	cur := d.Layout().Current()
	for _, w := range d.Layout().Windows() {
		e, ok := d.Buffer(w.BufferID())
		if !ok {
			continue
		}
		var sel *selection
		if w == cur && st.Selection != nil {
			sel = newSelection(e.Buffer(), *st.Selection, st.Mode)
		}
		r.drawWindow(w, e.Buffer(), sel, width)
	}

	x := r.drawStatus(st, out, width, height-1)
	if st.CommandLine != "" {
		r.screen.ShowCursor(x, height-1)
	} else {
		r.showCursor(cur, d.Current().Buffer())
	}
	r.screen.Show()
}

// ===========================================================================
// Windows
// ===========================================================================

func (r *Renderer) drawWindow(w *layout.Window, buf *buffer.Buffer, sel *selection, screenWidth int) {
	rect := w.Rect()
	view := w.View()
	top, left := view.TopLine(), view.LeftColumn()

	for row := range rect.Height {
		y := rect.Y + row
		line := top + row
		if line >= buf.LineCount() {
			r.screen.SetContent(rect.X, y, '~', nil, r.styles.Filler)
			continue
		}
		r.drawLine(buf, line, sel, rect.X, y, left, rect.Width)
	}

	if sep := rect.X + rect.Width; sep < screenWidth {
		for row := range rect.Height {
			r.screen.SetContent(sep, rect.Y+row, '│', nil, r.styles.Separator)
		}
	}
}

// drawLine paints the display columns [left, left+width) of line at x, y.
func (r *Renderer) drawLine(buf *buffer.Buffer, line int, sel *selection, x, y, left, width int) {
	text := buf.LineText(line)
	off := buf.LineStart(line)
	tab := buf.TabWidth()

	vcol := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		w := buffer.CellWidth(cluster, vcol, tab)
		style := r.styles.Text
		if sel.contains(line, vcol, off) {
			style = r.styles.Selection
		}

		for i := range w {
			c := vcol + i - left
			if c < 0 {
				continue
			}
			if c >= width {
				return
			}
			switch {
			case cluster == "\t":
				r.screen.SetContent(x+c, y, ' ', nil, style)
			case i == 0:
				runes := g.Runes()
				if !unicode.IsPrint(runes[0]) {
					r.screen.SetContent(x+c, y, '?', nil, style)
				} else {
					r.screen.SetContent(x+c, y, runes[0], runes[1:], style)
				}
			}
		}

		vcol += w
		off += len(cluster)
	}

	// An empty selected line shows one selected cell.
	if vcol == 0 && left == 0 && sel.contains(line, 0, off) {
		r.screen.SetContent(x, y, ' ', nil, r.styles.Selection)
	}
}

func (r *Renderer) showCursor(w *layout.Window, buf *buffer.Buffer) {
	rect, view := w.Rect(), w.View()
	p := buf.Position(w.Cursor.Offset)
	x := rect.X + buf.VisualColumn(p) - view.LeftColumn()
	y := rect.Y + p.Line - view.TopLine()
	if x < rect.X || x >= rect.X+rect.Width || y < rect.Y || y >= rect.Y+rect.Height {
		r.screen.HideCursor()
		return
	}
	r.screen.ShowCursor(x, y)
}

// ===========================================================================
// Status line
// ===========================================================================

// drawStatus paints row y and returns the column after the command line
// text, where the cursor goes while one is typed.
func (r *Renderer) drawStatus(st dispatcher.State, out dispatcher.Outcome, width, y int) int {
	if st.CommandLine != "" {
		return r.text(0, y, width, st.CommandLine, r.styles.Status)
	}

	switch {
	case out.Message != "":
		style := r.styles.Status
		if isError(out.Message) {
			style = r.styles.Error
		}
		r.text(0, y, width, out.Message, style)
	default:
		x := r.text(0, y, width, st.Mode.DisplayName(), r.styles.mode(st.Mode))
		if st.Recording != 0 {
			if x > 0 {
				x++
			}
			r.text(x, y, width, fmt.Sprintf("recording @%c", st.Recording), r.styles.Status)
		}
	}

	ruler := fmt.Sprintf("%-10s %d,%d", out.PendingEcho, st.Cursor.Line+1, st.Cursor.Column+1)
	if x := width - uniseg.StringWidth(ruler) - 1; x > width/2 {
		r.text(x, y, width, ruler, r.styles.Status)
	}
	return 0
}

// text paints s from column x, clipped to width, and returns the column
// after it.
func (r *Renderer) text(x, y, width int, s string, style tcell.Style) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if x+w > width {
			break
		}
		runes := g.Runes()
		r.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}

// isError reports whether msg is a numbered error message such as
// "E486: Pattern not found".
func isError(msg string) bool {
	return len(msg) > 1 && msg[0] == 'E' && msg[1] >= '0' && msg[1] <= '9'
}

// ===========================================================================
// Selection
// ===========================================================================

// selection is the Visual selection of the current window resolved to
// what drawLine needs.
type selection struct {
	mode  mode.Mode
	rng   buffer.Range
	first int
	last  int
	block cursor.Block
}

func newSelection(buf *buffer.Buffer, s cursor.Selection, m mode.Mode) *selection {
	sel := &selection{mode: m, rng: s.Range(buf)}
	sel.first, sel.last = s.Lines(buf)
	if m == mode.VisualBlock {
		sel.block = s.Block(buf, false)
	}
	return sel
}

// contains reports whether the character of line at display column vcol
// and byte offset off is selected.
func (s *selection) contains(line, vcol, off int) bool {
	if s == nil || line < s.first || line > s.last {
		return false
	}
	switch s.mode {
	case mode.VisualLine:
		return true
	case mode.VisualBlock:
		return vcol >= s.block.Left && vcol <= s.block.Right
	default:
		return off >= s.rng.Start && off < s.rng.End
	}
}
