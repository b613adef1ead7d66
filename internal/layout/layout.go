package layout

import "github.com/dshills/modalcore/internal/engine/cursor"

// Direction is the way a split arranges its children.
type Direction uint8

const (
	// Horizontal stacks windows top to bottom (:split).
	Horizontal Direction = iota

	// Vertical places windows side by side (:vsplit).
	Vertical
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// node is a window (leaf) or a split of two or more nodes.
type node struct {
	parent   *node
	dir      Direction
	children []*node
	win      *Window
}

// Layout is the tree of split windows. Exactly one window is current.
type Layout struct {
	root    *node
	current *node
	nextID  int

	width, height int
	scrollOff     int
	sideScrollOff int
}

// New creates a layout of one window showing bufferID.
func New(width, height int, bufferID string) *Layout {
	l := &Layout{width: max(width, 1), height: max(height, 1)}
	l.root = &node{win: l.newWindow(bufferID)}
	l.current = l.root
	l.relayout()
	return l
}

func (l *Layout) newWindow(bufferID string) *Window {
	l.nextID++
	v := NewViewport(l.width, l.height)
	v.SetScrollOff(l.scrollOff, l.sideScrollOff)
	return &Window{id: l.nextID, bufferID: bufferID, Cursor: cursor.New(0), view: v}
}

// Current returns the current window.
func (l *Layout) Current() *Window {
	return l.current.win
}

// Windows returns all windows, top-left first.
func (l *Layout) Windows() []*Window {
	var out []*Window
	var walk func(n *node)
	walk = func(n *node) {
		if n.win != nil {
			out = append(out, n.win)
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(l.root)
	return out
}

// Len returns the number of windows.
func (l *Layout) Len() int {
	return len(l.Windows())
}

// ForBuffer returns the windows showing bufferID.
func (l *Layout) ForBuffer(bufferID string) []*Window {
	var out []*Window
	for _, w := range l.Windows() {
		if w.bufferID == bufferID {
			out = append(out, w)
		}
	}
	return out
}

// SetScrollOff sets the scroll margins of every window.
func (l *Layout) SetScrollOff(lines, cols int) {
	l.scrollOff, l.sideScrollOff = lines, cols
	for _, w := range l.Windows() {
		w.view.SetScrollOff(lines, cols)
	}
}

// Resize changes the screen size and recomputes every window's area.
func (l *Layout) Resize(width, height int) {
	l.width, l.height = max(width, 1), max(height, 1)
	l.relayout()
}

// Split divides the current window in two. The new window shows the
// same buffer with the same cursor, is placed above (or left of) the
// old one, and becomes current.
func (l *Layout) Split(dir Direction) (*Window, error) {
	cur := l.current
	r := cur.win.rect
	if (dir == Horizontal && r.Height < 2) || (dir == Vertical && r.Width < 3) {
		return nil, ErrNoRoom
	}

	win := l.newWindow(cur.win.bufferID)
	win.Cursor = cur.win.Cursor
	win.view = cur.win.view.Clone()
	leaf := &node{win: win}

	if p := cur.parent; p != nil && p.dir == dir {
		i := indexOf(p, cur)
		p.children = append(p.children[:i], append([]*node{leaf}, p.children[i:]...)...)
		leaf.parent = p
	} else {
		// cur becomes a split holding the new leaf and a copy of itself
		old := &node{win: cur.win, parent: cur}
		leaf.parent = cur
		cur.win = nil
		cur.dir = dir
		cur.children = []*node{leaf, old}
	}

	l.current = leaf
	l.relayout()
	return win, nil
}

// Close closes the current window. The last window cannot be closed.
func (l *Layout) Close() error {
	if l.root.win != nil {
		return ErrLastWindow
	}
	cur := l.current
	p := cur.parent
	i := indexOf(p, cur)
	p.children = append(p.children[:i], p.children[i+1:]...)

	next := p.children[min(i, len(p.children)-1)]
	if len(p.children) == 1 {
		// collapse a split with a single child into its parent
		only := p.children[0]
		p.win, p.dir, p.children = only.win, only.dir, only.children
		for _, c := range p.children {
			c.parent = p
		}
		next = p
	}
	l.current = firstLeaf(next)
	l.relayout()
	return nil
}

// Only closes every window but the current one and returns how many
// were closed.
func (l *Layout) Only() int {
	closed := l.Len() - 1
	l.root = &node{win: l.current.win}
	l.current = l.root
	l.relayout()
	return closed
}

// Next makes the count-th following window current, wrapping around.
// Negative counts move backwards.
func (l *Layout) Next(count int) *Window {
	wins := l.Windows()
	i := 0
	for j, w := range wins {
		if w == l.current.win {
			i = j
		}
	}
	n := len(wins)
	l.focus(wins[((i+count)%n+n)%n])
	return l.current.win
}

// Focus makes the window with the given id current.
func (l *Layout) Focus(id int) error {
	for _, w := range l.Windows() {
		if w.id == id {
			l.focus(w)
			return nil
		}
	}
	return ErrWindowUnknown
}

func (l *Layout) focus(w *Window) {
	var find func(n *node) *node
	find = func(n *node) *node {
		if n.win == w {
			return n
		}
		for _, c := range n.children {
			if f := find(c); f != nil {
				return f
			}
		}
		return nil
	}
	if n := find(l.root); n != nil {
		l.current = n
	}
}

func indexOf(p, n *node) int {
	for i, c := range p.children {
		if c == n {
			return i
		}
	}
	return -1
}

func firstLeaf(n *node) *node {
	for n.win == nil {
		n = n.children[0]
	}
	return n
}

// relayout assigns every window its share of the screen. Side-by-side
// windows are separated by a one-column border.
func (l *Layout) relayout() {
	var place func(n *node, r Rect)
	place = func(n *node, r Rect) {
		if n.win != nil {
			n.win.setRect(r)
			return
		}
		count := len(n.children)
		if n.dir == Horizontal {
			each, extra := r.Height/count, r.Height%count
			y := r.Y
			for i, c := range n.children {
				h := each
				if i < extra {
					h++
				}
				place(c, Rect{X: r.X, Y: y, Width: r.Width, Height: h})
				y += h
			}
			return
		}
		avail := r.Width - (count - 1)
		each, extra := avail/count, avail%count
		x := r.X
		for i, c := range n.children {
			w := each
			if i < extra {
				w++
			}
			place(c, Rect{X: x, Y: r.Y, Width: w, Height: r.Height})
			x += w + 1
		}
	}
	place(l.root, Rect{Width: l.width, Height: l.height})
}
