package rope

import "strings"

// Tree shape constants.
const (
	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// node is a node of the rope B+ tree. A nil *node is the empty tree.
// Leaves (height == 0) hold chunks; internal nodes hold children and a
// cached summary per child for seeking.
type node struct {
	height  uint8
	summary Summary

	children  []*node
	childSums []Summary

	chunks []string
}

func newLeaf(chunks []string) *node {
	if len(chunks) == 0 {
		return nil
	}
	n := &node{chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.Add(Summarize(c))
	}
	return n
}

func newInternal(children []*node) *node {
	if len(children) == 0 {
		return nil
	}
	if len(children) == 1 {
		return children[0]
	}
	n := &node{
		height:    children[0].height + 1,
		children:  children,
		childSums: make([]Summary, len(children)),
	}
	for i, c := range children {
		n.childSums[i] = c.summary
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func (n *node) isLeaf() bool { return n.height == 0 }

func (n *node) len() int {
	if n == nil {
		return 0
	}
	return n.summary.Bytes
}

// buildLeaves groups chunks into leaves of at most MaxChunksPerLeaf.
func buildLeaves(chunks []string) []*node {
	var leaves []*node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leaves = append(leaves, newLeaf(append([]string(nil), chunks[i:end]...)))
	}
	return leaves
}

// buildLevels builds a balanced tree bottom-up from same-height nodes.
func buildLevels(nodes []*node) *node {
	for len(nodes) > 1 {
		var parents []*node
		for i := 0; i < len(nodes); i += MaxChildren {
			end := min(i+MaxChildren, len(nodes))
			parents = append(parents, newInternal(append([]*node(nil), nodes[i:end]...)))
		}
		nodes = parents
	}
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// fromSiblings wraps same-height siblings, splitting into two parents when
// they overflow a single node.
func fromSiblings(nodes []*node) *node {
	switch {
	case len(nodes) == 0:
		return nil
	case len(nodes) <= MaxChildren:
		return newInternal(nodes)
	default:
		mid := len(nodes) / 2
		left := newInternal(append([]*node(nil), nodes[:mid]...))
		right := newInternal(append([]*node(nil), nodes[mid:]...))
		return &node{
			height:    left.height + 1,
			summary:   left.summary.Add(right.summary),
			children:  []*node{left, right},
			childSums: []Summary{left.summary, right.summary},
		}
	}
}

// join concatenates two trees, grafting the shorter one onto the facing
// spine of the taller one.
func join(l, r *node) *node {
	if l.len() == 0 {
		return r
	}
	if r.len() == 0 {
		return l
	}
	switch {
	case l.height == r.height:
		if l.isLeaf() {
			chunks := make([]string, 0, len(l.chunks)+len(r.chunks))
			chunks = append(chunks, l.chunks...)
			chunks = append(chunks, r.chunks...)
			chunks = mergeChunks(chunks)
			if len(chunks) <= MaxChunksPerLeaf {
				return newLeaf(chunks)
			}
			return fromSiblings(buildLeaves(chunks))
		}
		kids := make([]*node, 0, len(l.children)+len(r.children))
		kids = append(kids, l.children...)
		kids = append(kids, r.children...)
		return fromSiblings(kids)
	case l.height > r.height:
		last := len(l.children) - 1
		j := join(l.children[last], r)
		kids := append([]*node(nil), l.children[:last]...)
		if j.height == l.height {
			kids = append(kids, j.children...)
		} else {
			kids = append(kids, j)
		}
		return fromSiblings(kids)
	default:
		j := join(l, r.children[0])
		var kids []*node
		if j.height == r.height {
			kids = append(kids, j.children...)
		} else {
			kids = append(kids, j)
		}
		kids = append(kids, r.children[1:]...)
		return fromSiblings(kids)
	}
}

// split cuts the tree at byte offset off into [0, off) and [off, len).
func split(n *node, off int) (*node, *node) {
	if n == nil {
		return nil, nil
	}
	if off <= 0 {
		return nil, n
	}
	if off >= n.summary.Bytes {
		return n, nil
	}
	if n.isLeaf() {
		var left, right []string
		pos := 0
		for _, c := range n.chunks {
			switch {
			case pos+len(c) <= off:
				left = append(left, c)
			case pos >= off:
				right = append(right, c)
			default:
				cut := off - pos
				left = append(left, c[:cut])
				right = append(right, c[cut:])
			}
			pos += len(c)
		}
		return newLeaf(left), newLeaf(right)
	}

	i, rel := n.childAtOffset(off)
	cl, cr := split(n.children[i], rel)
	left := join(newInternal(append([]*node(nil), n.children[:i]...)), cl)
	right := join(cr, newInternal(append([]*node(nil), n.children[i+1:]...)))
	return left, right
}

// childAtOffset returns the child holding byte off and the offset within it.
// An offset on a child boundary belongs to the later child.
func (n *node) childAtOffset(off int) (int, int) {
	for i, s := range n.childSums {
		if off < s.Bytes {
			return i, off
		}
		off -= s.Bytes
	}
	last := len(n.children) - 1
	return last, off + n.childSums[last].Bytes
}

// lineStart returns the byte offset just past the line-th newline.
// line must be in [1, summary.Lines].
func (n *node) lineStart(line int) int {
	off := 0
	for !n.isLeaf() {
		for i, s := range n.childSums {
			if line <= s.Lines {
				n = n.children[i]
				break
			}
			line -= s.Lines
			off += s.Bytes
		}
	}
	for _, c := range n.chunks {
		for i := 0; i < len(c); i++ {
			if c[i] != '\n' {
				continue
			}
			line--
			if line == 0 {
				return off + i + 1
			}
		}
		off += len(c)
	}
	return off
}

// linesBefore counts newlines in [0, off).
func (n *node) linesBefore(off int) int {
	lines := 0
	for !n.isLeaf() {
		i, rel := n.childAtOffset(off)
		for _, s := range n.childSums[:i] {
			lines += s.Lines
		}
		n, off = n.children[i], rel
	}
	for _, c := range n.chunks {
		if off <= len(c) {
			return lines + strings.Count(c[:off], "\n")
		}
		lines += strings.Count(c, "\n")
		off -= len(c)
	}
	return lines
}

// runesBefore counts runes in [0, off).
func (n *node) runesBefore(off int) int {
	runes := 0
	for !n.isLeaf() {
		i, rel := n.childAtOffset(off)
		for _, s := range n.childSums[:i] {
			runes += s.Runes
		}
		n, off = n.children[i], rel
	}
	for _, c := range n.chunks {
		if off <= len(c) {
			return runes + Summarize(c[:off]).Runes
		}
		runes += Summarize(c).Runes
		off -= len(c)
	}
	return runes
}

// each calls fn for every chunk overlapping [start, end), trimmed to the range.
func (n *node) each(start, end int, fn func(string) bool) bool {
	if n == nil || start >= end {
		return true
	}
	if n.isLeaf() {
		pos := 0
		for _, c := range n.chunks {
			cs, ce := pos, pos+len(c)
			pos = ce
			if ce <= start {
				continue
			}
			if cs >= end {
				return false
			}
			if !fn(c[max(start-cs, 0) : min(end, ce)-cs]) {
				return false
			}
		}
		return true
	}
	pos := 0
	for i, child := range n.children {
		cs, ce := pos, pos+n.childSums[i].Bytes
		pos = ce
		if ce <= start {
			continue
		}
		if cs >= end {
			return false
		}
		if !child.each(max(start-cs, 0), min(end, ce)-cs, fn) {
			return false
		}
	}
	return true
}
