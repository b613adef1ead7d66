package rope

import (
	"io"
	"strings"
)

// Rope is an immutable text sequence. The zero value is an empty rope.
type Rope struct {
	root *node
}

// New creates an empty rope.
func New() Rope {
	return Rope{}
}

// FromString creates a rope holding s.
func FromString(s string) Rope {
	return Rope{root: buildLevels(buildLeaves(splitChunks(s)))}
}

// FromReader creates a rope from everything readable from r.
func FromReader(r io.Reader) (Rope, error) {
	var sb strings.Builder
	if _, err := io.Copy(&sb, r); err != nil {
		return Rope{}, err
	}
	return FromString(sb.String()), nil
}

// Len returns the byte length.
func (r Rope) Len() int {
	return r.root.len()
}

// RuneCount returns the number of code points.
func (r Rope) RuneCount() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Runes
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.summary.Lines + 1
}

// IsEmpty reports whether the rope holds no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// Summary returns the aggregated metrics of the whole rope.
func (r Rope) Summary() Summary {
	if r.root == nil {
		return Summary{}
	}
	return r.root.summary
}

// String returns the full text. Use sparingly on large ropes.
func (r Rope) String() string {
	return r.Slice(0, r.Len())
}

// Slice returns the text in [start, end), clamped to the rope.
func (r Rope) Slice(start, end int) string {
	start, end = r.clamp(start), r.clamp(end)
	if start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.root.each(start, end, func(s string) bool {
		sb.WriteString(s)
		return true
	})
	return sb.String()
}

// Chunks calls fn with successive pieces of the text in [start, end)
// until fn returns false.
func (r Rope) Chunks(start, end int, fn func(string) bool) {
	start, end = r.clamp(start), r.clamp(end)
	r.root.each(start, end, fn)
}

// ByteAt returns the byte at offset, or false when offset is out of range.
func (r Rope) ByteAt(offset int) (byte, bool) {
	if offset < 0 || offset >= r.Len() {
		return 0, false
	}
	var b byte
	r.root.each(offset, offset+1, func(s string) bool {
		b = s[0]
		return false
	})
	return b, true
}

// Insert returns a rope with text inserted at offset.
func (r Rope) Insert(offset int, text string) Rope {
	if text == "" {
		return r
	}
	offset = r.clamp(offset)
	left, right := split(r.root, offset)
	mid := buildLevels(buildLeaves(splitChunks(text)))
	return Rope{root: join(join(left, mid), right)}
}

// Delete returns a rope with [start, end) removed.
func (r Rope) Delete(start, end int) Rope {
	start, end = r.clamp(start), r.clamp(end)
	if start >= end {
		return r
	}
	left, rest := split(r.root, start)
	_, right := split(rest, end-start)
	return Rope{root: join(left, right)}
}

// Replace returns a rope with [start, end) replaced by text.
func (r Rope) Replace(start, end int, text string) Rope {
	return r.Delete(start, end).Insert(start, text)
}

// Append returns the concatenation of r and o.
func (r Rope) Append(o Rope) Rope {
	return Rope{root: join(r.root, o.root)}
}

// LineStart returns the byte offset where line begins. Lines past the end
// clamp to the rope length.
func (r Rope) LineStart(line int) int {
	if line <= 0 || r.root == nil {
		return 0
	}
	if line > r.root.summary.Lines {
		return r.Len()
	}
	return r.root.lineStart(line)
}

// LineEnd returns the byte offset of the newline ending line, or the rope
// length for the last line.
func (r Rope) LineEnd(line int) int {
	if line+1 >= r.LineCount() {
		return r.Len()
	}
	return r.LineStart(line+1) - 1
}

// LineAt returns the zero-based line containing offset.
func (r Rope) LineAt(offset int) int {
	if r.root == nil {
		return 0
	}
	return r.root.linesBefore(r.clamp(offset))
}

// RunesBefore returns the number of code points in [0, offset).
func (r Rope) RunesBefore(offset int) int {
	if r.root == nil {
		return 0
	}
	return r.root.runesBefore(r.clamp(offset))
}

// Line returns the text of line without its trailing newline.
func (r Rope) Line(line int) string {
	return r.Slice(r.LineStart(line), r.LineEnd(line))
}

// Height returns the tree height; a leaf-only rope has height 0.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height)
}

func (r Rope) clamp(offset int) int {
	return max(0, min(offset, r.Len()))
}
