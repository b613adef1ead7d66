package register

import "strings"

// Shape is how register text is put back into a buffer.
type Shape uint8

const (
	// Charwise text is inserted inline.
	Charwise Shape = iota

	// Linewise text is a sequence of whole lines ending in '\n'.
	Linewise

	// Blockwise text is a rectangle, one row per line.
	Blockwise
)

// String returns the shape the way :registers labels it.
func (s Shape) String() string {
	switch s {
	case Charwise:
		return "c"
	case Linewise:
		return "l"
	case Blockwise:
		return "b"
	default:
		return "?"
	}
}

// ParseShape is the inverse of Shape.String.
func ParseShape(s string) Shape {
	switch s {
	case "l":
		return Linewise
	case "b":
		return Blockwise
	default:
		return Charwise
	}
}

// Value is the content of a register.
type Value struct {
	Text  string
	Shape Shape
}

// Chars creates a charwise value.
func Chars(text string) Value {
	return Value{Text: text, Shape: Charwise}
}

// Lines creates a linewise value, adding the trailing newline if missing.
func Lines(text string) Value {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return Value{Text: text, Shape: Linewise}
}

// Block creates a blockwise value from rows.
func Block(rows []string) Value {
	return Value{Text: strings.Join(rows, "\n"), Shape: Blockwise}
}

// IsEmpty reports whether the value holds no text.
func (v Value) IsEmpty() bool {
	return v.Text == "" && v.Shape != Linewise
}

// Rows splits the value into lines. Linewise values drop the final empty
// element produced by the trailing newline.
func (v Value) Rows() []string {
	text := v.Text
	if v.Shape == Linewise {
		text = strings.TrimSuffix(text, "\n")
	}
	return strings.Split(text, "\n")
}

// Width returns the widest row in runes, the width of a block.
func (v Value) Width() int {
	w := 0
	for _, row := range v.Rows() {
		w = max(w, len([]rune(row)))
	}
	return w
}

// appendValue implements uppercase-register appends: the result is
// linewise if either side is, joined by a newline where needed.
func appendValue(old, add Value) Value {
	switch {
	case old.Shape == Linewise && add.Shape == Linewise:
		return Value{Text: old.Text + add.Text, Shape: Linewise}
	case old.Shape == Linewise:
		return Lines(old.Text + add.Text)
	case add.Shape == Linewise:
		return Value{Text: old.Text + "\n" + add.Text, Shape: Linewise}
	case old.Shape == Blockwise || add.Shape == Blockwise:
		return Value{Text: old.Text + "\n" + add.Text, Shape: Blockwise}
	default:
		return Value{Text: old.Text + add.Text, Shape: Charwise}
	}
}
