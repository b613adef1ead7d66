package vim

// Operator is a Vim operator: a command that acts on the text covered by
// a motion or text object.
type Operator uint8

const (
	// OpNone means the command has no operator.
	OpNone Operator = iota

	// OpDelete deletes text (d).
	OpDelete

	// OpChange deletes text and enters insert mode (c).
	OpChange

	// OpYank copies text to a register (y).
	OpYank

	// OpShiftRight indents lines by shiftwidth (>).
	OpShiftRight

	// OpShiftLeft removes up to shiftwidth of indent (<).
	OpShiftLeft

	// OpLower converts text to lowercase (gu).
	OpLower

	// OpUpper converts text to uppercase (gU).
	OpUpper

	// OpToggleCase toggles case (g~).
	OpToggleCase
)

// String returns the keys that invoke the operator.
func (o Operator) String() string {
	switch o {
	case OpNone:
		return ""
	case OpDelete:
		return "d"
	case OpChange:
		return "c"
	case OpYank:
		return "y"
	case OpShiftRight:
		return ">"
	case OpShiftLeft:
		return "<"
	case OpLower:
		return "gu"
	case OpUpper:
		return "gU"
	case OpToggleCase:
		return "g~"
	}
	return "?"
}

// Name returns a descriptive name, used for undo groups and logging.
func (o Operator) Name() string {
	switch o {
	case OpDelete:
		return "delete"
	case OpChange:
		return "change"
	case OpYank:
		return "yank"
	case OpShiftRight:
		return "shiftRight"
	case OpShiftLeft:
		return "shiftLeft"
	case OpLower:
		return "toLower"
	case OpUpper:
		return "toUpper"
	case OpToggleCase:
		return "toggleCase"
	}
	return "none"
}

// ChangesText reports whether the operator modifies the buffer.
func (o Operator) ChangesText() bool {
	return o != OpNone && o != OpYank
}

// EntersInsert reports whether the operator enters insert mode after.
func (o Operator) EntersInsert() bool {
	return o == OpChange
}

// AlwaysLinewise reports whether the operator works on whole lines
// whatever the motion.
func (o Operator) AlwaysLinewise() bool {
	return o == OpShiftRight || o == OpShiftLeft
}

// doubleKey is the key that, repeated after the operator, makes it act on
// whole lines: dd, >>, gUU, g~~.
func (o Operator) doubleKey() rune {
	s := o.String()
	return rune(s[len(s)-1])
}

// operators maps operator keys to their definitions.
var operators = map[rune]Operator{
	'd': OpDelete,
	'c': OpChange,
	'y': OpYank,
	'>': OpShiftRight,
	'<': OpShiftLeft,
}

// gOperators maps g-prefixed operator keys to their definitions.
var gOperators = map[rune]Operator{
	'~': OpToggleCase,
	'u': OpLower,
	'U': OpUpper,
}

// GetOperator returns the operator for the given key.
func GetOperator(key rune) (Operator, bool) {
	op, ok := operators[key]
	return op, ok
}

// GetGOperator returns the g-prefixed operator for the given key.
func GetGOperator(key rune) (Operator, bool) {
	op, ok := gOperators[key]
	return op, ok
}

// visualOperator is what a key does to a Visual selection.
type visualOperator struct {
	op       Operator
	linewise bool
}

// visualOperators applies to the selection at once. The uppercase forms
// act on whole lines.
var visualOperators = map[rune]visualOperator{
	'd': {OpDelete, false},
	'x': {OpDelete, false},
	'D': {OpDelete, true},
	'X': {OpDelete, true},
	'y': {OpYank, false},
	'Y': {OpYank, true},
	'c': {OpChange, false},
	's': {OpChange, false},
	'C': {OpChange, true},
	'S': {OpChange, true},
	'R': {OpChange, true},
	'>': {OpShiftRight, true},
	'<': {OpShiftLeft, true},
	'~': {OpToggleCase, false},
	'u': {OpLower, false},
	'U': {OpUpper, false},
}
