package vim

import "github.com/dshills/modalcore/internal/motion"

// Command represents a parsed Vim command.
type Command struct {
	// Count is the repeat count, the product of every count typed.
	// 0 means no count was given.
	Count int

	// Register is the register named with ", or 0 for the default.
	Register rune

	// Operator is the operator, if any. In Visual mode an operator with
	// no motion or object applies to the selection.
	Operator Operator

	// Motion is the motion, if any.
	Motion motion.Motion

	// Object is the text object, if any.
	Object motion.Object

	// Linewise is set for doubled operators (dd, gUU) and for the
	// linewise Visual forms (D, Y, S).
	Linewise bool

	// Action is the simple command, if any.
	Action Action

	// Char is the argument of r, m, q, @ and <C-w>.
	Char rune

	// Keys is the typed sequence in key notation.
	Keys string
}

// GetCount returns the effective count (1 if none specified).
func (c *Command) GetCount() int {
	if c.Count <= 0 {
		return 1
	}
	return c.Count
}

// HasOperator reports whether the command applies an operator.
func (c *Command) HasOperator() bool {
	return c.Operator != OpNone
}

// IsMotion reports whether the command only moves the cursor.
func (c *Command) IsMotion() bool {
	return c.Operator == OpNone && c.Action == ActNone && !c.Motion.IsZero()
}

// IsObject reports whether the command selects a text object without an
// operator, as in Visual mode.
func (c *Command) IsObject() bool {
	return c.Operator == OpNone && !c.Object.IsZero()
}

// IsChange reports whether '.' repeats the command.
func (c *Command) IsChange() bool {
	return c.Operator.ChangesText() || c.Action.IsChange()
}

// String returns the keys of the command.
func (c *Command) String() string {
	return c.Keys
}
