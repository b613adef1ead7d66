// Package key provides key event types and Vim key notation.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: identifies a special key, or KeyRune for characters
//   - Modifier: Ctrl, Alt and Shift
//   - Event: a single key press
//
// # Notation
//
// Key sequences are written the way Vim writes them in mappings and
// macro registers:
//
//	dw<Esc>      d, w, Escape
//	<C-r>a       Ctrl-R then a
//	<lt>         a literal '<'
//	<S-Up>       Shift plus the up arrow
//
// ParseSequence is lenient so that any text yanked into a register can be
// executed as a macro; Format is its inverse.
//
// FromTcell adapts terminal events from github.com/gdamore/tcell/v2.
package key
