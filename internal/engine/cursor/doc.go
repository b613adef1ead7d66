// Package cursor provides the cursor and visual selection of a window.
//
// Positions are byte offsets so they can follow buffer edits through
// Transform without re-reading the text. A Cursor also remembers the
// display column it wants to be in, which keeps vertical motions through
// short lines returning to the original column.
//
// Selection Model:
//
// Selections use an anchor/head model where:
//   - Anchor: The position where visual mode started
//   - Head: The cursor position
//
// Both ends are inclusive in visual mode; Range converts that into the
// half-open byte range the buffer works with.
package cursor
