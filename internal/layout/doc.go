// Package layout manages windows and their viewports.
//
// A Layout is a tree of splits. Leaves are Windows; each Window shows
// one buffer through its own Viewport and keeps its own cursor, so two
// windows on the same buffer scroll independently. Splitting places the
// new window above (:split) or left of (:vsplit) the current one and
// focuses it. Closing the last window fails with ErrLastWindow.
//
// Space is shared evenly between the children of a split, with any
// remainder going to the first children. Side-by-side windows are
// separated by a one-column border.
//
// # Viewport
//
// The Viewport tracks the first visible line and display column and
// keeps the cursor inside the scroll margins:
//
//	view.SetLineCount(buf.LineCount())
//	view.ScrollToReveal(pos.Line, buf.VisualColumn(pos))
//
// HalfPage and Page give the scroll amounts of Ctrl-D and Ctrl-F, and
// the screen motions H, M and L read the visible range from State.
package layout
