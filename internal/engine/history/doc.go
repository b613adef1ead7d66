// Package history provides linear undo/redo for a buffer.
//
// # Change sets
//
// A ChangeSet is an ordered list of buffer edits applied atomically, tagged
// with the cursor position before and after the change. Applying the inverse
// of every edit in reverse order restores the text exactly.
//
// # Recording
//
// History observes its buffer. Every edit the buffer reports is appended to
// the open group, or becomes a change set of its own when no group is open:
//
//	h := history.New(1000)
//	buf.AddObserver(h)
//
//	h.BeginGroup("cw", cursor)
//	buf.Delete(word)
//	buf.Insert(start, "new") // typed in insert mode
//	h.EndGroup(cursorAfter)  // one undo unit
//
// Groups nest; only the outermost EndGroup closes the change set.
//
// # Undo and redo
//
// Undo and Redo move one change set between the stacks, replaying edits
// through the buffer. Edits produced by the replay are not recorded again.
// Recording a new change set clears the redo stack: history is linear.
package history
