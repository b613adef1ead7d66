// Package engine provides the per-document core of the editor.
//
// An Engine owns one buffer together with everything that must follow its
// text: the undo history, the local marks and the change list. It also
// tags the buffer with a session-unique ID used by global marks and the
// jump list.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - rope: B+ tree rope for text storage (O(log n) line lookups)
//   - buffer: line/column addressing, invertible edits, observers
//   - cursor: cursor with desired column and visual selections
//   - history: change sets with linear undo/redo
//   - mark: local/global marks, jump list and change list
//   - register: the register file shared by a session
//
// # Changes
//
// Every command that modifies text brackets its edits:
//
//	e.BeginChange("dw", cursorBefore)
//	e.Buffer().Delete(r)
//	e.EndChange(cursorAfter)
//
// Closing a change records one undo unit, sets the '.', '[' and ']' marks
// and appends to the change list. Edits made outside a change (for example
// by a language server) still become undo units of their own.
package engine
