// Package register implements the Vim register file.
//
// Registers hold a Value: text plus a Shape (charwise, linewise or
// blockwise) that decides how a put inserts it. The store understands the
// usual families:
//
//	"        unnamed, always holds the last written value
//	a-z      named; A-Z appends to the lowercase register
//	0        last yank without an explicit register
//	1-9      deletes of a line or more, rotated on every such delete
//	-        deletes within a line
//	_        black hole, discards writes and reads empty
//	+ *      system clipboard through a ClipboardProvider
//	. : / %  read-only: last insert, last ex command, last search, file name
//
// Yank and Delete apply the routing rules of the corresponding operators;
// Set writes one register directly (used by macro recording and :let-style
// callers).
package register
