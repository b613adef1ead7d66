// Package buffer provides the text buffer of the editing core, built on top
// of the rope data structure.
//
// The buffer package provides:
//
//   - Insert, Delete and Replace operations that return the inverse Edit
//   - Coordinate conversion between byte offsets and line/column positions,
//     where the column counts characters (runes) within the line
//   - Display column computation with tab expansion and wide characters
//   - Observers notified after every successful mutation
//   - Read-only snapshots for concurrent readers
//
// Basic usage:
//
//	buf := buffer.New("Hello, World!")
//
//	inv, _ := buf.Insert(7, "Beautiful ") // "Hello, Beautiful World!"
//	buf.Apply(inv)                        // "Hello, World!"
//
//	pos, _ := buf.OffsetToPosition(7)     // {Line: 0, Column: 7}
//
// Lines are separated by '\n'. A buffer always has at least one line; text
// ending in '\n' has an empty last line.
//
// Thread Safety:
//
// All Buffer methods are safe for concurrent use, but the editing core keeps
// a single writer. Readers on other goroutines should work from Snapshot().
package buffer
