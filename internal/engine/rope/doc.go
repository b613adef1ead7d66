// Package rope provides an immutable rope for text storage.
//
// The rope is a B+ tree whose leaves hold bounded string chunks and whose
// internal nodes cache a Summary (bytes, runes and newlines) for every child.
// Line and offset lookups descend through those summaries, so locating the
// start of line N or the line containing byte offset B costs O(log n)
// regardless of how many edits have been applied.
//
// Every operation returns a new Rope and leaves the receiver untouched, which
// makes a Rope value a free snapshot:
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")   // "hello, world"
//	r = r.Delete(0, 7)     // "world"
//	line := r.LineStart(0) // 0
//
// Offsets are byte offsets and must fall on UTF-8 boundaries.
package rope
