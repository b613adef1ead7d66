// Package mark stores named positions that follow the text they point at.
//
// A Table holds the local marks of one buffer: a-z plus the special marks
// maintained by the editor (' ` . ^ < > [ ]). Globals holds A-Z, each
// tagged with the buffer it belongs to. Both are kept as byte offsets and
// shifted with the same edits the buffer applies; a mark whose text is
// deleted is kept but flagged, and looking it up reports ErrMarkDeleted.
//
// JumpList and ChangeList are bounded position histories with a cursor,
// navigated with Ctrl-O/Ctrl-I and g;/g, respectively.
package mark
