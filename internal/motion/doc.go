// Package motion resolves Vim motions and text objects against a buffer.
//
// Resolve turns a cursor, a Motion and a count into a Result: the new
// cursor, the covered range and its classification (inclusive or
// exclusive, charwise or linewise). SelectObject does the same for text
// objects such as iw or a(. Result.Span applies the operator rules,
// including the exclusive-to-linewise adjustment, to produce the text an
// operator acts on.
//
// The package is stateless apart from FindState and SearchState, which
// the caller owns and passes in through Env. Regular expressions are
// evaluated by a Matcher; RegexpMatcher is the default.
//
// Motions and objects are closed enumerations (Kind, ObjectKind). Their
// keys are bound by the command parser in package vim.
package motion
