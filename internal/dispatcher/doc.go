// Package dispatcher is the modal command engine of an editing session.
//
// A Dispatcher owns the buffers, windows, registers, marks and jump list
// of one session and turns key events into edits. Hosts feed it keys with
// SubmitKey and draw from the Outcome and Snapshot it returns.
//
// # Modes
//
// Keys are routed by mode. Normal, Operator-pending and the Visual modes
// go through the vim command parser; Insert and Replace type text; the
// command line collects an ex command or a search pattern until Enter.
//
// # Undo
//
// Every command is one undo unit. A stay in Insert mode is one unit with
// the command that started it, unless the cursor is moved with the arrow
// keys. Edits made through ApplyExternalEdit are units of their own, or
// join the open insert.
//
// # Repetition
//
// The last change, including the text typed after it and the size of the
// selection it applied to, is repeated with '.'. Macros are recorded into
// registers as key notation and played back through the same path as
// typed keys, so a failing command stops playback.
//
// # Ex commands
//
// The command line handles ranges, :substitute, :delete, :yank, :join,
// :>, :<, :set, :marks, :registers, :delmarks, :mark and the window
// commands. Anything else is passed to the Host, or returned in
// Outcome.Forwarded when there is none.
package dispatcher
