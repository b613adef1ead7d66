// Package macro provides keyboard macro recording and playback.
//
// This package implements Vim-style macros: q{reg} records key events to
// a register, @{reg} replays them, {n}@{reg} replays n times and @@
// replays the last one.
//
// # Recording
//
// The Recorder buffers the events passed to Record between
// StartRecording and StopRecording. It does not own the registers: the
// caller writes the recording to the register store in key notation
// (see key.Format), which is why "ap pastes a macro and @a runs yanked
// text.
//
//	recorder := macro.NewRecorder()
//	recorder.StartRecording('a')
//	// ... every submitted key goes to recorder.Record ...
//	reg, events, _ := recorder.StopRecording(1) // drop the final q
//
// # Playback
//
// The Player replays events through a handler. Playback is iterative: a
// macro that runs another macro calls Play from inside the handler,
// which pushes a frame onto an explicit stack instead of recursing. The
// stack depth is bounded (WithMaxDepth); exceeding it returns a
// *RecursionError and aborts the whole playback.
//
// A handler error also aborts playback, matching Vim where a failing
// motion stops the macro. The interrupt function (WithInterrupt) is
// polled before each iteration so that a long {n}@a can be stopped from
// another goroutine after the last complete iteration.
//
// # Thread Safety
//
// Recorder and Player are owned by a single dispatcher and are not safe
// for concurrent use.
package macro
