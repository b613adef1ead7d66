package macro

import (
	"fmt"

	"github.com/dshills/modalcore/internal/input/key"
)

// Recorder captures key events between q{reg} and q. It only buffers
// the recording; the dispatcher stores the result in the register, as
// key notation, so that macros and register text are interchangeable.
type Recorder struct {
	recording bool
	register  rune
	events    []key.Event
}

// NewRecorder creates a new macro recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// StartRecording begins recording to the specified register.
func (r *Recorder) StartRecording(register rune) error {
	if r.recording {
		return fmt.Errorf("%w to register %c", ErrAlreadyRecording, r.register)
	}
	r.recording = true
	r.register = register
	r.events = nil
	return nil
}

// StopRecording ends the recording and returns the register and the
// recorded events without the last trailing ones, which are the keys
// that stopped the recording.
func (r *Recorder) StopRecording(trailing int) (rune, []key.Event, error) {
	if !r.recording {
		return 0, nil, ErrNotRecording
	}
	r.recording = false
	events := r.events
	r.events = nil
	return r.register, events[:max(0, len(events)-trailing)], nil
}

// IsRecording returns true if currently recording.
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// CurrentRegister returns the register being recorded to, or 0 if not recording.
func (r *Recorder) CurrentRegister() rune {
	if r.recording {
		return r.register
	}
	return 0
}

// Record adds a key event to the current recording.
// Does nothing if not recording.
func (r *Recorder) Record(event key.Event) {
	if r.recording {
		r.events = append(r.events, event)
	}
}

// Len returns the number of events recorded so far.
func (r *Recorder) Len() int {
	return len(r.events)
}
