package session

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dshills/modalcore/internal/dispatcher"
	"github.com/dshills/modalcore/internal/engine"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
	"github.com/dshills/modalcore/internal/engine/mark"
	"github.com/dshills/modalcore/internal/engine/register"
)

// Version is the format version written by Capture.
const Version = 1

// State is a saved session.
type State struct {
	Version   int          `yaml:"version"`
	Current   string       `yaml:"current"`
	Buffers   []Buffer     `yaml:"buffers"`
	Registers []Register   `yaml:"registers,omitempty"`
	Marks     []GlobalMark `yaml:"marks,omitempty"`
	Jumps     JumpList     `yaml:"jumps"`
}

// Buffer is one saved buffer.
type Buffer struct {
	ID      string      `yaml:"id"`
	Path    string      `yaml:"path,omitempty"`
	Text    string      `yaml:"text"`
	Cursor  int         `yaml:"cursor"`
	Marks   []Mark      `yaml:"marks,omitempty"`
	Changes ChangeList  `yaml:"changes"`
	Undo    []ChangeSet `yaml:"undo,omitempty"`
	Redo    []ChangeSet `yaml:"redo,omitempty"`
}

// Mark is a buffer-local mark.
type Mark struct {
	Name   string `yaml:"name"`
	Offset int    `yaml:"offset"`
}

// GlobalMark is an A-Z mark.
type GlobalMark struct {
	Name   string `yaml:"name"`
	Buffer string `yaml:"buffer"`
	Path   string `yaml:"path,omitempty"`
	Offset int    `yaml:"offset"`
}

// ChangeList is a buffer's change list.
type ChangeList struct {
	Entries []int `yaml:"entries,flow"`
	Cursor  int   `yaml:"cursor"`
}

// JumpList is the session's jump list.
type JumpList struct {
	Entries []Jump `yaml:"entries,omitempty"`
	Cursor  int    `yaml:"cursor"`
}

// Jump is one jump list entry.
type Jump struct {
	Buffer string `yaml:"buffer"`
	Offset int    `yaml:"offset"`
}

// Register is one saved register.
type Register struct {
	Name  string `yaml:"name"`
	Shape string `yaml:"shape"`
	Text  string `yaml:"text"`
}

// ChangeSet is one undo unit.
type ChangeSet struct {
	Seq    int       `yaml:"seq"`
	Name   string    `yaml:"name,omitempty"`
	Edits  []Edit    `yaml:"edits"`
	Before Position  `yaml:"before,flow"`
	After  Position  `yaml:"after,flow"`
	Time   time.Time `yaml:"time"`
}

// Edit is one primitive edit of a change set.
type Edit struct {
	Start int    `yaml:"start"`
	Old   string `yaml:"old,omitempty"`
	New   string `yaml:"new,omitempty"`
}

// Position is a line and column pair.
type Position struct {
	Line   int `yaml:"line"`
	Column int `yaml:"col"`
}

// ===========================================================================
// Capture
// ===========================================================================

// Capture returns the state of every buffer of d together with the shared
// registers, global marks and jump list.
func Capture(d *dispatcher.Dispatcher) *State {
	st := &State{
		Version: Version,
		Current: d.Current().ID(),
	}
	for _, e := range d.Buffers() {
		st.Buffers = append(st.Buffers, captureBuffer(d, e))
	}
	for _, e := range d.Registers().List() {
		st.Registers = append(st.Registers, Register{
			Name:  string(e.Name),
			Shape: e.Value.Shape.String(),
			Text:  e.Value.Text,
		})
	}
	for _, g := range d.Globals().List() {
		if g.Deleted {
			continue
		}
		st.Marks = append(st.Marks, GlobalMark{
			Name:   string(g.Name),
			Buffer: g.BufferID,
			Path:   g.Path,
			Offset: g.Offset,
		})
	}
	jumps, cur := d.JumpList().Entries()
	st.Jumps.Cursor = cur
	for _, j := range jumps {
		st.Jumps.Entries = append(st.Jumps.Entries, Jump{Buffer: j.BufferID, Offset: j.Offset})
	}
	return st
}

func captureBuffer(d *dispatcher.Dispatcher, e *engine.Engine) Buffer {
	b := Buffer{
		ID:   e.ID(),
		Path: e.Path(),
		Text: e.Text(),
	}
	if wins := d.Layout().ForBuffer(e.ID()); len(wins) > 0 {
		b.Cursor = wins[0].Cursor.Offset
	}
	for _, m := range e.Marks().List() {
		if !m.Deleted {
			b.Marks = append(b.Marks, Mark{Name: string(m.Name), Offset: m.Offset})
		}
	}
	b.Changes.Entries, b.Changes.Cursor = e.ChangeList().Entries()

	undo, redo := e.History().Stacks()
	b.Undo = fromChangeSets(undo)
	b.Redo = fromChangeSets(redo)
	return b
}

func fromChangeSets(sets []history.ChangeSet) []ChangeSet {
	if len(sets) == 0 {
		return nil
	}
	out := make([]ChangeSet, 0, len(sets))
	for _, cs := range sets {
		c := ChangeSet{
			Seq:    cs.Seq,
			Name:   cs.Name,
			Before: Position{cs.CursorBefore.Line, cs.CursorBefore.Column},
			After:  Position{cs.CursorAfter.Line, cs.CursorAfter.Column},
			Time:   cs.Time,
		}
		for _, ed := range cs.Edits {
			c.Edits = append(c.Edits, Edit{Start: ed.Start, Old: ed.OldText, New: ed.NewText})
		}
		out = append(out, c)
	}
	return out
}

func toChangeSets(sets []ChangeSet) []history.ChangeSet {
	out := make([]history.ChangeSet, 0, len(sets))
	for _, c := range sets {
		cs := history.ChangeSet{
			Seq:          c.Seq,
			Name:         c.Name,
			CursorBefore: buffer.Pos(c.Before.Line, c.Before.Column),
			CursorAfter:  buffer.Pos(c.After.Line, c.After.Column),
			Time:         c.Time,
		}
		for _, ed := range c.Edits {
			cs.Edits = append(cs.Edits, buffer.Edit{Start: ed.Start, OldText: ed.Old, NewText: ed.New})
		}
		out = append(out, cs)
	}
	return out
}

// ===========================================================================
// Apply
// ===========================================================================

// Apply opens the buffers of st in d and restores the shared state, then
// shows the buffer that was current. Buffers already open in d are left
// alone; a saved buffer whose id is taken fails with ErrBufferExists
// before anything is changed.
func Apply(d *dispatcher.Dispatcher, st *State) error {
	if st.Version != Version {
		return &VersionError{Got: st.Version, Want: Version}
	}
	for _, b := range st.Buffers {
		if _, ok := d.Buffer(b.ID); ok {
			return fmt.Errorf("%w: %s", ErrBufferExists, b.ID)
		}
	}

	var errs []error
	for _, b := range st.Buffers {
		e := d.Open(b.Text, engine.WithID(b.ID), engine.WithPath(b.Path))
		e.History().Restore(toChangeSets(b.Undo), toChangeSets(b.Redo))
		e.ChangeList().Restore(b.Changes.Entries, b.Changes.Cursor)
		for _, m := range b.Marks {
			if err := e.Marks().Set(markName(m.Name), m.Offset); err != nil {
				errs = append(errs, fmt.Errorf("buffer %s mark %q: %w", b.ID, m.Name, err))
			}
		}
	}

	values := make(map[rune]register.Value, len(st.Registers))
	for _, r := range st.Registers {
		values[markName(r.Name)] = register.Value{Text: r.Text, Shape: register.ParseShape(r.Shape)}
	}
	d.Registers().Restore(values)

	for _, g := range st.Marks {
		if err := d.Globals().Set(markName(g.Name), g.Buffer, g.Path, g.Offset); err != nil {
			errs = append(errs, fmt.Errorf("mark %q: %w", g.Name, err))
		}
	}

	jumps := make([]mark.Jump, 0, len(st.Jumps.Entries))
	for _, j := range st.Jumps.Entries {
		jumps = append(jumps, mark.Jump{BufferID: j.Buffer, Offset: j.Offset})
	}
	d.JumpList().Restore(jumps, st.Jumps.Cursor)

	if st.Current != "" {
		if err := d.Show(st.Current); err != nil {
			errs = append(errs, err)
		} else {
			for _, b := range st.Buffers {
				if b.ID == st.Current {
					d.MoveCursor(b.Cursor)
				}
			}
		}
	}
	return errors.Join(errs...)
}

func markName(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
