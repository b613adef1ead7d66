package dispatcher

import (
	"errors"

	"github.com/dshills/modalcore/internal/engine/register"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/vim"
)

// change is what '.' repeats: the command, the keys typed if it entered
// Insert mode, and the size of the selection it applied to.
type change struct {
	cmd    vim.Command
	insert []key.Event
	visual *visualSize
}

// repeatLast implements '.'. A count replaces the one of the repeated
// command and is kept for the next '.'.
func (d *Dispatcher) repeatLast(count int) error {
	c := d.lastChange
	if c == nil {
		return nil
	}
	if count > 0 {
		c.cmd.Count = count
	}

	d.repeating = true
	defer func() { d.repeating = false }()
	d.begin("repeat")
	defer d.end()

	if c.visual != nil {
		d.reselectSize(c.visual)
	}
	if err := d.execute(c.cmd); err != nil {
		return err
	}
	if d.insert == nil {
		return nil
	}
	for _, ev := range c.insert {
		if m := d.modes.Current(); m != mode.Insert && m != mode.Replace {
			break
		}
		if err := d.insertKey(ev); err != nil {
			return err
		}
	}
	if d.insert != nil {
		return d.finishInsert()
	}
	return nil
}

// record implements q{reg} and the q that stops it. The keys are stored
// in the register as key notation.
func (d *Dispatcher) record(reg rune) error {
	if d.recorder.IsRecording() {
		name, events, err := d.recorder.StopRecording(1)
		if err != nil {
			return err
		}
		d.parser.SetRecording(false)
		d.logger.Debug("macro recorded", "register", string(name), "keys", len(events))
		return d.regs.Set(name, register.Chars(key.Format(events)))
	}
	if !register.IsValid(reg) || register.IsReadOnly(reg) || reg == '_' {
		return register.ErrInvalidRegister
	}
	d.parser.SetRecording(true)
	return d.recorder.StartRecording(reg)
}

// loadMacro returns the keys of a register for @. "@:" replays the last
// command line. An empty register plays nothing.
func (d *Dispatcher) loadMacro(reg rune) ([]key.Event, error) {
	if reg == ':' {
		if d.lastEx == "" {
			return nil, ErrNoPreviousCommand
		}
		events := []key.Event{key.Rune(':')}
		events = append(events, key.Runes(d.lastEx)...)
		return append(events, key.Special(key.KeyEnter)), nil
	}
	v, err := d.regs.Get(reg)
	if errors.Is(err, register.ErrEmpty) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return key.ParseSequence(v.Text), nil
}
