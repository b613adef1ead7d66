package dispatcher

import (
	"github.com/dshills/modalcore/internal/engine/mark"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/vim"
	"github.com/dshills/modalcore/internal/motion"
)

// run executes a complete command and remembers it for '.'.
func (d *Dispatcher) run(cmd vim.Command) error {
	var size *visualSize
	if d.isVisual() && cmd.IsChange() {
		size = d.visualSize()
	}

	err := d.execute(cmd)
	if err != nil || d.repeating || !cmd.IsChange() || d.cmdline != nil {
		return err
	}

	c := &change{cmd: cmd, visual: size}
	if d.insert != nil {
		// completed when the insert ends
		d.insert.change = c
		return nil
	}
	d.lastChange = c
	return nil
}

// execute carries out one parsed command.
func (d *Dispatcher) execute(cmd vim.Command) error {
	if cmd.Action != vim.ActNone {
		return d.action(cmd)
	}

	if d.isVisual() {
		switch {
		case cmd.HasOperator() && cmd.Motion.IsZero() && cmd.Object.IsZero():
			return d.visualOperate(cmd)
		case cmd.IsObject():
			return d.visualObject(cmd)
		}
	}

	if cmd.Motion.Kind.NeedsPattern() && cmd.Motion.Pattern == "" {
		prompt := '/'
		if cmd.Motion.Kind == motion.SearchBackward {
			prompt = '?'
		}
		d.openCmdline(prompt, &cmd, "")
		return nil
	}

	if cmd.HasOperator() {
		return d.operate(cmd)
	}
	if cmd.IsMotion() {
		return d.move(cmd)
	}
	return nil
}

// move runs a motion without an operator.
func (d *Dispatcher) move(cmd vim.Command) error {
	m := cmd.Motion
	if (m.Kind == motion.MarkExact || m.Kind == motion.MarkLine) && mark.IsGlobal(m.Char) {
		if err := d.followGlobalMark(m.Char); err != nil {
			return err
		}
	}

	res, err := motion.Resolve(d.env(false), d.win().Cursor, m, cmd.Count)
	if err != nil {
		return err
	}
	if res.Jump {
		d.pushJump()
	}
	d.win().Cursor = res.Cursor
	if res.Message != "" {
		d.out.Message = res.Message
	}

	if d.modes.Current() == mode.VisualBlock {
		switch m.Kind {
		case motion.LineEnd:
			d.visual.toEOL = true
		case motion.Up, motion.Down:
		default:
			d.visual.toEOL = false
		}
	}
	return nil
}

// followGlobalMark switches to the buffer holding an uppercase mark.
func (d *Dispatcher) followGlobalMark(name rune) error {
	g, err := d.globals.Get(name)
	if err != nil {
		return err
	}
	if g.BufferID == d.win().BufferID() {
		return nil
	}
	if _, ok := d.buffers[g.BufferID]; !ok || d.isVisual() {
		return mark.ErrMarkNotSet
	}
	d.pushJump()
	d.switchBuffer(g.BufferID)
	return nil
}

// operate applies an operator to the text covered by a motion or object.
func (d *Dispatcher) operate(cmd vim.Command) error {
	sp, jump, err := d.span(cmd)
	if err != nil {
		return err
	}
	if jump {
		d.pushJump()
	}
	return d.operator(cmd.Operator, cmd.Register, sp, 1)
}

// span resolves the text an operator command covers.
func (d *Dispatcher) span(cmd vim.Command) (motion.Span, bool, error) {
	buf, off := d.buf(), d.off()

	switch {
	case cmd.Linewise:
		last := min(d.line()+cmd.GetCount()-1, buf.LineCount()-1)
		return motion.Span{Start: off, End: buf.LineStart(last), Linewise: true}, false, nil

	case !cmd.Object.IsZero():
		res, err := motion.SelectObject(d.env(true), off, cmd.Object, cmd.GetCount())
		if err != nil {
			return motion.Span{}, false, err
		}
		return res.Span(buf), false, nil

	case cmd.Operator == vim.OpChange && isWordForward(cmd.Motion.Kind) && !motion.IsBlank(buf, off):
		return d.changeWordSpan(cmd)
	}

	res, err := motion.Resolve(d.env(true), d.win().Cursor, cmd.Motion, cmd.Count)
	if err != nil {
		return motion.Span{}, false, err
	}
	if res.Message != "" {
		d.out.Message = res.Message
	}
	return res.Span(buf), res.Jump, nil
}

func isWordForward(k motion.Kind) bool {
	return k == motion.WordForward || k == motion.BigWordForward
}

// changeWordSpan makes cw act like ce: the change stops at the end of the
// word instead of eating the blanks after it.
func (d *Dispatcher) changeWordSpan(cmd vim.Command) (motion.Span, bool, error) {
	buf, off := d.buf(), d.off()
	big := cmd.Motion.Kind == motion.BigWordForward
	n := cmd.GetCount()
	if motion.IsWordEnd(buf, off, big) {
		n--
	}

	end := off
	if n > 0 {
		kind := motion.WordEnd
		if big {
			kind = motion.BigWordEnd
		}
		res, err := motion.Resolve(d.env(true), d.win().Cursor, motion.Motion{Kind: kind}, n)
		if err != nil {
			return motion.Span{}, false, err
		}
		end = res.Cursor.Offset
	}
	return motion.Result{Start: off, End: end, Inclusive: true}.Span(buf), false, nil
}

// action runs the simple commands.
func (d *Dispatcher) action(cmd vim.Command) error {
	if d.isVisual() {
		if handled, err := d.visualAction(cmd); handled {
			return err
		}
	}

	count := cmd.GetCount()
	buf := d.buf()

	switch cmd.Action {
	// Insert mode
	case vim.ActInsert:
		d.startInsert(mode.Insert, cmd.Action, count)
	case vim.ActAppend:
		if r, size := buf.RuneAt(d.off()); size > 0 && r != '\n' {
			d.moveTo(d.off() + size)
		}
		d.startInsert(mode.Insert, cmd.Action, count)
	case vim.ActInsertLineStart:
		d.moveTo(d.firstNonBlank(d.line()))
		d.startInsert(mode.Insert, cmd.Action, count)
	case vim.ActAppendLineEnd:
		d.moveTo(buf.LineEnd(d.line()))
		d.startInsert(mode.Insert, cmd.Action, count)
	case vim.ActOpenBelow, vim.ActOpenAbove:
		d.startInsert(mode.Insert, cmd.Action, count)
		d.openLine(cmd.Action == vim.ActOpenBelow)
	case vim.ActReplaceMode:
		d.startInsert(mode.Replace, cmd.Action, count)

	// Shorthands for operator commands
	case vim.ActDeleteChar:
		return d.shorthand(cmd, vim.OpDelete, motion.Right)
	case vim.ActDeleteCharBefore:
		return d.shorthand(cmd, vim.OpDelete, motion.Left)
	case vim.ActDeleteToEnd:
		return d.shorthand(cmd, vim.OpDelete, motion.LineEnd)
	case vim.ActChangeToEnd:
		return d.shorthand(cmd, vim.OpChange, motion.LineEnd)
	case vim.ActSubstitute:
		if buf.LineLen(d.line()) == 0 {
			return d.operator(vim.OpChange, cmd.Register, motion.Span{Start: d.off(), End: d.off()}, 1)
		}
		return d.shorthand(cmd, vim.OpChange, motion.Right)
	case vim.ActSubstituteLine:
		return d.operate(vim.Command{Operator: vim.OpChange, Linewise: true, Count: cmd.Count, Register: cmd.Register})
	case vim.ActYankLine:
		return d.operate(vim.Command{Operator: vim.OpYank, Linewise: true, Count: cmd.Count, Register: cmd.Register})

	// Simple changes
	case vim.ActPutAfter, vim.ActPutBefore:
		return d.put(cmd.Register, count, cmd.Action == vim.ActPutAfter)
	case vim.ActJoin, vim.ActJoinRaw:
		return d.join(d.line(), max(count, 2)-1, cmd.Action == vim.ActJoin)
	case vim.ActReplaceChar:
		return d.replaceChars(count, cmd.Char)
	case vim.ActToggleCase:
		return d.toggleChars(count)

	// History
	case vim.ActUndo:
		return d.undo(count, false)
	case vim.ActRedo:
		return d.undo(count, true)

	// Marks and lists
	case vim.ActSetMark:
		return d.setMark(cmd.Char, d.off())
	case vim.ActJumpOlder:
		j, ok := d.jumps.Back(mark.Jump{BufferID: d.win().BufferID(), Offset: d.off()}, count)
		if !ok {
			return motion.ErrFailed
		}
		return d.gotoJump(j)
	case vim.ActJumpNewer:
		j, ok := d.jumps.Forward(count)
		if !ok {
			return motion.ErrFailed
		}
		return d.gotoJump(j)
	case vim.ActChangeOlder, vim.ActChangeNewer:
		list := d.eng().ChangeList()
		older := list.Older
		if cmd.Action == vim.ActChangeNewer {
			older = list.Newer
		}
		off, err := older(count)
		if err != nil {
			return err
		}
		d.moveTo(off)

	// Viewport
	case vim.ActScrollHalfDown, vim.ActScrollHalfUp:
		return d.scrollHalf(cmd.Count, cmd.Action == vim.ActScrollHalfDown)
	case vim.ActPageDown, vim.ActPageUp:
		return d.scrollPage(count, cmd.Action == vim.ActPageDown)

	// Layout
	case vim.ActWindow:
		return d.window(cmd.Char, count)

	// Modes
	case vim.ActCommandLine:
		initial := ""
		if cmd.Count > 0 {
			initial = "."
			if cmd.Count > 1 {
				initial = rangeText(".", cmd.Count-1)
			}
		}
		d.openCmdline(':', nil, initial)
	case vim.ActVisual:
		d.toggleVisual(mode.Visual)
	case vim.ActVisualLine:
		d.toggleVisual(mode.VisualLine)
	case vim.ActVisualBlock:
		d.toggleVisual(mode.VisualBlock)
	case vim.ActReselect:
		return d.reselect()

	// Repetition
	case vim.ActRepeat:
		return d.repeatLast(cmd.Count)
	case vim.ActRecord:
		return d.record(cmd.Char)
	case vim.ActExecute:
		return d.player.Play(cmd.Char, count, d.mapKey)

	default:
		return &vim.InvalidCommandError{Keys: cmd.Keys}
	}
	return nil
}

// shorthand runs x, X, D, C and s as the operator commands they stand for.
func (d *Dispatcher) shorthand(cmd vim.Command, op vim.Operator, k motion.Kind) error {
	return d.operate(vim.Command{
		Operator: op,
		Motion:   motion.Motion{Kind: k},
		Count:    cmd.Count,
		Register: cmd.Register,
	})
}

func (d *Dispatcher) undo(count int, redo bool) error {
	e := d.eng()
	step := e.Undo
	if redo {
		step = e.Redo
	}
	for i := range count {
		pos, err := step()
		if err != nil {
			if i == 0 {
				return err
			}
			break
		}
		d.moveTo(d.buf().Offset(pos))
	}
	return nil
}

func (d *Dispatcher) setMark(name rune, off int) error {
	if mark.IsGlobal(name) {
		e := d.eng()
		return d.globals.Set(name, e.ID(), e.Path(), off)
	}
	if !mark.IsValid(name) {
		return mark.ErrInvalidMark
	}
	return d.eng().Marks().Set(name, off)
}

// gotoJump moves to a jump list entry, switching buffers if needed.
func (d *Dispatcher) gotoJump(j mark.Jump) error {
	if _, ok := d.buffers[j.BufferID]; !ok {
		return mark.ErrMarkNotSet
	}
	d.switchBuffer(j.BufferID)
	d.moveTo(max(0, min(j.Offset, d.buf().Len())))
	return nil
}

// scrollHalf implements Ctrl-D and Ctrl-U. A count sets how many lines
// to scroll.
func (d *Dispatcher) scrollHalf(count int, down bool) error {
	buf, view := d.buf(), d.win().View()
	n := view.HalfPage()
	if count > 0 {
		n = count
	}
	line, last := d.line(), buf.LineCount()-1
	if down {
		if line == last {
			return motion.ErrFailed
		}
		view.ScrollBy(n)
		line = min(line+n, last)
	} else {
		if line == 0 {
			return motion.ErrFailed
		}
		view.ScrollBy(-n)
		line = max(line-n, 0)
	}
	d.moveTo(d.firstNonBlank(line))
	return nil
}

// scrollPage implements Ctrl-F and Ctrl-B.
func (d *Dispatcher) scrollPage(count int, down bool) error {
	view := d.win().View()
	view.SetLineCount(d.buf().LineCount())
	delta := count * view.Page()
	if !down {
		delta = -delta
	}
	if view.ScrollBy(delta) == 0 {
		return motion.ErrFailed
	}
	so := view.ScrollOff()
	line := d.line()
	if down {
		line = max(line, min(view.TopLine()+so, d.buf().LineCount()-1))
	} else {
		line = min(line, max(view.BottomLine()-so, 0))
	}
	d.moveTo(d.firstNonBlank(line))
	return nil
}

// leadingBlanks returns the indent of a line.
func leadingBlanks(text string) string {
	for i := 0; i < len(text); i++ {
		if text[i] != ' ' && text[i] != '\t' {
			return text[:i]
		}
	}
	return text
}
