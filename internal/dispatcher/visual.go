package dispatcher

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/cursor"
	"github.com/dshills/modalcore/internal/engine/mark"
	"github.com/dshills/modalcore/internal/engine/register"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/vim"
	"github.com/dshills/modalcore/internal/motion"
)

// visualState is the selection being made. The head is the cursor.
type visualState struct {
	anchor int
	toEOL  bool // $ was used in block mode
}

// lastVisual is what gv restores. The positions are the '<' and '>'
// marks, which follow edits.
type lastVisual struct {
	mode     mode.Mode
	bufID    string
	reversed bool
	toEOL    bool
}

func (d *Dispatcher) isVisual() bool {
	return d.modes.Current().IsVisual()
}

func (d *Dispatcher) selection() cursor.Selection {
	return cursor.NewSelection(d.visual.anchor, d.off())
}

// toggleVisual handles v, V and Ctrl-V: start a selection, switch its
// kind, or leave Visual mode when pressed again in the same kind.
func (d *Dispatcher) toggleVisual(m mode.Mode) {
	switch cur := d.modes.Current(); {
	case cur == m:
		d.exitVisual()
	case cur.IsVisual():
		d.setMode(m)
	default:
		d.visual = visualState{anchor: d.off()}
		d.setMode(m)
	}
}

// exitVisual returns to Normal mode, saving the selection for gv and the
// '<' and '>' marks.
func (d *Dispatcher) exitVisual() {
	sel := d.selection()
	marks := d.eng().Marks()
	marks.Set(mark.VisualStart, sel.Start())
	marks.Set(mark.VisualEnd, sel.End())
	d.lastVisual = &lastVisual{
		mode:     d.modes.Current(),
		bufID:    d.win().BufferID(),
		reversed: sel.Head < sel.Anchor,
		toEOL:    d.visual.toEOL,
	}
	d.setMode(mode.Normal)
}

// reselect implements gv.
func (d *Dispatcher) reselect() error {
	lv := d.lastVisual
	if lv == nil || lv.bufID != d.win().BufferID() {
		return mark.ErrMarkNotSet
	}
	marks := d.eng().Marks()
	start, err := marks.Get(mark.VisualStart)
	if err != nil {
		return err
	}
	end, err := marks.Get(mark.VisualEnd)
	if err != nil {
		return err
	}
	if d.isVisual() {
		d.exitVisual()
	}

	anchor, head := start, end
	if lv.reversed {
		anchor, head = end, start
	}
	d.visual = visualState{anchor: anchor, toEOL: lv.toEOL}
	d.setMode(lv.mode)
	d.moveTo(head)
	return nil
}

// visualObject extends the selection with a text object. A linewise
// object turns a characterwise selection linewise.
func (d *Dispatcher) visualObject(cmd vim.Command) error {
	res, err := motion.SelectObject(d.env(true), d.off(), cmd.Object, cmd.GetCount())
	if err != nil {
		return err
	}
	if res.Linewise && d.modes.Current() == mode.Visual {
		d.setMode(mode.VisualLine)
	}
	if d.visual.anchor == d.off() || d.visual.anchor > res.Start {
		d.visual.anchor = res.Start
	}
	d.win().Cursor = res.Cursor
	return nil
}

// visualOperate applies an operator to the selection and leaves Visual
// mode. In block mode D, C and Y extend to the end of every line while
// X, S and R act on whole lines.
func (d *Dispatcher) visualOperate(cmd vim.Command) error {
	buf := d.buf()
	sel := d.selection()
	m := d.modes.Current()
	toEOL := d.visual.toEOL
	d.exitVisual()
	d.moveTo(sel.Start())

	linewise := m == mode.VisualLine || cmd.Linewise
	if m == mode.VisualBlock {
		last, _ := utf8.DecodeLastRuneInString(cmd.Keys)
		switch last {
		case 'D', 'C', 'Y':
			return d.blockOperator(cmd.Operator, cmd.Register, sel.Block(buf, true), cmd.GetCount())
		case 'X', 'S', 'R':
		default:
			if !cmd.Linewise {
				return d.blockOperator(cmd.Operator, cmd.Register, sel.Block(buf, toEOL), cmd.GetCount())
			}
		}
		linewise = true
	}

	var sp motion.Span
	if linewise {
		first, last := sel.Lines(buf)
		sp = motion.Span{Start: buf.LineStart(first), End: buf.LineStart(last), Linewise: true}
	} else {
		r := sel.Range(buf)
		sp = motion.Span{Start: r.Start, End: r.End}
	}
	return d.operator(cmd.Operator, cmd.Register, sp, cmd.GetCount())
}

// visualAction runs the actions that mean something else with a
// selection. It reports false for the ones that behave as in Normal mode.
func (d *Dispatcher) visualAction(cmd vim.Command) (bool, error) {
	switch cmd.Action {
	case vim.ActSwapEnds:
		anchor := d.visual.anchor
		d.visual.anchor = d.off()
		d.moveTo(anchor)
		return true, nil
	case vim.ActInsertLineStart, vim.ActAppendLineEnd:
		return true, d.visualInsert(cmd.Action == vim.ActAppendLineEnd)
	case vim.ActJoin, vim.ActJoinRaw:
		first, last := d.selection().Lines(d.buf())
		d.exitVisual()
		return true, d.join(first, max(last-first, 1), cmd.Action == vim.ActJoin)
	case vim.ActPutAfter, vim.ActPutBefore:
		return true, d.visualPut(cmd)
	case vim.ActReplaceChar:
		return true, d.visualReplace(cmd.Char)
	case vim.ActCommandLine:
		d.exitVisual()
		d.openCmdline(':', nil, "'<,'>")
		return true, nil
	}
	return false, nil
}

// visualSize records the shape of the selection so '.' can apply the
// same change to a selection of the same size at the cursor.
type visualSize struct {
	mode  mode.Mode
	lines int
	chars int // runes on a one-line selection, else the end column
	vcols int
	toEOL bool
}

func (d *Dispatcher) visualSize() *visualSize {
	buf := d.buf()
	sel := d.selection()
	first, last := sel.Lines(buf)
	sz := &visualSize{mode: d.modes.Current(), lines: last - first + 1, toEOL: d.visual.toEOL}
	switch sz.mode {
	case mode.Visual:
		if sz.lines == 1 {
			sz.chars = utf8.RuneCountInString(buf.Slice(sel.Range(buf)))
		} else {
			sz.chars = buf.Position(sel.End()).Column
		}
	case mode.VisualBlock:
		blk := sel.Block(buf, false)
		sz.vcols = blk.Right - blk.Left + 1
	}
	return sz
}

// reselectSize selects a region of the recorded size starting at the
// cursor.
func (d *Dispatcher) reselectSize(sz *visualSize) {
	buf := d.buf()
	off := d.off()
	pos := d.pos()
	last := min(pos.Line+sz.lines-1, buf.LineCount()-1)

	head := off
	switch sz.mode {
	case mode.VisualLine:
		head = buf.LineStart(last)
	case mode.Visual:
		if sz.lines == 1 {
			head = buf.Offset(buffer.Pos(pos.Line, min(pos.Column+sz.chars-1, buf.LineLen(pos.Line))))
		} else {
			head = buf.Offset(buffer.Pos(last, sz.chars))
		}
	case mode.VisualBlock:
		vcol := buf.VisualColumn(pos) + sz.vcols - 1
		head = buf.Offset(buffer.Pos(last, buf.ColumnForVisual(last, vcol)))
	}
	d.visual = visualState{anchor: off, toEOL: sz.toEOL}
	d.setMode(sz.mode)
	d.moveTo(head)
}

// visualInsert implements I and A on a selection. In block mode the text
// typed is copied to every line of the block on Esc.
func (d *Dispatcher) visualInsert(appendText bool) error {
	buf := d.buf()
	sel := d.selection()
	m := d.modes.Current()
	toEOL := d.visual.toEOL
	d.exitVisual()

	if m != mode.VisualBlock {
		if appendText {
			r := sel.Range(buf)
			d.moveTo(r.End)
		} else {
			d.moveTo(sel.Start())
		}
		d.startInsert(mode.Insert, vim.ActInsert, 1)
		return nil
	}

	blk := sel.Block(buf, toEOL)
	b := &blockInsert{vcol: blk.Left, toEOL: toEOL && appendText, pad: appendText}
	if appendText {
		b.vcol = blk.Right + 1
	}
	for line := blk.Top; line <= blk.Bottom; line++ {
		if line == blk.Top || appendText || buffer.DisplayWidth(buf.LineText(line), buf.TabWidth()) > b.vcol {
			b.lines = append(b.lines, line)
		}
	}

	d.startInsert(mode.Insert, vim.ActNone, 1)
	d.insert.block = b
	top := blk.Top
	if b.toEOL {
		d.moveTo(buf.LineEnd(top))
		return nil
	}
	if width := buffer.DisplayWidth(buf.LineText(top), buf.TabWidth()); width < b.vcol {
		buf.Insert(buf.LineEnd(top), strings.Repeat(" ", b.vcol-width))
	}
	d.moveTo(buf.Offset(buffer.Pos(top, buf.ColumnForVisual(top, b.vcol))))
	return nil
}

// visualPut replaces the selection with a register. The replaced text
// goes to the unnamed register afterwards.
func (d *Dispatcher) visualPut(cmd vim.Command) error {
	v, err := d.readRegister(cmd.Register)
	if err != nil {
		return err
	}
	buf := d.buf()
	sel := d.selection()
	m := d.modes.Current()
	toEOL := d.visual.toEOL
	d.exitVisual()
	count := cmd.GetCount()

	d.begin("put")
	defer d.end()

	var old register.Value
	switch m {
	case mode.VisualLine:
		first, last := sel.Lines(buf)
		old = register.Lines(linesText(buf, first, last))
		text := d.repeated(v.Text, count)
		if v.Shape != register.Linewise {
			text += "\n"
		}
		text = strings.TrimSuffix(text, "\n")
		r := buffer.Range{Start: buf.LineStart(first), End: buf.LineEnd(last)}
		if _, err := buf.Replace(r, text); err != nil {
			return err
		}
		d.moveTo(d.firstNonBlank(first))

	case mode.VisualBlock:
		blk := sel.Block(buf, toEOL)
		rows := blockRows(buf, blk)
		old = blockValue(buf, rows)
		for i := len(rows) - 1; i >= 0; i-- {
			if _, err := buf.Delete(buffer.Range{Start: rows[i].start, End: rows[i].end}); err != nil {
				return err
			}
		}
		d.moveTo(rows[0].start)
		if err := d.putValue(v, count, false); err != nil {
			return err
		}

	default:
		r := sel.Range(buf)
		old = register.Chars(buf.Slice(r))
		if _, err := buf.Delete(r); err != nil {
			return err
		}
		d.moveTo(r.Start)
		if v.Shape == register.Linewise {
			if _, err := buf.Insert(r.Start, "\n"+d.repeated(v.Text, count)); err != nil {
				return err
			}
			d.moveTo(d.firstNonBlank(buf.LineAt(r.Start) + 1))
		} else if err := d.putValue(v, count, false); err != nil {
			return err
		}
	}
	return d.regs.Delete(0, old)
}

// visualReplace implements r{char} on a selection: every character but
// line breaks becomes char.
func (d *Dispatcher) visualReplace(ch rune) error {
	buf := d.buf()
	sel := d.selection()
	m := d.modes.Current()
	toEOL := d.visual.toEOL
	d.exitVisual()

	var ranges []buffer.Range
	switch m {
	case mode.VisualBlock:
		for _, row := range blockRows(buf, sel.Block(buf, toEOL)) {
			ranges = append(ranges, buffer.Range{Start: row.start, End: row.end})
		}
	case mode.VisualLine:
		first, last := sel.Lines(buf)
		ranges = append(ranges, buffer.Range{Start: buf.LineStart(first), End: buf.LineEnd(last)})
	default:
		ranges = append(ranges, sel.Range(buf))
	}

	d.begin("replace")
	defer d.end()
	for i := len(ranges) - 1; i >= 0; i-- {
		text := []rune(buf.Slice(ranges[i]))
		for j, r := range text {
			if r != '\n' {
				text[j] = ch
			}
		}
		if _, err := buf.Replace(ranges[i], string(text)); err != nil {
			return err
		}
	}
	d.moveTo(ranges[0].Start)
	return nil
}
