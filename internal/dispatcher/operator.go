package dispatcher

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/cursor"
	"github.com/dshills/modalcore/internal/engine/mark"
	"github.com/dshills/modalcore/internal/engine/register"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/vim"
	"github.com/dshills/modalcore/internal/motion"
)

// ===========================================================================
// Ranges
// ===========================================================================

// linesRange returns the bytes of lines first..last with one newline: the
// one after last, or the one before first when last is the final line.
func linesRange(buf *buffer.Buffer, first, last int) buffer.Range {
	switch {
	case last+1 < buf.LineCount():
		return buffer.Range{Start: buf.LineStart(first), End: buf.LineStart(last + 1)}
	case first > 0:
		return buffer.Range{Start: buf.LineEnd(first - 1), End: buf.Len()}
	default:
		return buffer.Range{Start: 0, End: buf.Len()}
	}
}

func linesText(buf *buffer.Buffer, first, last int) string {
	return buf.Slice(buffer.Range{Start: buf.LineStart(first), End: buf.LineEnd(last)})
}

func spanRange(buf *buffer.Buffer, sp motion.Span) buffer.Range {
	if sp.Linewise {
		first, last := sp.Lines(buf)
		return linesRange(buf, first, last)
	}
	return buffer.Range{Start: sp.Start, End: sp.End}
}

func spanValue(buf *buffer.Buffer, sp motion.Span) register.Value {
	if sp.Linewise {
		first, last := sp.Lines(buf)
		return register.Lines(linesText(buf, first, last))
	}
	return register.Chars(buf.Slice(buffer.Range{Start: sp.Start, End: sp.End}))
}

// ===========================================================================
// Charwise and linewise operators
// ===========================================================================

// operator applies op to a span. amount is the number of shiftwidths for
// > and <.
func (d *Dispatcher) operator(op vim.Operator, reg rune, sp motion.Span, amount int) error {
	if op.AlwaysLinewise() {
		sp.Linewise = true
	}
	if sp.IsEmpty() && op != vim.OpChange {
		return nil
	}
	d.logger.Debug("operator", "op", op.Name(), "start", sp.Start, "end", sp.End, "linewise", sp.Linewise)

	switch op {
	case vim.OpYank:
		return d.yank(reg, sp)
	case vim.OpDelete:
		return d.deleteSpan(reg, sp)
	case vim.OpChange:
		return d.changeSpan(reg, sp)
	case vim.OpShiftRight, vim.OpShiftLeft:
		if op == vim.OpShiftLeft {
			amount = -amount
		}
		first, last := sp.Lines(d.buf())
		return d.shift(first, last, amount)
	case vim.OpLower, vim.OpUpper, vim.OpToggleCase:
		return d.recaseSpan(op, sp)
	}
	return nil
}

func (d *Dispatcher) yank(reg rune, sp motion.Span) error {
	buf := d.buf()
	if err := d.regs.Yank(reg, spanValue(buf, sp)); err != nil {
		return err
	}
	r := spanRange(buf, sp)
	marks := d.eng().Marks()
	marks.Set(mark.ChangeStart, r.Start)
	marks.Set(mark.ChangeEnd, max(r.Start, r.End-1))

	first, last := sp.Lines(buf)
	if !sp.Linewise {
		d.moveTo(sp.Start)
	} else if first < d.line() {
		col := d.pos().Column
		d.moveTo(buf.Offset(buffer.Pos(first, col)))
	}
	if sp.Linewise {
		d.reportLines(last-first+1, "lines yanked")
	}
	return nil
}

func (d *Dispatcher) deleteSpan(reg rune, sp motion.Span) error {
	buf := d.buf()
	first, last := sp.Lines(buf)
	if err := d.regs.Delete(reg, spanValue(buf, sp)); err != nil {
		return err
	}

	d.begin("delete")
	_, err := buf.Delete(spanRange(buf, sp))
	if err == nil {
		if sp.Linewise {
			d.moveTo(d.firstNonBlank(min(first, buf.LineCount()-1)))
		} else {
			d.moveTo(sp.Start)
		}
	}
	d.end()

	if err == nil && sp.Linewise {
		d.reportLines(last-first+1, "fewer lines")
	}
	return err
}

// changeSpan deletes the span and starts Insert mode in its place. A
// linewise change keeps the indent of the first line when autoindent is
// set.
func (d *Dispatcher) changeSpan(reg rune, sp motion.Span) error {
	buf := d.buf()
	if !sp.IsEmpty() {
		if err := d.regs.Delete(reg, spanValue(buf, sp)); err != nil {
			return err
		}
	}

	d.startInsert(mode.Insert, vim.ActNone, 1)
	var err error
	if sp.Linewise {
		first, last := sp.Lines(buf)
		indent := ""
		if d.settings.AutoIndent {
			indent = leadingBlanks(buf.LineText(first))
		}
		r := buffer.Range{Start: buf.LineStart(first), End: buf.LineEnd(last)}
		_, err = buf.Replace(r, indent)
		d.moveTo(r.Start + len(indent))
	} else {
		if !sp.IsEmpty() {
			_, err = buf.Delete(buffer.Range{Start: sp.Start, End: sp.End})
		}
		d.moveTo(sp.Start)
	}
	return err
}

// shift indents lines first..last by amount shiftwidths, outdenting when
// amount is negative. Empty lines are left alone.
func (d *Dispatcher) shift(first, last, amount int) error {
	buf := d.buf()
	sw := d.settings.shiftWidth()

	d.begin("shift")
	for line := first; line <= last; line++ {
		text := buf.LineText(line)
		if text == "" {
			continue
		}
		lead := leadingBlanks(text)
		width := buffer.DisplayWidth(lead, buf.TabWidth())
		indent := d.indent(max(0, width+amount*sw))
		if indent == lead {
			continue
		}
		start := buf.LineStart(line)
		if _, err := buf.Replace(buffer.Range{Start: start, End: start + len(lead)}, indent); err != nil {
			d.end()
			return err
		}
	}
	d.moveTo(d.firstNonBlank(first))
	d.end()

	if n := last - first + 1; n > 2 {
		dir, times := ">", "time"
		if amount < 0 {
			dir, amount = "<", -amount
		}
		if amount > 1 {
			times = "times"
		}
		d.out.Message = fmt.Sprintf("%d lines %sed %d %s", n, dir, amount, times)
	}
	return nil
}

// indent returns the whitespace that fills width display columns.
func (d *Dispatcher) indent(width int) string {
	ts := d.buf().TabWidth()
	if d.settings.ExpandTab || ts <= 0 {
		return strings.Repeat(" ", width)
	}
	return strings.Repeat("\t", width/ts) + strings.Repeat(" ", width%ts)
}

func (d *Dispatcher) recaseSpan(op vim.Operator, sp motion.Span) error {
	buf := d.buf()
	r := buffer.Range{Start: sp.Start, End: sp.End}
	if sp.Linewise {
		first, last := sp.Lines(buf)
		r = buffer.Range{Start: buf.LineStart(first), End: buf.LineEnd(last)}
	}

	d.begin(op.Name())
	err := recase(buf, op, r)
	if !sp.Linewise {
		d.moveTo(sp.Start)
	} else if first := buf.LineAt(r.Start); first < d.line() {
		d.moveTo(buf.LineStart(first))
	}
	d.end()
	return err
}

func caseFunc(op vim.Operator) func(rune) rune {
	switch op {
	case vim.OpLower:
		return unicode.ToLower
	case vim.OpUpper:
		return unicode.ToUpper
	default:
		return func(r rune) rune {
			switch {
			case unicode.IsUpper(r):
				return unicode.ToLower(r)
			case unicode.IsLower(r):
				return unicode.ToUpper(r)
			}
			return r
		}
	}
}

// recase rewrites the characters of r whose case changes. Each run of
// changed characters is one edit; runs are replaced from the end so the
// earlier offsets stay valid.
func recase(buf *buffer.Buffer, op vim.Operator, r buffer.Range) error {
	type run struct {
		start, end int
		text       string
	}
	conv := caseFunc(op)
	text := buf.Slice(r)

	var runs []run
	for i := 0; i < len(text); {
		c, size := utf8.DecodeRuneInString(text[i:])
		if conv(c) == c {
			i += size
			continue
		}
		var sb strings.Builder
		start := i
		for i < len(text) {
			c, size = utf8.DecodeRuneInString(text[i:])
			nc := conv(c)
			if nc == c {
				break
			}
			sb.WriteRune(nc)
			i += size
		}
		runs = append(runs, run{start: start, end: i, text: sb.String()})
	}

	for i := len(runs) - 1; i >= 0; i-- {
		ru := runs[i]
		if _, err := buf.Replace(buffer.Range{Start: r.Start + ru.start, End: r.Start + ru.end}, ru.text); err != nil {
			return err
		}
	}
	return nil
}

// ===========================================================================
// Blockwise operators
// ===========================================================================

// blockRow is the part of one line inside a block.
type blockRow struct {
	line       int
	start, end int // byte offsets
	ok         bool
}

func blockRows(buf *buffer.Buffer, blk cursor.Block) []blockRow {
	rows := make([]blockRow, 0, blk.Bottom-blk.Top+1)
	for line := blk.Top; line <= blk.Bottom; line++ {
		row := blockRow{line: line}
		if sc, ec, ok := blk.RowRange(buf, line); ok {
			row.start = buf.Offset(buffer.Pos(line, sc))
			row.end = buf.Offset(buffer.Pos(line, ec))
			row.ok = true
		} else {
			row.start = buf.LineEnd(line)
			row.end = row.start
		}
		rows = append(rows, row)
	}
	return rows
}

func blockValue(buf *buffer.Buffer, rows []blockRow) register.Value {
	texts := make([]string, len(rows))
	for i, row := range rows {
		texts[i] = buf.Slice(buffer.Range{Start: row.start, End: row.end})
	}
	return register.Block(texts)
}

// blockOperator applies op to a rectangle. Shifts act on whole lines.
func (d *Dispatcher) blockOperator(op vim.Operator, reg rune, blk cursor.Block, amount int) error {
	buf := d.buf()
	rows := blockRows(buf, blk)
	topLeft := rows[0].start
	d.logger.Debug("block operator", "op", op.Name(), "top", blk.Top, "bottom", blk.Bottom, "left", blk.Left, "right", blk.Right)

	switch op {
	case vim.OpYank:
		if err := d.regs.Yank(reg, blockValue(buf, rows)); err != nil {
			return err
		}
		d.moveTo(topLeft)
		if n := len(rows); n > 2 {
			d.out.Message = fmt.Sprintf("block of %d lines yanked", n)
		}
		return nil

	case vim.OpDelete, vim.OpChange:
		if err := d.regs.Delete(reg, blockValue(buf, rows)); err != nil {
			return err
		}
		if op == vim.OpChange {
			d.startInsert(mode.Insert, vim.ActNone, 1)
			b := &blockInsert{vcol: blk.Left}
			for _, row := range rows {
				if row.ok || row.line == blk.Top {
					b.lines = append(b.lines, row.line)
				}
			}
			d.insert.block = b
		} else {
			d.begin("delete")
		}
		var err error
		for i := len(rows) - 1; i >= 0 && err == nil; i-- {
			_, err = buf.Delete(buffer.Range{Start: rows[i].start, End: rows[i].end})
		}
		d.moveTo(topLeft)
		if op == vim.OpDelete {
			d.end()
		}
		return err

	case vim.OpShiftRight, vim.OpShiftLeft:
		if op == vim.OpShiftLeft {
			amount = -amount
		}
		return d.shift(blk.Top, blk.Bottom, amount)

	case vim.OpLower, vim.OpUpper, vim.OpToggleCase:
		d.begin(op.Name())
		defer d.end()
		for i := len(rows) - 1; i >= 0; i-- {
			if err := recase(buf, op, buffer.Range{Start: rows[i].start, End: rows[i].end}); err != nil {
				return err
			}
		}
		d.moveTo(topLeft)
	}
	return nil
}

// ===========================================================================
// Simple changes
// ===========================================================================

// join joins count lines after line onto it. With spaces (J) the
// leading blanks of each joined line become one space; gJ joins as is.
func (d *Dispatcher) join(line, count int, spaces bool) error {
	buf := d.buf()
	if line+1 >= buf.LineCount() {
		return motion.ErrFailed
	}
	count = min(count, buf.LineCount()-1-line)

	d.begin("join")
	defer d.end()
	at := d.off()
	for i := range count {
		if i > 0 && d.interrupted() {
			break
		}
		cur, next := buf.LineText(line), buf.LineText(line+1)
		nl := buf.LineEnd(line)
		r := buffer.Range{Start: nl, End: nl + 1}
		sep := ""
		if spaces {
			lead := leadingBlanks(next)
			r.End += len(lead)
			rest := next[len(lead):]
			if rest != "" && cur != "" && !strings.HasSuffix(cur, " ") &&
				!strings.HasSuffix(cur, "\t") && !strings.HasPrefix(rest, ")") {
				sep = " "
			}
		}
		if _, err := buf.Replace(r, sep); err != nil {
			return err
		}
		at = nl
	}
	d.moveTo(at)
	return nil
}

// replaceChars implements r: count characters become ch. r<CR> replaces
// them with a single line break.
func (d *Dispatcher) replaceChars(count int, ch rune) error {
	buf, off := d.buf(), d.off()
	eol := buf.LineEnd(d.line())
	end := off
	for range count {
		if end >= eol {
			return motion.ErrFailed
		}
		_, size := buf.RuneAt(end)
		end += size
	}

	d.begin("replace")
	defer d.end()
	r := buffer.Range{Start: off, End: end}
	if ch == '\n' {
		if _, err := buf.Replace(r, "\n"); err != nil {
			return err
		}
		d.moveTo(off + 1)
		return nil
	}
	s := string(ch)
	if _, err := buf.Replace(r, strings.Repeat(s, count)); err != nil {
		return err
	}
	d.moveTo(off + (count-1)*len(s))
	return nil
}

// toggleChars implements ~: toggle the case of count characters and move
// past them.
func (d *Dispatcher) toggleChars(count int) error {
	buf, off := d.buf(), d.off()
	eol := buf.LineEnd(d.line())
	if off >= eol {
		return motion.ErrFailed
	}
	end := off
	for i := 0; i < count && end < eol; i++ {
		_, size := buf.RuneAt(end)
		end += size
	}

	d.begin("toggleCase")
	defer d.end()
	if err := recase(buf, vim.OpToggleCase, buffer.Range{Start: off, End: end}); err != nil {
		return err
	}
	d.moveTo(end)
	return nil
}
