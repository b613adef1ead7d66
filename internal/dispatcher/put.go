package dispatcher

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/register"
)

// readRegister returns the value p and P would put.
func (d *Dispatcher) readRegister(name rune) (register.Value, error) {
	if name == 0 {
		name = register.Unnamed
	}
	return d.regs.Get(name)
}

// repeated joins count copies of s, stopping early on Interrupt.
func (d *Dispatcher) repeated(s string, count int) string {
	var sb strings.Builder
	for i := range count {
		if i > 0 && d.interrupted() {
			break
		}
		sb.WriteString(s)
	}
	return sb.String()
}

// put implements p and P.
func (d *Dispatcher) put(reg rune, count int, after bool) error {
	v, err := d.readRegister(reg)
	if err != nil {
		return err
	}
	d.begin("put")
	defer d.end()
	return d.putValue(v, count, after)
}

func (d *Dispatcher) putValue(v register.Value, count int, after bool) error {
	switch v.Shape {
	case register.Linewise:
		return d.putLines(v, count, after)
	case register.Blockwise:
		return d.putBlock(v, count, after)
	default:
		return d.putChars(v, count, after)
	}
}

// putChars inserts text after (or at) the cursor. The cursor ends on the
// last inserted character, or at the start when the text spans lines.
func (d *Dispatcher) putChars(v register.Value, count int, after bool) error {
	buf := d.buf()
	at := d.off()
	if after {
		if r, size := buf.RuneAt(at); size > 0 && r != '\n' {
			at += size
		}
	}
	text := d.repeated(v.Text, count)
	if text == "" {
		return nil
	}
	if _, err := buf.Insert(at, text); err != nil {
		return err
	}
	if strings.Contains(text, "\n") {
		d.moveTo(at)
		return nil
	}
	_, size := utf8.DecodeLastRuneInString(text)
	d.moveTo(at + len(text) - size)
	return nil
}

// putLines inserts whole lines below (or above) the cursor line and moves
// to the first non-blank of the first new line.
func (d *Dispatcher) putLines(v register.Value, count int, after bool) error {
	buf := d.buf()
	body := d.repeated(v.Text, count)
	line := d.line()

	target := line
	var err error
	switch {
	case !after:
		_, err = buf.Insert(buf.LineStart(line), body)
	case line+1 < buf.LineCount():
		target = line + 1
		_, err = buf.Insert(buf.LineStart(target), body)
	default:
		// below the last line, which has no newline of its own
		target = line + 1
		_, err = buf.Insert(buf.Len(), "\n"+strings.TrimSuffix(body, "\n"))
	}
	if err != nil {
		return err
	}
	d.moveTo(d.firstNonBlank(target))
	d.reportLines(strings.Count(body, "\n"), "more lines")
	return nil
}

// putBlock pastes a rectangle with its top-left corner after (or at) the
// cursor. Short lines are padded and lines are appended as needed.
func (d *Dispatcher) putBlock(v register.Value, count int, after bool) error {
	buf := d.buf()
	pos := d.pos()
	vcol := buf.VisualColumn(pos)
	if after && pos.Column < buf.LineLen(pos.Line) {
		vcol = buf.VisualColumn(buffer.Pos(pos.Line, pos.Column+1))
	}

	rows := v.Rows()
	width := 0
	for _, row := range rows {
		width = max(width, buffer.DisplayWidth(row, buf.TabWidth()))
	}

	for i, row := range rows {
		line := pos.Line + i
		if line >= buf.LineCount() {
			if _, err := buf.Insert(buf.Len(), "\n"); err != nil {
				return err
			}
		}
		text := buf.LineText(line)
		lineWidth := buffer.DisplayWidth(text, buf.TabWidth())
		if lineWidth < vcol {
			if _, err := buf.Insert(buf.LineEnd(line), strings.Repeat(" ", vcol-lineWidth)); err != nil {
				return err
			}
		}
		col := buf.ColumnForVisual(line, vcol)

		piece := row
		if col < buf.LineLen(line) {
			piece += strings.Repeat(" ", width-buffer.DisplayWidth(row, buf.TabWidth()))
		}
		if _, err := buf.Insert(buf.Offset(buffer.Pos(line, col)), d.repeated(piece, count)); err != nil {
			return err
		}
	}
	d.moveTo(buf.Offset(buffer.Pos(pos.Line, buf.ColumnForVisual(pos.Line, vcol))))
	return nil
}
