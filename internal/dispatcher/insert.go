package dispatcher

import (
	"strings"
	"unicode"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/mark"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/vim"
	"github.com/dshills/modalcore/internal/motion"
)

// insertSession is the state of one stay in Insert or Replace mode. The
// whole stay is one undo unit unless the cursor is moved with the arrow
// keys, which starts a new one.
type insertSession struct {
	// kind is the command that started the session; o and O open a new
	// line for every repetition.
	kind  vim.Action
	count int

	// change is the command to record for '.' when the session ends.
	change *change

	// events are the keys typed since the session (or the last cursor
	// move) started, replayed by counts and '.'.
	events []key.Event
	typed  []rune

	// replaced holds, per typed character in Replace mode, the text it
	// overwrote so Backspace can restore it.
	replaced []string

	awaitReg bool
	moved    bool
	block    *blockInsert
}

// blockInsert is a Visual block I, A or c: on Esc the typed text is
// copied to the other lines of the block.
type blockInsert struct {
	lines []int // lines receiving the text, the first one included
	vcol  int
	toEOL bool // A after $ appends at each line's end
	pad   bool // A pads short lines
}

// startInsert opens the undo unit and enters m. Edits the caller makes
// right after (c deleting its text, o opening a line) belong to it.
func (d *Dispatcher) startInsert(m mode.Mode, kind vim.Action, count int) {
	d.begin(m.Name())
	d.insert = &insertSession{kind: kind, count: max(count, 1)}
	d.setMode(m)
}

// openLine inserts an empty line below or above the cursor line, indented
// like it when autoindent is set, and moves onto it.
func (d *Dispatcher) openLine(below bool) {
	buf := d.buf()
	line := d.line()
	indent := ""
	if d.settings.AutoIndent {
		indent = leadingBlanks(buf.LineText(line))
	}
	if below {
		at := buf.LineEnd(line)
		buf.Insert(at, "\n"+indent)
		d.moveTo(at + 1 + len(indent))
		return
	}
	at := buf.LineStart(line)
	buf.Insert(at, indent+"\n")
	d.moveTo(at + len(indent))
}

// insertKey handles a key in Insert and Replace mode.
func (d *Dispatcher) insertKey(ev key.Event) error {
	s := d.insert
	if s.awaitReg {
		s.awaitReg = false
		s.events = append(s.events, ev)
		if !ev.IsRune() {
			return nil
		}
		v, err := d.regs.Get(ev.Rune)
		if err != nil {
			return err
		}
		d.typeText(v.Text)
		return nil
	}

	if ev.IsEscape() {
		return d.finishInsert()
	}
	if d.cursorKey(ev) {
		return nil
	}

	s.events = append(s.events, ev)
	switch {
	case ev.Is(key.KeyEnter) || ev.IsCtrl('j') || ev.IsCtrl('m'):
		d.typeText("\n")
	case ev.Is(key.KeyTab) || ev.IsCtrl('i'):
		d.insertTab()
	case ev.Is(key.KeyBackspace) || ev.IsCtrl('h'):
		d.backspace()
	case ev.Is(key.KeyDelete):
		d.deleteForward()
	case ev.IsCtrl('w'):
		d.deleteBack(wordStart)
	case ev.IsCtrl('u'):
		d.deleteBack(lineStart)
	case ev.IsCtrl('r'):
		s.awaitReg = true
	case ev.IsRune():
		d.typeText(string(ev.Rune))
	default:
		s.events = s.events[:len(s.events)-1]
	}
	return nil
}

// cursorKey moves the cursor for the arrow, Home and End keys. Moving
// closes the current undo unit and opens a new one, and '.' afterwards
// repeats only what was typed after the move.
func (d *Dispatcher) cursorKey(ev key.Event) bool {
	var k motion.Kind
	switch {
	case ev.Is(key.KeyLeft):
		k = motion.Left
	case ev.Is(key.KeyRight):
		k = motion.Right
	case ev.Is(key.KeyUp):
		k = motion.Up
	case ev.Is(key.KeyDown):
		k = motion.Down
	case ev.Is(key.KeyHome):
		k = motion.LineStart
	case ev.Is(key.KeyEnd):
		k = motion.LineEnd
	default:
		return false
	}

	if res, err := motion.Resolve(d.env(true), d.win().Cursor, motion.Motion{Kind: k}, 0); err == nil {
		cur := res.Cursor
		if k == motion.LineEnd {
			cur.Offset = d.buf().LineEnd(d.line())
		}
		d.win().Cursor = cur
	}

	s := d.insert
	d.end()
	d.begin(d.modes.Current().Name())
	s.events = s.events[:0]
	s.typed = s.typed[:0]
	s.replaced = s.replaced[:0]
	s.moved = true
	s.count = 1
	return true
}

// typeText inserts text at the cursor. In Replace mode each character
// overwrites one on the line; line breaks are inserted.
func (d *Dispatcher) typeText(text string) {
	buf := d.buf()
	s := d.insert
	replace := d.modes.Current() == mode.Replace

	for _, r := range text {
		off := d.off()
		ch := string(r)
		if r == '\n' && d.settings.AutoIndent {
			ch += leadingBlanks(buf.LineText(d.line()))
		}

		if old, size := buf.RuneAt(off); replace && r != '\n' && size > 0 && old != '\n' {
			buf.Replace(buffer.Range{Start: off, End: off + size}, ch)
			s.replaced = append(s.replaced, string(old))
		} else {
			buf.Insert(off, ch)
			if replace {
				s.replaced = append(s.replaced, "")
			}
		}
		d.moveTo(off + len(ch))
		s.typed = append(s.typed, r)
	}
}

// insertTab inserts a tab, or spaces to the next tab stop with expandtab.
func (d *Dispatcher) insertTab() {
	if !d.settings.ExpandTab {
		d.typeText("\t")
		return
	}
	ts := max(d.settings.TabStop, 1)
	vcol := d.buf().VisualColumn(d.pos())
	d.typeText(strings.Repeat(" ", ts-vcol%ts))
}

// backspace deletes the character before the cursor. In Replace mode it
// restores what the typed character overwrote, and only moves left over
// text that was there before.
func (d *Dispatcher) backspace() {
	buf, s := d.buf(), d.insert
	off := d.off()
	_, size := buf.RuneBefore(off)
	if size == 0 {
		return
	}
	r := buffer.Range{Start: off - size, End: off}

	if d.modes.Current() == mode.Replace {
		n := len(s.replaced)
		if n == 0 {
			d.moveTo(r.Start)
			return
		}
		orig := s.replaced[n-1]
		s.replaced = s.replaced[:n-1]
		buf.Replace(r, orig)
	} else {
		buf.Delete(r)
	}
	d.moveTo(r.Start)
	if n := len(s.typed); n > 0 {
		s.typed = s.typed[:n-1]
	}
}

// deleteForward deletes the character under the cursor, joining lines at
// the end of one.
func (d *Dispatcher) deleteForward() {
	buf, off := d.buf(), d.off()
	if _, size := buf.RuneAt(off); size > 0 {
		buf.Delete(buffer.Range{Start: off, End: off + size})
	}
}

// deleteBack deletes from the offset returned by from to the cursor. At
// the start of a line it joins with the previous one.
func (d *Dispatcher) deleteBack(from func(text string, col int) int) {
	buf := d.buf()
	pos := d.pos()
	if pos.Column == 0 {
		d.backspace()
		return
	}
	text := buf.LineText(pos.Line)
	col := from(text, pos.Column)
	start := buf.Offset(buffer.Pos(pos.Line, col))
	buf.Delete(buffer.Range{Start: start, End: d.off()})
	d.moveTo(start)

	s := d.insert
	s.typed = s.typed[:max(0, len(s.typed)-(pos.Column-col))]
}

// wordStart is where Ctrl-W stops: the start of the word before col,
// skipping blanks first.
func wordStart(text string, col int) int {
	runes := []rune(text)
	i := min(col, len(runes))
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	if i == 0 {
		return 0
	}
	keyword := isKeyword(runes[i-1])
	for i > 0 && !unicode.IsSpace(runes[i-1]) && isKeyword(runes[i-1]) == keyword {
		i--
	}
	return i
}

// lineStart is where Ctrl-U stops: the first non-blank, or the line start
// when the cursor is inside the indent.
func lineStart(text string, col int) int {
	indent := len([]rune(leadingBlanks(text)))
	if col > indent {
		return indent
	}
	return 0
}

func isKeyword(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// finishInsert ends the session on Esc: it replays counts, fills a block,
// sets the '^' mark and '.' register and returns to Normal mode one
// character left.
func (d *Dispatcher) finishInsert() error {
	s := d.insert
	events := append([]key.Event(nil), s.events...)

	for i := 1; i < s.count; i++ {
		if d.interrupted() {
			break
		}
		if s.kind == vim.ActOpenBelow || s.kind == vim.ActOpenAbove {
			d.openLine(true)
		}
		for _, ev := range events {
			if err := d.insertKey(ev); err != nil {
				break
			}
		}
	}
	if s.block != nil {
		d.fillBlock(s.block, string(s.typed))
	}

	d.regs.SetReadOnly('.', string(s.typed))
	buf := d.buf()
	d.eng().Marks().Set(mark.LastInsert, d.off())
	off := d.off()
	if d.pos().Column > 0 {
		_, size := buf.RuneBefore(off)
		off -= size
	}
	d.moveTo(off)
	d.end()
	d.insert = nil
	d.setMode(mode.Normal)

	if s.change != nil && !d.repeating {
		if s.moved {
			s.change.cmd = vim.Command{Action: vim.ActInsert, Keys: "i"}
			s.change.visual = nil
		}
		s.change.insert = events
		d.lastChange = s.change
	}
	return nil
}

// fillBlock copies text typed on the first line of a block to the other
// lines at the same display column.
func (d *Dispatcher) fillBlock(b *blockInsert, text string) {
	if text == "" || strings.ContainsRune(text, '\n') {
		return
	}
	buf := d.buf()
	for _, line := range b.lines[1:] {
		if line >= buf.LineCount() {
			break
		}
		if b.toEOL {
			buf.Insert(buf.LineEnd(line), text)
			continue
		}
		width := buffer.DisplayWidth(buf.LineText(line), buf.TabWidth())
		if width < b.vcol {
			if !b.pad {
				continue
			}
			buf.Insert(buf.LineEnd(line), strings.Repeat(" ", b.vcol-width))
		}
		col := buf.ColumnForVisual(line, b.vcol)
		buf.Insert(buf.Offset(buffer.Pos(line, col)), text)
	}
}
