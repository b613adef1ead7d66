package dispatcher

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/modalcore/internal/dispatcher/ex"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/mark"
	"github.com/dshills/modalcore/internal/engine/register"
	"github.com/dshills/modalcore/internal/input/vim"
	"github.com/dshills/modalcore/internal/layout"
	"github.com/dshills/modalcore/internal/motion"
)

// runEx executes a command line typed after ':'. Commands the core does
// not know go to the host.
func (d *Dispatcher) runEx(line string) error {
	cmd, err := ex.Parse(line)
	if err != nil {
		return err
	}
	if cmd.Name != "" && !cmd.Known {
		return d.forwardCmd(cmd)
	}
	d.logger.Debug("ex command", "name", cmd.Name, "args", cmd.Args)

	first, last, err := cmd.Range.Resolve(exContext{d})
	if err != nil {
		return err
	}
	buf := d.buf()

	switch cmd.Name {
	case "":
		d.pushJump()
		d.moveTo(d.firstNonBlank(last))

	case "delete", "yank":
		reg, count, err := regCount(cmd.Args)
		if err != nil {
			return err
		}
		if count > 0 {
			first, last = last, min(last+count-1, buf.LineCount()-1)
		}
		op := vim.OpDelete
		if cmd.Name == "yank" {
			op = vim.OpYank
		}
		d.moveTo(buf.LineStart(first))
		return d.operator(op, reg, motion.Span{Start: buf.LineStart(first), End: buf.LineStart(last), Linewise: true}, 1)

	case ">", "<":
		args := strings.TrimLeft(cmd.Args, cmd.Name)
		amount := 1 + len(cmd.Args) - len(args)
		if _, count, err := regCount(args); err != nil {
			return err
		} else if count > 0 {
			first, last = last, min(last+count-1, buf.LineCount()-1)
		}
		if cmd.Name == "<" {
			amount = -amount
		}
		if err := d.shift(first, last, amount); err != nil {
			return err
		}
		d.moveTo(d.firstNonBlank(last))

	case "substitute":
		return d.substitute(cmd, first, last)

	case "join":
		_, count, err := regCount(cmd.Args)
		if err != nil {
			return err
		}
		switch {
		case count > 0:
			first, last = last, last+count-1
		case first == last:
			last++
		}
		last = min(last, buf.LineCount()-1)
		if first == last {
			return nil
		}
		return d.join(first, last-first, !cmd.Bang)

	case "undo":
		return d.undo(1, false)
	case "redo":
		return d.undo(1, true)

	case "split":
		return d.split(layout.Horizontal)
	case "vsplit":
		return d.split(layout.Vertical)
	case "close":
		return d.closeWindow()
	case "only":
		d.layout.Only()
		d.focus(d.win())

	case "set":
		return d.setOptions(cmd.Args)

	case "marks":
		d.out.Message = d.listMarks(cmd.Args)
	case "registers", "display":
		d.out.Message = d.listRegisters(cmd.Args)
	case "delmarks":
		return d.delmarks(cmd)
	case "map", "noremap", "nmap", "nnoremap", "vmap", "vnoremap", "xmap", "xnoremap",
		"omap", "onoremap", "imap", "inoremap", "unmap", "nunmap", "vunmap", "xunmap",
		"ounmap", "iunmap", "mapclear", "nmapclear", "vmapclear", "imapclear":
		return d.mapCmd(cmd)
	case "mark", "k":
		name, size := utf8.DecodeRuneInString(strings.TrimSpace(cmd.Args))
		if size == 0 {
			return ex.ErrInvalidArgument
		}
		return d.setMark(name, buf.LineStart(last))
	}
	return nil
}

// forward hands a command line to the host, or queues it in the outcome.
func (d *Dispatcher) forward(line string) error {
	cmd, err := ex.Parse(line)
	if err != nil {
		return err
	}
	return d.forwardCmd(cmd)
}

func (d *Dispatcher) forwardCmd(cmd ex.Command) error {
	if d.host == nil {
		d.logger.Debug("ex command forwarded", "line", cmd.Line)
		d.out.Forwarded = append(d.out.Forwarded, cmd.Line)
		return nil
	}
	msg, err := d.host.Ex(cmd)
	if err != nil {
		return err
	}
	if msg != "" {
		d.out.Message = msg
	}
	return nil
}

// regCount parses the "[x] [count]" argument of :delete, :yank and
// friends.
func regCount(args string) (rune, int, error) {
	args = strings.TrimSpace(args)
	var reg rune
	if r, size := utf8.DecodeRuneInString(args); size > 0 && !unicode.IsDigit(r) {
		if !register.IsValid(r) {
			return 0, 0, ex.ErrTrailing
		}
		reg = r
		args = strings.TrimSpace(args[size:])
	}
	if args == "" {
		return reg, 0, nil
	}
	n, err := strconv.Atoi(args)
	if err != nil {
		return 0, 0, ex.ErrTrailing
	}
	if n <= 0 {
		return 0, 0, ErrPositive
	}
	return reg, n, nil
}

// ===========================================================================
// Addresses
// ===========================================================================

// exContext resolves ex addresses against the current window.
type exContext struct{ d *Dispatcher }

func (c exContext) CurrentLine() int { return c.d.line() }
func (c exContext) LastLine() int    { return c.d.buf().LineCount() - 1 }

func (c exContext) MarkLine(name rune) (int, error) {
	off, err := c.d.markOffset(name)
	if err != nil {
		return 0, err
	}
	return c.d.buf().LineAt(off), nil
}

func (c exContext) SearchLine(pattern string, backward bool, from int) (int, error) {
	d := c.d
	if pattern == "" {
		if !d.search.IsSet() {
			return 0, ex.ErrNoPrevious
		}
		pattern = d.search.Pattern
	}
	d.search = motion.SearchState{Pattern: pattern, Backward: backward}
	re, err := motion.CompileRegexp(pattern, d.settings.IgnoreCase, d.settings.SmartCase)
	if err != nil {
		return 0, err
	}

	buf := d.buf()
	n := buf.LineCount()
	for i := 1; i <= n; i++ {
		line := from + i
		if backward {
			line = from - i
		}
		if line < 0 || line >= n {
			if !d.settings.WrapScan {
				break
			}
			line = (line%n + n) % n
		}
		if re.MatchString(buf.LineText(line)) {
			return line, nil
		}
	}
	return 0, &motion.NoMatchError{What: "search", Pattern: pattern}
}

// ===========================================================================
// :substitute
// ===========================================================================

// substitute runs :s over lines first..last, bottom up so earlier lines
// keep their numbers. The cursor ends on the last line changed.
func (d *Dispatcher) substitute(cmd ex.Command, first, last int) error {
	s, err := ex.ParseSubstitute(cmd.Args)
	if err != nil {
		return err
	}
	if s.Repeat {
		if d.lastSub == nil {
			return ex.ErrNoPreviousSub
		}
		s = ex.Substitute{Pattern: d.lastSub.Pattern, Replacement: d.lastSub.Replacement}
	}
	if s.Pattern == "" {
		if !d.search.IsSet() {
			return ex.ErrNoPrevious
		}
		s.Pattern = d.search.Pattern
	}

	buf := d.buf()
	if s.Count > 0 {
		first, last = last, min(last+s.Count-1, buf.LineCount()-1)
	}
	ignoreCase := (d.settings.IgnoreCase || s.IgnoreCase) && !s.MatchCase
	smartCase := d.settings.SmartCase && !s.IgnoreCase && !s.MatchCase
	re, err := motion.CompileRegexp(s.Pattern, ignoreCase, smartCase)
	if err != nil {
		return err
	}
	d.lastSub = &s
	d.search = motion.SearchState{Pattern: s.Pattern}

	limit := 1
	if s.Global {
		limit = -1
	}

	d.begin("substitute")
	defer d.end()

	subs, lines, lastChanged, added := 0, 0, -1, 0
	for line := last; line >= first; line-- {
		if d.interrupted() {
			break
		}
		text := buf.LineText(line)
		matches := re.FindAllStringSubmatchIndex(text, limit)
		if len(matches) == 0 {
			continue
		}
		var sb strings.Builder
		prev := 0
		for _, m := range matches {
			sb.WriteString(text[prev:m[0]])
			sb.WriteString(ex.Expand(s.Replacement, text, m))
			prev = m[1]
		}
		sb.WriteString(text[prev:])
		start := buf.LineStart(line)
		out := sb.String()
		if _, err := buf.Replace(buffer.Range{Start: start, End: start + len(text)}, out); err != nil {
			return err
		}

		if lastChanged < 0 {
			lastChanged = line
		} else {
			added += strings.Count(out, "\n")
		}
		subs += len(matches)
		lines++
	}

	if subs == 0 {
		if s.NoError {
			return nil
		}
		return &motion.NoMatchError{What: "search", Pattern: s.Pattern}
	}
	d.moveTo(d.firstNonBlank(lastChanged + added))
	if subs > 2 {
		d.out.Message = fmt.Sprintf("%d substitutions on %d lines", subs, lines)
	}
	return nil
}

// ===========================================================================
// :set, :marks, :registers, :delmarks
// ===========================================================================

// setOptions runs :set and pushes the new values to every buffer and
// window.
func (d *Dispatcher) setOptions(args string) error {
	parsed, err := ex.ParseSet(args)
	if err != nil {
		return err
	}
	s := d.settings
	shown, err := s.apply(parsed)
	if err != nil {
		return err
	}
	d.settings = s
	for _, e := range d.buffers {
		e.Buffer().SetTabWidth(s.TabStop)
		e.History().SetMaxEntries(s.UndoLevels)
	}
	d.layout.SetScrollOff(s.ScrollOff, 0)
	if shown != "" {
		d.out.Message = shown
	}
	return nil
}

// listMarks formats :marks, restricted to the names in args when given.
func (d *Dispatcher) listMarks(args string) string {
	buf := d.buf()
	want := func(r rune) bool { return args == "" || strings.ContainsRune(args, r) }
	row := func(name rune, line, col int, text string) string {
		return fmt.Sprintf(" %c %6d %4d %s", name, line+1, col, text)
	}

	out := []string{"mark line  col file/text"}
	for _, m := range d.eng().Marks().List() {
		if m.Deleted || !want(m.Name) {
			continue
		}
		p := buf.Position(m.Offset)
		out = append(out, row(m.Name, p.Line, p.Column, strings.TrimSpace(buf.LineText(p.Line))))
	}
	for _, g := range d.globals.List() {
		if g.Deleted || !want(g.Name) {
			continue
		}
		e, ok := d.buffers[g.BufferID]
		if !ok {
			continue
		}
		p := e.Buffer().Position(g.Offset)
		text := g.Path
		if g.BufferID == d.win().BufferID() {
			text = strings.TrimSpace(buf.LineText(p.Line))
		}
		out = append(out, row(g.Name, p.Line, p.Column, text))
	}
	return strings.Join(out, "\n")
}

// listRegisters formats :registers, restricted to the names in args when
// given.
func (d *Dispatcher) listRegisters(args string) string {
	out := []string{"Type Name Content"}
	for _, e := range d.regs.List() {
		if args != "" && !strings.ContainsRune(args, e.Name) {
			continue
		}
		kind := "c"
		switch e.Value.Shape {
		case register.Linewise:
			kind = "l"
		case register.Blockwise:
			kind = "b"
		}
		text := strings.ReplaceAll(e.Value.Text, "\n", "^J")
		out = append(out, fmt.Sprintf("  %s  \"%c   %s", kind, e.Name, text))
	}
	return strings.Join(out, "\n")
}

// delmarks implements :delmarks {marks} and :delmarks!.
func (d *Dispatcher) delmarks(cmd ex.Command) error {
	marks := d.eng().Marks()
	if cmd.Bang {
		if strings.TrimSpace(cmd.Args) != "" {
			return ex.ErrInvalidArgument
		}
		marks.DeleteLocal()
		return nil
	}
	names := mark.ParseDelmarks(cmd.Args)
	if len(names) == 0 {
		return ex.ErrInvalidArgument
	}
	for _, name := range names {
		if mark.IsGlobal(name) {
			d.globals.Delete(name)
			continue
		}
		marks.Delete(name)
	}
	return nil
}
