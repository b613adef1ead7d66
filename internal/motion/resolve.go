package motion

import (
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/cursor"
)

// Resolve moves cur by motion m repeated count times. A count of 0 means
// no count was typed; motions such as G and % treat that differently
// from 1. On error the cursor must be left where it was.
func Resolve(env *Env, cur cursor.Cursor, m Motion, count int) (Result, error) {
	buf := env.Buf
	n := max(count, 1)
	inclusive, linewise := m.Kind.Classify()
	res := Result{Inclusive: inclusive, Linewise: linewise, Jump: m.Kind.IsJump()}
	next := cur.MoveTo(cur.Offset)

	var (
		target int
		err    error
	)
	switch m.Kind {
	case None:
		return Result{}, ErrFailed
	case Left:
		target, err = left(buf, cur.Offset, n)
	case Right:
		target, err = right(buf, cur.Offset, n, env.PastEnd)
	case Up, Down:
		delta := n
		if m.Kind == Up {
			delta = -n
		}
		next, err = vertical(env, cur, delta)
		target = next.Offset
	case WordForward, BigWordForward:
		target, err = repeat(env, cur.Offset, n, func(o int) int { return wordForward(newText(buf), o, m.Kind == BigWordForward) })
	case WordBackward, BigWordBackward:
		target, err = repeat(env, cur.Offset, n, func(o int) int { return wordBackward(newText(buf), o, m.Kind == BigWordBackward) })
	case WordEnd, BigWordEnd:
		target, err = repeat(env, cur.Offset, n, func(o int) int { return wordEnd(newText(buf), o, m.Kind == BigWordEnd) })
	case WordEndBackward, BigWordEndBackward:
		target, err = repeat(env, cur.Offset, n, func(o int) int { return wordEndBackward(newText(buf), o, m.Kind == BigWordEndBackward) })
	case LineStart:
		target = buf.LineStart(buf.LineAt(cur.Offset))
	case FirstNonBlank:
		target = firstNonBlankOffset(buf, buf.LineAt(cur.Offset))
	case LineEnd:
		line := min(buf.LineAt(cur.Offset)+n-1, buf.LineCount()-1)
		target = lineOffset(buf, line, lastCol(buf, line))
		next = next.WithWant(cursor.WantEOL)
	case LastNonBlank:
		line := min(buf.LineAt(cur.Offset)+n-1, buf.LineCount()-1)
		target = lastNonBlank(buf, line)
	case CurrentLine:
		target = firstNonBlankOffset(buf, min(buf.LineAt(cur.Offset)+n-1, buf.LineCount()-1))
	case NextLine, PrevLine:
		target, err = lineStep(buf, cur.Offset, n, m.Kind == PrevLine)
	case Column:
		line := buf.LineAt(cur.Offset)
		col := min(buf.ColumnForVisual(line, n-1), lastCol(buf, line))
		target = lineOffset(buf, line, col)
		next = next.WithWant(n - 1)
	case ParagraphForward:
		target, err = paragraphForward(env, cur.Offset, n)
	case ParagraphBackward:
		target, err = paragraphBackward(env, cur.Offset, n)
	case FileStart:
		line := 0
		if count > 0 {
			line = min(count-1, buf.LineCount()-1)
		}
		target = firstNonBlankOffset(buf, line)
	case FileEnd:
		line := buf.LineCount() - 1
		if count > 0 {
			line = min(count-1, line)
		}
		target = firstNonBlankOffset(buf, line)
	case ScreenTop, ScreenMiddle, ScreenBottom:
		target = firstNonBlankOffset(buf, screenLine(env, m.Kind, n))
	case FindForward, FindBackward, TillForward, TillBackward:
		if env.Find != nil {
			*env.Find = FindState{Kind: m.Kind, Char: m.Char}
		}
		target, err = findChar(env, cur.Offset, m.Kind, m.Char, n, false)
	case RepeatFind, RepeatFindReverse:
		if !env.Find.IsSet() {
			return Result{}, ErrFailed
		}
		kind := env.Find.Kind
		if m.Kind == RepeatFindReverse {
			kind = reverseFind(kind)
		}
		res.Inclusive, _ = kind.Classify()
		target, err = findChar(env, cur.Offset, kind, env.Find.Char, n, true)
	case MatchPair:
		if count > 0 {
			line := min((count*buf.LineCount()+99)/100, buf.LineCount()) - 1
			target = firstNonBlankOffset(buf, max(line, 0))
			res.Linewise, res.Inclusive = true, false
			break
		}
		target, err = matchPair(buf, cur.Offset)
	case SearchForward, SearchBackward:
		target, res.Message, err = searchPattern(env, cur.Offset, m.Pattern, m.Kind == SearchBackward, n)
	case SearchNext, SearchPrev:
		target, res.Message, err = searchNext(env, cur.Offset, m.Kind == SearchPrev, n)
	case WordUnderForward, WordUnderBackward:
		target, res.Message, err = searchWordUnder(env, cur.Offset, m.Kind == WordUnderBackward, n)
	case MarkExact, MarkLine:
		target, err = markOffset(env, m.Char)
		if err == nil && m.Kind == MarkLine {
			target = firstNonBlankOffset(buf, buf.LineAt(target))
		}
	default:
		return Result{}, ErrFailed
	}
	if err != nil {
		return Result{}, err
	}

	if m.Kind != Up && m.Kind != Down {
		next.Offset = target
	}
	res.Cursor = next
	res.Start, res.End = min(cur.Offset, target), max(cur.Offset, target)
	return res, nil
}

// repeat applies step n times, stopping early when the step cannot move
// or the environment is interrupted. It fails only if nothing moved.
func repeat(env *Env, off, n int, step func(int) int) (int, error) {
	cur := off
	for i := 0; i < n; i++ {
		if i > 0 && env.stopped() {
			break
		}
		next := step(cur)
		if next == cur {
			break
		}
		cur = next
	}
	if cur == off {
		return off, ErrFailed
	}
	return cur, nil
}

func left(buf *buffer.Buffer, off, n int) (int, error) {
	p := buf.Position(off)
	if p.Column == 0 {
		return off, ErrFailed
	}
	p.Column = max(0, p.Column-n)
	return buf.Offset(p), nil
}

func right(buf *buffer.Buffer, off, n int, pastEnd bool) (int, error) {
	p := buf.Position(off)
	limit := lastCol(buf, p.Line)
	if pastEnd {
		limit = buf.LineLen(p.Line)
	}
	if p.Column >= limit {
		return off, ErrFailed
	}
	p.Column = min(p.Column+n, limit)
	return buf.Offset(p), nil
}

// vertical moves the cursor delta lines keeping its desired display column.
func vertical(env *Env, cur cursor.Cursor, delta int) (cursor.Cursor, error) {
	buf := env.Buf
	p := buf.Position(cur.Offset)
	line := max(0, min(p.Line+delta, buf.LineCount()-1))
	if line == p.Line {
		return cur, ErrFailed
	}
	want := cur.Want
	if !cur.HasWant() {
		want = buf.VisualColumn(p)
	}
	col := buf.ColumnForVisual(line, want)
	if !env.PastEnd || want == cursor.WantEOL {
		col = min(col, lastCol(buf, line))
	}
	return cur.Keep(lineOffset(buf, line, col)).WithWant(want), nil
}

func lineStep(buf *buffer.Buffer, off, n int, up bool) (int, error) {
	line := buf.LineAt(off)
	switch {
	case up && line == 0, !up && line == buf.LineCount()-1:
		return off, ErrFailed
	case up:
		line = max(0, line-n)
	default:
		line = min(buf.LineCount()-1, line+n)
	}
	return firstNonBlankOffset(buf, line), nil
}

func lastNonBlank(buf *buffer.Buffer, line int) int {
	runes := []rune(buf.LineText(line))
	col := len(runes) - 1
	for col > 0 && (runes[col] == ' ' || runes[col] == '\t') {
		col--
	}
	return lineOffset(buf, line, max(col, 0))
}

func paragraphForward(env *Env, off, n int) (int, error) {
	buf := env.Buf
	last := buf.LineCount() - 1
	line := buf.LineAt(off)
	if line == last && off < buf.Len() {
		return buf.Len(), nil
	}
	target := off
	for i := 0; i < n && line < last; i++ {
		if i > 0 && env.stopped() {
			break
		}
		for line < last && buf.LineLen(line) == 0 {
			line++
		}
		for line < last && buf.LineLen(line) != 0 {
			line++
		}
		if buf.LineLen(line) == 0 {
			target = buf.LineStart(line)
		} else {
			target = buf.Len()
		}
	}
	if target == off {
		return off, ErrFailed
	}
	return target, nil
}

func paragraphBackward(env *Env, off, n int) (int, error) {
	buf := env.Buf
	line := buf.LineAt(off)
	target := off
	for i := 0; i < n && line > 0; i++ {
		if i > 0 && env.stopped() {
			break
		}
		for line > 0 && buf.LineLen(line) == 0 {
			line--
		}
		for line > 0 && buf.LineLen(line) != 0 {
			line--
		}
		target = buf.LineStart(line)
	}
	if target == off {
		return off, ErrFailed
	}
	return target, nil
}

func screenLine(env *Env, k Kind, n int) int {
	buf := env.Buf
	v := env.View
	bottom := min(v.Bottom, buf.LineCount()-1)
	top := min(v.Top, bottom)
	so := v.ScrollOff
	var line int
	switch k {
	case ScreenTop:
		line = top + n - 1
		if top > 0 {
			line = max(line, top+so)
		}
	case ScreenBottom:
		line = bottom - n + 1
		if bottom < buf.LineCount()-1 {
			line = min(line, bottom-so)
		}
	default:
		line = (top + bottom) / 2
	}
	return max(top, min(line, bottom))
}

func markOffset(env *Env, name rune) (int, error) {
	if env.Mark == nil {
		return 0, ErrFailed
	}
	off, err := env.Mark(name)
	if err != nil {
		return 0, err
	}
	return min(off, env.Buf.Len()), nil
}
