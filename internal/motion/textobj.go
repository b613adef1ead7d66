package motion

import (
	"strings"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/cursor"
)

// SelectObject resolves text object obj around offset. count selects more
// words or paragraphs, or an outer level of brackets. Result.Cursor is
// on the last selected character, which is where Visual mode puts the
// head of the selection.
func SelectObject(env *Env, off int, obj Object, count int) (Result, error) {
	n := max(count, 1)
	var (
		res Result
		err error
	)
	switch obj.Kind {
	case Word, BigWord:
		res, err = wordObject(env.Buf, off, obj, n)
	case DoubleQuote, SingleQuote, BackQuote:
		res, err = quoteObject(env.Buf, off, obj)
	case Paren, Brace, Bracket, Angle:
		res, err = bracketObject(env.Buf, off, obj, n)
	case Paragraph:
		res, err = paragraphObject(env, off, obj, n)
	case NoObject:
		err = ErrFailed
	default:
		err = ErrFailed
	}
	if err != nil {
		return Result{}, err
	}
	res.Object = true
	if res.Linewise {
		res.Cursor = cursor.New(res.End)
	} else {
		_, size := env.Buf.RuneBefore(res.End)
		res.Cursor = cursor.New(max(res.Start, res.End-size))
	}
	return res, nil
}

// runs splits a line into maximal runs of one character class and returns
// the rune index where each run starts, followed by len(runes).
func runs(runes []rune, big bool) []int {
	bounds := []int{0}
	for i := 1; i < len(runes); i++ {
		if charClass(runes[i], big) != charClass(runes[i-1], big) {
			bounds = append(bounds, i)
		}
	}
	return append(bounds, len(runes))
}

func wordObject(buf *buffer.Buffer, off int, obj Object, n int) (Result, error) {
	big := obj.Kind == BigWord
	p := buf.Position(off)
	runes := []rune(buf.LineText(p.Line))
	if len(runes) == 0 {
		return Result{}, ErrFailed
	}
	col := min(p.Column, len(runes)-1)
	b := runs(runes, big)
	nruns := len(b) - 1
	blank := func(i int) bool { return charClass(runes[b[i]], big) == classBlank }

	r := 0
	for b[r+1] <= col {
		r++
	}

	first, last := r, r
	switch {
	case obj.Inner:
		last = min(r+n-1, nruns-1)
	case blank(r):
		// the white space and the n words after it
		last = min(r+2*n-1, nruns-1)
	default:
		last = min(r+2*n-2, nruns-1)
		if last+1 < nruns && blank(last+1) {
			last++
		} else if first > 0 && blank(first-1) {
			first--
		}
	}

	lineStart := buf.LineStart(p.Line)
	return Result{
		Start: lineStart + len(string(runes[:b[first]])),
		End:   lineStart + len(string(runes[:b[last+1]])),
	}, nil
}

// quoteObject finds the quoted string on the cursor line that contains
// the cursor, or the first one after it.
func quoteObject(buf *buffer.Buffer, off int, obj Object) (Result, error) {
	q, _ := obj.Kind.pair()
	line := buf.LineAt(off)
	lineStart := buf.LineStart(line)
	text := buf.LineText(line)
	col := off - lineStart

	var quotes []int
	for i := 0; i < len(text); i++ {
		if text[i] == '\\' {
			i++
			continue
		}
		if text[i] == q {
			quotes = append(quotes, i)
		}
	}

	open, close := -1, -1
	before := 0
	for before < len(quotes) && quotes[before] < col {
		before++
	}
	switch {
	case before < len(quotes) && quotes[before] == col:
		// on a quote: odd ones close a string
		if before%2 == 0 && before+1 < len(quotes) {
			open, close = quotes[before], quotes[before+1]
		} else if before%2 == 1 {
			open, close = quotes[before-1], quotes[before]
		}
	case before%2 == 1 && before < len(quotes):
		open, close = quotes[before-1], quotes[before]
	case before%2 == 0 && before+1 < len(quotes):
		open, close = quotes[before], quotes[before+1]
	}
	if open < 0 {
		return Result{}, &NoMatchError{What: "object", Pattern: obj.String()}
	}

	start, end := open+1, close
	if !obj.Inner {
		start, end = open, close+1
		trail := end
		for trail < len(text) && (text[trail] == ' ' || text[trail] == '\t') {
			trail++
		}
		if trail > end {
			end = trail
		} else {
			for start > 0 && (text[start-1] == ' ' || text[start-1] == '\t') {
				start--
			}
		}
	}
	return Result{Start: lineStart + start, End: lineStart + end}, nil
}

// bracketObject finds the n-th enclosing bracket pair around off.
func bracketObject(buf *buffer.Buffer, off int, obj Object, n int) (Result, error) {
	openB, closeB := obj.Kind.pair()
	fail := &NoMatchError{What: "object", Pattern: obj.String()}

	// on an opening bracket it is the innermost pair itself
	open := off
	if byteAt(buf, off) != openB {
		open = scanOpen(buf, off-1, openB, closeB, 1)
	}
	for i := 1; i < n && open >= 0; i++ {
		open = scanOpen(buf, open-1, openB, closeB, 1)
	}
	if open < 0 {
		return Result{}, fail
	}
	close := scanClose(buf, open+1, openB, closeB, 1)
	if close < 0 {
		return Result{}, fail
	}

	if !obj.Inner {
		return Result{Start: open, End: close + 1}, nil
	}
	start, end := open+1, close
	if start < end && byteAt(buf, start) == '\n' {
		start++
	}
	// a closing bracket alone on its line: stop before its indentation
	if ls := buf.LineStart(buf.LineAt(close)); ls > start && strings.TrimLeft(buf.Slice(buffer.Range{Start: ls, End: close}), " \t") == "" {
		end = ls
	}
	if end < start {
		end = start
	}
	return Result{Start: start, End: end}, nil
}

// paragraphObject selects runs of blank or non-blank lines (ip, ap).
func paragraphObject(env *Env, off int, obj Object, n int) (Result, error) {
	buf := env.Buf
	last := buf.LineCount() - 1
	line := buf.LineAt(off)
	blank := buf.IsBlankLine

	runEnd := func(l int) int {
		b := blank(l)
		for l < last && blank(l+1) == b {
			l++
		}
		return l
	}
	first := line
	for first > 0 && blank(first-1) == blank(line) {
		first--
	}

	end := runEnd(line)
	if obj.Inner {
		for i := 1; i < n && end < last; i++ {
			end = runEnd(end + 1)
		}
	} else {
		// each count is a paragraph plus the blank lines next to it
		for i := 0; i < n; i++ {
			if i > 0 && end < last {
				end = runEnd(end + 1)
			}
			switch {
			case end < last:
				end = runEnd(end + 1)
			case i == 0 && !blank(line):
				for first > 0 && blank(first-1) {
					first--
				}
			}
		}
	}
	return Result{
		Start:    buf.LineStart(first),
		End:      buf.LineStart(end),
		Linewise: true,
	}, nil
}
