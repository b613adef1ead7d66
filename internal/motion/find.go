package motion

import "github.com/dshills/modalcore/internal/engine/buffer"

func reverseFind(k Kind) Kind {
	switch k {
	case FindForward:
		return FindBackward
	case FindBackward:
		return FindForward
	case TillForward:
		return TillBackward
	case TillBackward:
		return TillForward
	}
	return k
}

// findChar searches the current line for the n-th occurrence of ch. When
// repeating a till search the character right next to the cursor is
// skipped so that ; keeps making progress.
func findChar(env *Env, off int, k Kind, ch rune, n int, repeating bool) (int, error) {
	buf := env.Buf
	p := buf.Position(off)
	runes := []rune(buf.LineText(p.Line))
	forward := k == FindForward || k == TillForward
	till := k == TillForward || k == TillBackward

	step := 1
	if !forward {
		step = -1
	}
	i := p.Column + step
	if till && repeating {
		i += step
	}
	found := -1
	for ; i >= 0 && i < len(runes); i += step {
		if runes[i] != ch {
			continue
		}
		n--
		if n == 0 {
			found = i
			break
		}
		if env.stopped() {
			break
		}
	}
	if found < 0 {
		return off, &NoMatchError{What: "find", Pattern: string(ch)}
	}
	if till {
		found -= step
	}
	return lineOffset(buf, p.Line, found), nil
}

func bracketPair(b byte) (open, close byte, forward, ok bool) {
	switch b {
	case '(', ')':
		open, close = '(', ')'
	case '[', ']':
		open, close = '[', ']'
	case '{', '}':
		open, close = '{', '}'
	default:
		return 0, 0, false, false
	}
	return open, close, b == open, true
}

// matchPair implements % without a count: find the first bracket at or
// after the cursor on its line and jump to its partner.
func matchPair(buf *buffer.Buffer, off int) (int, error) {
	line := buf.LineAt(off)
	start := buf.LineStart(line)
	lineText := buf.LineText(line)

	from := -1
	for i := off - start; i < len(lineText); i++ {
		if _, _, _, ok := bracketPair(lineText[i]); ok {
			from = start + i
			break
		}
	}
	if from < 0 {
		return off, &NoMatchError{What: "match"}
	}

	open, close, forward, _ := bracketPair(lineText[from-start])
	if forward {
		if to := scanClose(buf, from+1, open, close, 1); to >= 0 {
			return to, nil
		}
	} else if to := scanOpen(buf, from-1, open, close, 1); to >= 0 {
		return to, nil
	}
	return off, &NoMatchError{What: "match"}
}

// scanClose returns the offset of the close that leaves depth open
// brackets closed, scanning forward from i a line at a time.
func scanClose(buf *buffer.Buffer, i int, open, close byte, depth int) int {
	if i < 0 {
		i = 0
	}
	if i >= buf.Len() {
		return -1
	}
	for line, n := buf.LineAt(i), buf.LineCount(); line < n; line++ {
		ls := buf.LineStart(line)
		text := buf.LineText(line)
		for j := max(i-ls, 0); j < len(text); j++ {
			switch text[j] {
			case open:
				depth++
			case close:
				depth--
				if depth == 0 {
					return ls + j
				}
			}
		}
	}
	return -1
}

// scanOpen is the backward mirror of scanClose.
func scanOpen(buf *buffer.Buffer, i int, open, close byte, depth int) int {
	if i < 0 {
		return -1
	}
	for line := buf.LineAt(i); line >= 0; line-- {
		ls := buf.LineStart(line)
		text := buf.LineText(line)
		for j := min(i-ls, len(text)-1); j >= 0; j-- {
			switch text[j] {
			case close:
				depth++
			case open:
				depth--
				if depth == 0 {
					return ls + j
				}
			}
		}
		i = ls - 1
	}
	return -1
}

// byteAt returns the byte at off, or 0 outside the buffer.
func byteAt(buf *buffer.Buffer, off int) byte {
	if s := buf.Slice(buffer.Range{Start: off, End: off + 1}); s != "" {
		return s[0]
	}
	return 0
}
