package ex

// Context supplies what address resolution needs. Lines are 0-based.
type Context interface {
	CurrentLine() int
	LastLine() int
	MarkLine(name rune) (int, error)

	// SearchLine returns the first line after (or before) from that
	// matches pattern, wrapping around. An empty pattern reuses the last
	// search.
	SearchLine(pattern string, backward bool, from int) (int, error)
}

// Resolve returns the 0-based first and last line of the range. An empty
// range is the current line. A backwards range is swapped.
func (r Range) Resolve(ctx Context) (first, last int, err error) {
	cur := ctx.CurrentLine()
	if len(r.Addrs) == 0 {
		return cur, cur, nil
	}
	lines := make([]int, len(r.Addrs))
	for i, a := range r.Addrs {
		lines[i], err = a.resolve(ctx, cur)
		if err != nil {
			return 0, 0, err
		}
		if lines[i] < -1 || lines[i] > ctx.LastLine() {
			return 0, 0, ErrInvalidRange
		}
		if r.Semicolon {
			cur = max(lines[i], 0)
		}
	}
	first, last = lines[0], lines[len(lines)-1]
	if first > last {
		first, last = last, first
	}
	// line 0 is accepted and means the first line
	return max(first, 0), max(last, 0), nil
}

func (a Address) resolve(ctx Context, cur int) (int, error) {
	var line int
	switch a.Kind {
	case AddrCurrent:
		line = cur
	case AddrLine:
		line = a.Line - 1
	case AddrLast:
		line = ctx.LastLine()
	case AddrMark:
		l, err := ctx.MarkLine(a.Mark)
		if err != nil {
			return 0, err
		}
		line = l
	case AddrSearch:
		l, err := ctx.SearchLine(a.Pattern, a.Backward, cur)
		if err != nil {
			return 0, err
		}
		line = l
	}
	return line + a.Offset, nil
}
