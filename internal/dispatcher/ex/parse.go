package ex

import (
	"strconv"
	"strings"
	"unicode"
)

// AddrKind says what an address refers to.
type AddrKind uint8

const (
	AddrCurrent AddrKind = iota // . or an offset alone
	AddrLine                    // {number}
	AddrLast                    // $
	AddrMark                    // 'x
	AddrSearch                  // /pat/ or ?pat?
)

// Address is one line specifier of a range.
type Address struct {
	Kind AddrKind

	// Line is the 1-based line number of AddrLine.
	Line int

	Mark     rune
	Pattern  string
	Backward bool

	// Offset is the sum of the trailing +N and -N.
	Offset int
}

// Range is the line range before a command name. It holds zero, one or
// two addresses; "%" parses as 1,$.
type Range struct {
	Addrs []Address

	// Semicolon makes the first address the current line for the second.
	Semicolon bool
}

// IsEmpty reports whether no address was given.
func (r Range) IsEmpty() bool {
	return len(r.Addrs) == 0
}

// Command is a parsed command line.
type Command struct {
	Range Range

	// Name is the full command name for built-in commands and the name as
	// typed otherwise. It is empty for a bare range such as ":42".
	Name  string
	Known bool

	Bang bool
	Args string

	// Line is the command line as typed, without the leading ':'.
	Line string
}

// Parse parses a command line. Unknown command names are not an error;
// the caller decides whether to forward them.
func Parse(line string) (Command, error) {
	line = strings.TrimLeft(line, " \t:")
	cmd := Command{Line: line}

	p := &scanner{s: line}
	r, err := p.parseRange()
	if err != nil {
		return cmd, err
	}
	cmd.Range = r
	p.skipSpace()

	switch {
	case p.done():
		return cmd, nil
	case p.peek() == '>' || p.peek() == '<':
		// :>> shifts twice; the repeats are left in Args
		cmd.Name, cmd.Known = string(p.peek()), true
		p.pos++
	case isNameChar(p.peek()):
		start := p.pos
		for !p.done() && isNameChar(p.peek()) {
			p.pos++
		}
		typed := line[start:p.pos]
		if name, ok := Lookup(typed); ok {
			cmd.Name, cmd.Known = name, true
		} else if len(typed) == 2 && typed[0] == 'k' {
			// :ka sets mark a
			cmd.Name, cmd.Known = "k", true
			p.pos = start + 1
		} else {
			cmd.Name = typed
		}
	default:
		// :!cmd, :&& and the like
		cmd.Name = string(p.peek())
		p.pos++
	}

	if !p.done() && p.peek() == '!' && cmd.Name != "!" {
		cmd.Bang = true
		p.pos++
	}
	cmd.Args = strings.TrimLeft(p.rest(), " \t")
	return cmd, nil
}

func isNameChar(c byte) bool {
	return c < 0x80 && unicode.IsLetter(rune(c))
}

type scanner struct {
	s   string
	pos int
}

func (p *scanner) done() bool { return p.pos >= len(p.s) }
func (p *scanner) peek() byte { return p.s[p.pos] }
func (p *scanner) rest() string {
	return p.s[p.pos:]
}

func (p *scanner) skipSpace() {
	for !p.done() && (p.peek() == ' ' || p.peek() == '\t') {
		p.pos++
	}
}

func (p *scanner) parseRange() (Range, error) {
	var r Range
	p.skipSpace()
	if !p.done() && p.peek() == '%' {
		p.pos++
		r.Addrs = []Address{{Kind: AddrLine, Line: 1}, {Kind: AddrLast}}
		return r, nil
	}
	for {
		a, ok, err := p.parseAddress()
		if err != nil {
			return r, err
		}
		p.skipSpace()
		if !p.done() && (p.peek() == ',' || p.peek() == ';') {
			if !ok {
				a = Address{Kind: AddrCurrent}
			}
			if p.peek() == ';' {
				r.Semicolon = true
			}
			p.pos++
			r.Addrs = append(r.Addrs, a)
			continue
		}
		if ok {
			r.Addrs = append(r.Addrs, a)
		} else if len(r.Addrs) > 0 {
			// "1," means "1,."
			r.Addrs = append(r.Addrs, Address{Kind: AddrCurrent})
		}
		break
	}
	if len(r.Addrs) > 2 {
		// only the last two count
		r.Addrs = r.Addrs[len(r.Addrs)-2:]
	}
	return r, nil
}

// parseAddress reads one address and its offsets. ok is false when there
// is none at the current position.
func (p *scanner) parseAddress() (Address, bool, error) {
	p.skipSpace()
	if p.done() {
		return Address{}, false, nil
	}
	var a Address
	ok := true
	switch c := p.peek(); {
	case c >= '0' && c <= '9':
		a.Kind, a.Line = AddrLine, p.number()
	case c == '.':
		a.Kind = AddrCurrent
		p.pos++
	case c == '$':
		a.Kind = AddrLast
		p.pos++
	case c == '\'':
		p.pos++
		if p.done() {
			return a, false, ErrInvalidAddress
		}
		a.Kind, a.Mark = AddrMark, rune(p.peek())
		p.pos++
	case c == '/' || c == '?':
		a.Kind, a.Backward = AddrSearch, c == '?'
		p.pos++
		a.Pattern = p.delimited(c)
	case c == '+' || c == '-':
		a.Kind = AddrCurrent
	default:
		ok = false
	}
	if !ok {
		return a, false, nil
	}

	for !p.done() && (p.peek() == '+' || p.peek() == '-') {
		sign := 1
		if p.peek() == '-' {
			sign = -1
		}
		p.pos++
		n := 1
		if !p.done() && p.peek() >= '0' && p.peek() <= '9' {
			n = p.number()
		}
		a.Offset += sign * n
	}
	return a, true, nil
}

func (p *scanner) number() int {
	start := p.pos
	for !p.done() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.s[start:p.pos])
	if err != nil {
		return 0
	}
	return n
}

// delimited reads up to an unescaped delim, consuming it. A backslash
// before delim is dropped.
func (p *scanner) delimited(delim byte) string {
	var b strings.Builder
	for !p.done() {
		c := p.peek()
		p.pos++
		switch {
		case c == delim:
			return b.String()
		case c == '\\' && !p.done() && p.peek() == delim:
			b.WriteByte(delim)
			p.pos++
		case c == '\\' && !p.done():
			b.WriteByte(c)
			b.WriteByte(p.peek())
			p.pos++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
