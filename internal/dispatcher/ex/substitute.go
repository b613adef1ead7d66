package ex

import (
	"strconv"
	"strings"
	"unicode"
)

// Substitute is the argument of :s/pattern/replacement/flags count.
type Substitute struct {
	Pattern     string
	Replacement string

	// Repeat is set for a bare :s, which reuses the last pattern and
	// replacement.
	Repeat bool

	Global     bool // g
	IgnoreCase bool // i
	MatchCase  bool // I
	NoError    bool // e

	// Count, when positive, replaces the range with Count lines starting
	// at its last line.
	Count int
}

// ParseSubstitute parses the text after :s.
func ParseSubstitute(args string) (Substitute, error) {
	var s Substitute
	if args == "" {
		s.Repeat = true
		return s, nil
	}
	delim := args[0]
	if delim < 0x80 && (unicode.IsLetter(rune(delim)) || unicode.IsDigit(rune(delim))) || delim == '\\' || delim == '"' || delim == '|' {
		return s, ErrBadDelimiter
	}

	p := &scanner{s: args, pos: 1}
	s.Pattern = p.delimited(delim)
	s.Replacement = p.delimited(delim)

	for !p.done() {
		switch c := p.peek(); c {
		case 'g':
			s.Global = !s.Global
		case 'i':
			s.IgnoreCase = true
		case 'I':
			s.MatchCase = true
		case 'e':
			s.NoError = true
		case 'c', '&':
			// confirmation is the host's business; & keeps flags we do not keep
		case ' ', '\t':
		default:
			if c >= '0' && c <= '9' {
				s.Count = p.number()
				p.skipSpace()
				if !p.done() {
					return s, ErrTrailing
				}
				return s, nil
			}
			return s, ErrTrailing
		}
		p.pos++
	}
	return s, nil
}

// Expand builds the replacement text for one match. src is the searched
// text and match the submatch index pairs of the match. It understands
// & and \0 to \9 for submatches, \r and \n for a line break, \t, the case
// modifiers \u \l \U \L \E \e and backslash escapes.
func Expand(replacement, src string, match []int) string {
	var b strings.Builder
	caseMode := byte(0) // 'U' or 'L' until \E
	once := byte(0)     // 'u' or 'l' for the next character

	write := func(s string) {
		for _, r := range s {
			switch {
			case once == 'u':
				r = unicode.ToUpper(r)
			case once == 'l':
				r = unicode.ToLower(r)
			case caseMode == 'U':
				r = unicode.ToUpper(r)
			case caseMode == 'L':
				r = unicode.ToLower(r)
			}
			once = 0
			b.WriteRune(r)
		}
	}
	group := func(n int) string {
		if 2*n+1 >= len(match) || match[2*n] < 0 {
			return ""
		}
		return src[match[2*n]:match[2*n+1]]
	}

	for i := 0; i < len(replacement); i++ {
		c := replacement[i]
		if c == '&' {
			write(group(0))
			continue
		}
		if c != '\\' || i+1 == len(replacement) {
			write(string(c))
			continue
		}
		i++
		switch e := replacement[i]; {
		case e >= '0' && e <= '9':
			n, _ := strconv.Atoi(string(e))
			write(group(n))
		case e == 'r' || e == 'n':
			write("\n")
		case e == 't':
			write("\t")
		case e == 'u' || e == 'l':
			once = e
		case e == 'U' || e == 'L':
			caseMode = e
		case e == 'E' || e == 'e':
			caseMode = 0
		default:
			write(string(e))
		}
	}
	return b.String()
}
