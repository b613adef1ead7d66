package motion

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// Pattern is a compiled search pattern.
type Pattern interface {
	// FindAll returns the [start, end) byte ranges of all non-overlapping
	// matches in text.
	FindAll(text string) [][]int
}

// Matcher compiles search patterns. Regular expression evaluation is
// delegated to it; direction, wrapping and case selection are handled
// here.
type Matcher interface {
	Compile(pattern string, ignoreCase bool) (Pattern, error)
}

// RegexpMatcher compiles RE2 patterns. The Vim word boundaries \< and \>
// are accepted and mean \b.
type RegexpMatcher struct{}

// Compile implements Matcher.
func (RegexpMatcher) Compile(pattern string, ignoreCase bool) (Pattern, error) {
	expr := translate(pattern)
	if ignoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile("(?m)" + expr)
	if err != nil {
		return nil, fmt.Errorf("E486: Invalid pattern %q: %w", pattern, err)
	}
	return regexpPattern{re}, nil
}

type regexpPattern struct{ re *regexp.Regexp }

func (p regexpPattern) FindAll(text string) [][]int {
	return p.re.FindAllStringIndex(text, -1)
}

// translate rewrites the Vim escapes RE2 does not know.
func translate(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '\\' || i+1 == len(pattern) {
			b.WriteByte(c)
			continue
		}
		i++
		switch pattern[i] {
		case '<', '>':
			b.WriteString(`\b`)
		default:
			b.WriteByte('\\')
			b.WriteByte(pattern[i])
		}
	}
	return b.String()
}

// caseFlags strips \c and \C from pattern and reports whether the search
// ignores case: \c forces it, \C forbids it, otherwise ignorecase applies
// unless smartcase is on and the pattern has an uppercase letter.
func caseFlags(pattern string, ignoreCase, smartCase bool) (string, bool) {
	var b strings.Builder
	forced := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '\\' && i+1 < len(pattern) {
			switch pattern[i+1] {
			case 'c':
				forced = 1
				i++
				continue
			case 'C':
				forced = -1
				i++
				continue
			}
			b.WriteByte(pattern[i])
			i++
			b.WriteByte(pattern[i])
			continue
		}
		b.WriteByte(pattern[i])
	}
	stripped := b.String()
	switch {
	case forced > 0:
		return stripped, true
	case forced < 0:
		return stripped, false
	case ignoreCase && smartCase && strings.IndexFunc(stripped, unicode.IsUpper) >= 0:
		return stripped, false
	default:
		return stripped, ignoreCase
	}
}

func searchPattern(env *Env, off int, pattern string, backward bool, n int) (int, string, error) {
	if pattern == "" {
		if !env.Search.IsSet() {
			return off, "", ErrNoPreviousPattern
		}
		pattern = env.Search.Pattern
	}
	if env.Search != nil {
		*env.Search = SearchState{Pattern: pattern, Backward: backward}
	}
	return search(env, off, pattern, backward, n, env.SmartCase)
}

func searchNext(env *Env, off int, reverse bool, n int) (int, string, error) {
	if !env.Search.IsSet() {
		return off, "", ErrNoPreviousPattern
	}
	backward := env.Search.Backward != reverse
	return search(env, off, env.Search.Pattern, backward, n, env.SmartCase)
}

func searchWordUnder(env *Env, off int, backward bool, n int) (int, string, error) {
	word, start, keyword := wordUnder(env, off)
	if word == "" {
		return off, "", &NoMatchError{What: "search", Pattern: ""}
	}
	pattern := regexp.QuoteMeta(word)
	if keyword {
		pattern = `\<` + pattern + `\>`
	}
	if env.Search != nil {
		*env.Search = SearchState{Pattern: pattern, Backward: backward}
	}
	// start from the beginning of the word so # skips the word itself
	return search(env, start, pattern, backward, n, false)
}

// wordUnder returns the keyword under or after the cursor on its line,
// falling back to the non-blank run.
func wordUnder(env *Env, off int) (word string, start int, keyword bool) {
	buf := env.Buf
	line := buf.LineAt(off)
	lineStart := buf.LineStart(line)
	runes := []rune(buf.LineText(line))
	col := buf.Position(off).Column

	for _, big := range []bool{false, true} {
		want := classWord
		if big {
			want = classPunct
		}
		i := col
		for i < len(runes) && charClass(runes[i], big) != want {
			i++
		}
		if i == len(runes) {
			continue
		}
		s := i
		for s > 0 && charClass(runes[s-1], big) == want {
			s--
		}
		e := i
		for e < len(runes) && charClass(runes[e], big) == want {
			e++
		}
		return string(runes[s:e]), lineStart + len(string(runes[:s])), !big
	}
	return "", off, false
}

// search finds the n-th match of pattern starting after (or before) off.
// Matches are looked for a line at a time outward from off, so a search
// costs what it skips rather than the size of the buffer.
func search(env *Env, off int, pattern string, backward bool, n int, smartCase bool) (int, string, error) {
	expr, ignore := caseFlags(pattern, env.IgnoreCase, smartCase)
	pat, err := env.matcher().Compile(expr, ignore)
	if err != nil {
		return off, "", err
	}
	find := lineScanner{buf: env.Buf, pat: pat}.next
	if spansLines(expr) {
		find = textScanner(env.Buf, pat)
	}

	var msg string
	pos := off
	for i := 0; i < n; i++ {
		if i > 0 && env.stopped() {
			break
		}
		next, wrapped, ok := find(pos, backward)
		if !ok {
			return off, "", &NoMatchError{What: "search", Pattern: pattern, Backward: backward}
		}
		if wrapped {
			if !env.WrapScan {
				return off, "", &NoMatchError{What: "search", Pattern: pattern, Backward: backward, NoWrap: true}
			}
			msg = "search hit BOTTOM, continuing at TOP"
			if backward {
				msg = "search hit TOP, continuing at BOTTOM"
			}
		}
		pos = next
	}
	return pos, msg, nil
}

// spansLines reports whether a pattern can match a newline explicitly.
// Such patterns are matched against the whole text.
func spansLines(expr string) bool {
	return strings.Contains(expr, `\n`) || strings.Contains(expr, "\n")
}

// lineScanner matches a pattern one line at a time.
type lineScanner struct {
	buf *buffer.Buffer
	pat Pattern
}

// next returns the start of the first match after pos, or the last one
// before it when backward is set, and whether the search wrapped around
// the buffer edge. The line holding pos is visited again last, so a
// single match is found from itself.
func (s lineScanner) next(pos int, backward bool) (int, bool, bool) {
	lines := s.buf.LineCount()
	from := s.buf.LineAt(pos)
	for i := 0; i <= lines; i++ {
		line := from + i
		if backward {
			line = from - i
		}
		wrapped := line < 0 || line >= lines
		line = (line%lines + lines) % lines

		ls := s.buf.LineStart(line)
		matches := s.pat.FindAll(s.buf.LineText(line))
		if backward {
			for j := len(matches) - 1; j >= 0; j-- {
				if at := ls + matches[j][0]; i > 0 || at < pos {
					return at, wrapped, true
				}
			}
			continue
		}
		for _, m := range matches {
			if at := ls + m[0]; i > 0 || at > pos {
				return at, wrapped, true
			}
		}
	}
	return pos, false, false
}

// textScanner matches a pattern against the whole text once and steps
// through the result.
func textScanner(buf *buffer.Buffer, pat Pattern) func(int, bool) (int, bool, bool) {
	matches := pat.FindAll(buf.Text())
	return func(pos int, backward bool) (int, bool, bool) {
		if len(matches) == 0 {
			return pos, false, false
		}
		if backward {
			// last match starting before pos
			idx := sort.Search(len(matches), func(j int) bool { return matches[j][0] >= pos }) - 1
			if idx < 0 {
				return matches[len(matches)-1][0], true, true
			}
			return matches[idx][0], false, true
		}
		// first match starting after pos
		idx := sort.Search(len(matches), func(j int) bool { return matches[j][0] > pos })
		if idx == len(matches) {
			return matches[0][0], true, true
		}
		return matches[idx][0], false, true
	}
}

// CompileRegexp compiles a Vim search pattern for callers that need
// submatches, such as :substitute. \c, \C and smartcase apply as they do
// for searches.
func CompileRegexp(pattern string, ignoreCase, smartCase bool) (*regexp.Regexp, error) {
	stripped, fold := caseFlags(pattern, ignoreCase, smartCase)
	expr := translate(stripped)
	if fold {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile("(?m)" + expr)
	if err != nil {
		return nil, fmt.Errorf("E486: Invalid pattern %q: %w", pattern, err)
	}
	return re, nil
}
