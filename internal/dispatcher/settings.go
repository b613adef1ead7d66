package dispatcher

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/modalcore/internal/dispatcher/ex"
)

// Settings are the options :set can change.
type Settings struct {
	TabStop    int
	ShiftWidth int // 0 uses TabStop
	ExpandTab  bool
	AutoIndent bool
	IgnoreCase bool
	SmartCase  bool
	WrapScan   bool
	ScrollOff  int
	UndoLevels int
}

// DefaultSettings returns Vim's defaults.
func DefaultSettings() Settings {
	return Settings{
		TabStop:    8,
		ShiftWidth: 8,
		WrapScan:   true,
		UndoLevels: 1000,
	}
}

// shiftWidth returns the effective shift width.
func (s Settings) shiftWidth() int {
	if s.ShiftWidth <= 0 {
		return max(s.TabStop, 1)
	}
	return s.ShiftWidth
}

// option describes one :set option. Exactly one of b and n is set.
type option struct {
	name string
	abbr string
	b    func(*Settings) *bool
	n    func(*Settings) *int
	min  int
}

var options = []option{
	{name: "autoindent", abbr: "ai", b: func(s *Settings) *bool { return &s.AutoIndent }},
	{name: "expandtab", abbr: "et", b: func(s *Settings) *bool { return &s.ExpandTab }},
	{name: "ignorecase", abbr: "ic", b: func(s *Settings) *bool { return &s.IgnoreCase }},
	{name: "scrolloff", abbr: "so", n: func(s *Settings) *int { return &s.ScrollOff }},
	{name: "shiftwidth", abbr: "sw", n: func(s *Settings) *int { return &s.ShiftWidth }},
	{name: "smartcase", abbr: "scs", b: func(s *Settings) *bool { return &s.SmartCase }},
	{name: "tabstop", abbr: "ts", n: func(s *Settings) *int { return &s.TabStop }, min: 1},
	{name: "undolevels", abbr: "ul", n: func(s *Settings) *int { return &s.UndoLevels }, min: 1},
	{name: "wrapscan", abbr: "ws", b: func(s *Settings) *bool { return &s.WrapScan }},
}

func findOption(name string) (option, bool) {
	for _, o := range options {
		if o.name == name || o.abbr == name {
			return o, true
		}
	}
	return option{}, false
}

func (o option) format(s *Settings) string {
	if o.b != nil {
		if *o.b(s) {
			return "  " + o.name
		}
		return "no" + o.name
	}
	return fmt.Sprintf("  %s=%d", o.name, *o.n(s))
}

// apply runs the arguments of one :set command against s and returns
// the text of any queries.
func (s *Settings) apply(args []ex.SetArg) (string, error) {
	var shown []string
	for _, a := range args {
		if a.Op == ex.SetAll {
			for _, o := range options {
				shown = append(shown, o.format(s))
			}
			continue
		}
		o, ok := findOption(a.Name)
		if !ok && a.Op == ex.SetOff {
			// "number" and friends are not negations
			a.Op, a.Name = ex.SetOn, "no"+a.Name
			o, ok = findOption(a.Name)
		}
		if !ok {
			return "", fmt.Errorf("%w: %s", ex.ErrUnknownOption, a.Name)
		}
		if o.b != nil {
			p := o.b(s)
			switch {
			case a.HasValue:
				return "", fmt.Errorf("%w: %s", ex.ErrInvalidArgument, a.Name)
			case a.Op == ex.SetQuery:
				shown = append(shown, o.format(s))
			case a.Op == ex.SetOff:
				*p = false
			case a.Op == ex.SetToggle:
				*p = !*p
			default:
				*p = true
			}
			continue
		}

		p := o.n(s)
		if !a.HasValue {
			if a.Op == ex.SetOff || a.Op == ex.SetToggle {
				return "", fmt.Errorf("%w: %s", ex.ErrInvalidArgument, a.Name)
			}
			shown = append(shown, o.format(s))
			continue
		}
		v, err := strconv.Atoi(a.Value)
		if err != nil {
			return "", fmt.Errorf("%w: %s=%s", ErrNumberRequired, a.Name, a.Value)
		}
		switch a.Op {
		case ex.SetAdd:
			v = *p + v
		case ex.SetSub:
			v = *p - v
		}
		if v < o.min {
			return "", fmt.Errorf("%w: %s=%d", ErrPositive, a.Name, v)
		}
		*p = v
	}
	return strings.Join(shown, "\n"), nil
}
