package ex

import "strings"

// SetOp is what a :set argument does to its option.
type SetOp uint8

const (
	SetOn     SetOp = iota // name (boolean) or name=value
	SetOff                 // noname
	SetToggle              // invname, name!
	SetQuery               // name?, or a number option without value
	SetAdd                 // name+=value
	SetSub                 // name-=value
	SetAll                 // all
)

// SetArg is one argument of :set.
type SetArg struct {
	Name  string
	Op    SetOp
	Value string

	// HasValue is set for name=value, name:value, += and -=.
	HasValue bool
}

// ParseSet splits the arguments of :set.
func ParseSet(args string) ([]SetArg, error) {
	var out []SetArg
	for _, field := range strings.Fields(args) {
		a, err := parseSetArg(field)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func parseSetArg(s string) (SetArg, error) {
	if s == "all" {
		return SetArg{Op: SetAll}, nil
	}
	if i := strings.IndexAny(s, "=:"); i >= 0 {
		a := SetArg{Name: s[:i], Value: s[i+1:], HasValue: true}
		if a.Name == "" {
			return a, ErrInvalidArgument
		}
		switch a.Name[len(a.Name)-1] {
		case '+':
			a.Name, a.Op = a.Name[:len(a.Name)-1], SetAdd
		case '-':
			a.Name, a.Op = a.Name[:len(a.Name)-1], SetSub
		}
		if a.Name == "" {
			return a, ErrInvalidArgument
		}
		return a, nil
	}

	switch {
	case strings.HasSuffix(s, "?"):
		return SetArg{Name: strings.TrimSuffix(s, "?"), Op: SetQuery}, nil
	case strings.HasSuffix(s, "!"):
		return SetArg{Name: strings.TrimSuffix(s, "!"), Op: SetToggle}, nil
	case strings.HasPrefix(s, "inv"):
		return SetArg{Name: s[3:], Op: SetToggle}, nil
	case strings.HasPrefix(s, "no"):
		return SetArg{Name: s[2:], Op: SetOff}, nil
	}
	return SetArg{Name: s}, nil
}
