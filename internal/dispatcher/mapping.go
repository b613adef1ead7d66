package dispatcher

import (
	"fmt"
	"strings"

	"github.com/dshills/modalcore/internal/dispatcher/ex"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/keymap"
	"github.com/dshills/modalcore/internal/input/vim"
)

// mapKey applies user mappings in front of handleKey. A key that may
// still start a longer mapping is held until a later key, or FlushPending,
// decides.
func (d *Dispatcher) mapKey(ev key.Event) error {
	if d.keymap.Len() == 0 && len(d.mapBuf) == 0 {
		return d.handleKey(ev)
	}
	queue := append(d.mapBuf, ev)
	d.mapBuf = nil
	return d.drain(queue, true)
}

// FlushPending runs keys held back by an ambiguous mapping as if no more
// keys were coming. Hosts call it after their mapping timeout.
func (d *Dispatcher) FlushPending() Outcome {
	d.out = Outcome{}
	if len(d.mapBuf) > 0 {
		queue := d.mapBuf
		d.mapBuf = nil
		if err := d.drain(queue, false); err != nil {
			d.report(err)
		}
		d.settle()
		d.out.Redraw = true
	}
	out := d.out
	out.Mode = d.modes.Current()
	out.PendingEcho = d.pendingEcho()
	return out
}

// drain runs queue through the mappings of the current mode. With wait
// set, a queue that is a proper prefix of a mapping is kept for later.
func (d *Dispatcher) drain(queue []key.Event, wait bool) error {
	for len(queue) > 0 {
		scope, ok := keymap.ScopeFor(d.modes.Current())
		if !ok || d.awaitingChar() {
			ev := queue[0]
			queue = queue[1:]
			if err := d.handleKey(ev); err != nil {
				return err
			}
			continue
		}

		if _, more := d.keymap.Lookup(scope, queue); more && wait {
			d.mapBuf = queue
			return nil
		}
		b := d.keymap.Longest(scope, queue)
		if b == nil {
			ev := queue[0]
			queue = queue[1:]
			if err := d.handleKey(ev); err != nil {
				return err
			}
			continue
		}
		queue = queue[len(b.LHS):]
		d.logger.Debug("mapping", "scope", scope.String(), "lhs", key.Format(b.LHS))
		for _, ev := range b.RHS {
			if err := d.handleKey(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// awaitingChar reports whether the next key is an argument, such as the
// character after f or the register after ", which is never mapped.
func (d *Dispatcher) awaitingChar() bool {
	switch {
	case d.insert != nil && d.insert.awaitReg:
		return true
	case d.cmdline != nil:
		return true
	}
	st := d.parser.State()
	return st == vim.StateCharArg || st == vim.StateRegister
}

// ===========================================================================
// :map and friends
// ===========================================================================

type mapOp uint8

const (
	mapSet mapOp = iota
	mapDelete
	mapClear
)

var (
	nvo = []keymap.Scope{keymap.Normal, keymap.Visual, keymap.OperatorPending}

	mapCommands = map[string]struct {
		scopes []keymap.Scope
		op     mapOp
	}{
		"map":       {nvo, mapSet},
		"noremap":   {nvo, mapSet},
		"nmap":      {[]keymap.Scope{keymap.Normal}, mapSet},
		"nnoremap":  {[]keymap.Scope{keymap.Normal}, mapSet},
		"vmap":      {[]keymap.Scope{keymap.Visual}, mapSet},
		"vnoremap":  {[]keymap.Scope{keymap.Visual}, mapSet},
		"xmap":      {[]keymap.Scope{keymap.Visual}, mapSet},
		"xnoremap":  {[]keymap.Scope{keymap.Visual}, mapSet},
		"omap":      {[]keymap.Scope{keymap.OperatorPending}, mapSet},
		"onoremap":  {[]keymap.Scope{keymap.OperatorPending}, mapSet},
		"imap":      {[]keymap.Scope{keymap.Insert}, mapSet},
		"inoremap":  {[]keymap.Scope{keymap.Insert}, mapSet},
		"unmap":     {nvo, mapDelete},
		"nunmap":    {[]keymap.Scope{keymap.Normal}, mapDelete},
		"vunmap":    {[]keymap.Scope{keymap.Visual}, mapDelete},
		"xunmap":    {[]keymap.Scope{keymap.Visual}, mapDelete},
		"ounmap":    {[]keymap.Scope{keymap.OperatorPending}, mapDelete},
		"iunmap":    {[]keymap.Scope{keymap.Insert}, mapDelete},
		"mapclear":  {nvo, mapClear},
		"nmapclear": {[]keymap.Scope{keymap.Normal}, mapClear},
		"vmapclear": {[]keymap.Scope{keymap.Visual}, mapClear},
		"imapclear": {[]keymap.Scope{keymap.Insert}, mapClear},
	}
)

// mapCmd runs one of the mapping commands. Every mapping is
// non-recursive, so :map and :noremap are the same. A bang on the
// unprefixed commands selects Insert mode.
func (d *Dispatcher) mapCmd(cmd ex.Command) error {
	spec := mapCommands[cmd.Name]
	scopes := spec.scopes
	if cmd.Bang && (cmd.Name == "map" || cmd.Name == "noremap" || cmd.Name == "unmap" || cmd.Name == "mapclear") {
		scopes = []keymap.Scope{keymap.Insert}
	}

	args := strings.TrimSpace(cmd.Args)
	lhs, rhs, _ := strings.Cut(args, " ")
	rhs = strings.TrimSpace(rhs)

	switch spec.op {
	case mapClear:
		for _, s := range scopes {
			d.keymap.Clear(s)
		}
		return nil

	case mapDelete:
		if lhs == "" {
			return keymap.ErrEmptyLHS
		}
		deleted := false
		for _, s := range scopes {
			if d.keymap.Delete(s, lhs) == nil {
				deleted = true
			}
		}
		if !deleted {
			return keymap.ErrNotMapped
		}
		return nil
	}

	if rhs == "" {
		d.out.Message = d.listMappings(scopes, lhs)
		return nil
	}
	for _, s := range scopes {
		if err := d.keymap.Set(s, lhs, rhs); err != nil {
			return err
		}
	}
	return nil
}

// listMappings formats the mappings of scopes whose left-hand side
// starts with prefix.
func (d *Dispatcher) listMappings(scopes []keymap.Scope, prefix string) string {
	var out []string
	for _, s := range scopes {
		for _, b := range d.keymap.List(s) {
			if strings.HasPrefix(key.Format(b.LHS), prefix) {
				out = append(out, fmt.Sprintf("%c  %s", s.String()[0], b))
			}
		}
	}
	if len(out) == 0 {
		return "No mapping found"
	}
	return strings.Join(out, "\n")
}
