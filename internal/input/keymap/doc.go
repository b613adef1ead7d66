// Package keymap holds user key mappings: a key sequence typed in one
// group of modes is replaced by another sequence before the command
// parser sees it.
//
// # Scopes
//
// A mapping belongs to one Scope. Normal covers Normal mode, Visual the
// three Visual modes, OperatorPending the motion after an operator and
// Insert both Insert and Replace. The command line is never mapped.
//
// # Leader
//
// "<Leader>" in a left-hand side stands for the leader key, a backslash
// unless SetLeader changes it. The leader is substituted when the mapping
// is added, so changing it later does not affect existing mappings.
//
// # Lookup
//
// Mappings are stored in a prefix tree per scope. Lookup reports both an
// exact match and whether a longer mapping could still match, which lets
// the caller wait for more keys:
//
//	m := keymap.New()
//	_ = m.Set(keymap.Normal, "<Leader>w", ":w<CR>")
//	b, more := m.Lookup(keymap.Normal, key.ParseSequence(`\`))
//	// b == nil, more == true
//
// Right-hand sides are never mapped again.
package keymap
