package ex

import "strings"

// commands maps every built-in command to the shortest accepted
// abbreviation. Order matters: the first full name an abbreviation is a
// prefix of wins, so ":d" is :delete and ":s" is :substitute.
var commands = []struct {
	name string
	min  int
}{
	{"delete", 1},
	{"yank", 1},
	{"substitute", 1},
	{"join", 1},
	{"undo", 1},
	{"redo", 3},
	{"split", 2},
	{"vsplit", 2},
	{"close", 3},
	{"only", 2},
	{"set", 2},
	{"marks", 5},
	{"mark", 2},
	{"delmarks", 4},
	{"k", 1},
	{"registers", 3},
	{"display", 2},
	{">", 1},
	{"<", 1},

	// Mappings
	{"map", 3},
	{"noremap", 2},
	{"nmap", 2},
	{"nnoremap", 2},
	{"vmap", 2},
	{"vnoremap", 2},
	{"xmap", 2},
	{"xnoremap", 2},
	{"omap", 2},
	{"onoremap", 3},
	{"imap", 2},
	{"inoremap", 3},
	{"unmap", 3},
	{"nunmap", 3},
	{"vunmap", 2},
	{"xunmap", 2},
	{"ounmap", 2},
	{"iunmap", 2},
	{"mapclear", 4},
	{"nmapclear", 5},
	{"vmapclear", 5},
	{"imapclear", 5},
}

// Lookup returns the full name of the built-in command abbreviated by
// name.
func Lookup(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, c := range commands {
		if c.name == name {
			return c.name, true
		}
	}
	for _, c := range commands {
		if len(name) >= c.min && strings.HasPrefix(c.name, name) {
			return c.name, true
		}
	}
	return "", false
}
