// Package ex parses command lines typed after ':'.
//
// Parse splits a line into a range, a command name, a bang and the
// remaining arguments:
//
//	:'<,'>s/foo/bar/g   range '<,'>   name "substitute"   args "/foo/bar/g"
//	:3                  range 3       name ""
//	:w! out.txt         name "w" (not built in)   bang   args "out.txt"
//
// Built-in names are expanded from their abbreviations (Lookup); any
// other name is returned as typed with Known unset so the caller can
// forward it. Ranges resolve to 0-based lines through a Context supplied
// by the caller, which owns the buffer, the marks and the last search.
//
// ParseSubstitute and Expand implement the argument and replacement
// syntax of :s, and ParseSet splits the arguments of :set.
package ex
