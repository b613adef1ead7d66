// Package vim provides Vim-style input parsing for key sequences.
//
// This package implements the grammar for parsing Vim commands, including:
//   - Count prefixes: Numbers like "5" in "5j" (move down 5 lines)
//   - Registers: Register selection like `"a` in `"ayw` (yank to register a)
//   - Operators: Commands like d, c, y that require a motion or text object
//   - Motions: Cursor movements like w, e, b, j, k
//   - Text objects: Object selections like iw (inner word), a" (around quotes)
//   - Actions: Everything else, such as x, p, u, q, @ and <C-w>
//
// # Vim Grammar
//
// The grammar for Vim normal mode commands is:
//
//	[count]["register][count][operator][count][motion|text-object]
//	[count]["register][count][operator][operator]  (line-wise: dd, yy, cc)
//	[count][motion]
//	[count]["register][count][action][char]
//
// The register and the count may come in either order, and every count
// typed multiplies into one: "2d3w" and "6dw" are the same command.
//
// Examples:
//   - "5j": count=5, motion=j (move down 5 lines)
//   - "d3w": operator=d, count=3, motion=w (delete 3 words)
//   - "diw": operator=d, text-object=iw (delete inner word)
//   - `"ayw`: register=a, operator=y, motion=w (yank word to register a)
//   - "5dd": count=5, operator=d, line-wise (delete 5 lines)
//   - "gUU": operator=gU, line-wise
//
// In Visual mode (see Parser.SetVisual) operator keys apply to the
// selection immediately and i/a select text objects.
//
// Operators, motions, objects and actions are closed enumerations; the
// dispatcher switches over them exhaustively. The parser never touches
// the buffer. Searches (/ and ?) complete with an empty pattern, which
// the dispatcher reads from the command line.
//
// # Usage
//
//	parser := vim.NewParser()
//	result := parser.Parse(keyEvent)
//	switch result.Status {
//	case vim.StatusComplete:
//	    // Execute result.Command
//	case vim.StatusPending:
//	    // Wait for more input
//	case vim.StatusInvalid, vim.StatusCancelled:
//	    // The pending command was dropped
//	}
package vim
