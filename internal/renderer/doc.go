// Package renderer draws a dispatcher session onto a tcell screen.
//
// The dispatcher renders nothing itself; a host calls Draw after every
// key whose Outcome asks for a redraw. Draw paints each window of the
// split layout, the Visual selection of the current window, and a status
// line on the last row showing the mode, messages and the command line
// being typed.
//
// Layout:
//
//	┌───────────────┬──────────────┐
//	│ window 1      │ window 2     │  rows 0..h-2: the layout, with a
//	│               │              │  separator column between vertical
//	├───────────────┴──────────────┤  splits
//	│ -- INSERT --          3,7    │  row h-1: status or command line
//	└──────────────────────────────┘
//
// The host must size the dispatcher one row shorter than the screen so
// the status line has its own row; Terminal.Size reports that size.
//
// Usage:
//
//	term, _ := renderer.NewTerminal()
//	_ = term.Init()
//	defer term.Shutdown()
//	r := renderer.New(term.Screen())
//	r.Draw(d, out)
package renderer
