package renderer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modalcore/internal/input/mode"
)

// Styles are the colors used by a Renderer.
type Styles struct {
	Text      tcell.Style
	Selection tcell.Style
	Filler    tcell.Style // the ~ past the end of a buffer
	Separator tcell.Style
	Status    tcell.Style
	Error     tcell.Style

	// Modes styles the mode indicator; modes without an entry use Status.
	Modes map[mode.Mode]tcell.Style
}

// DefaultStyles returns the built-in color scheme.
func DefaultStyles() Styles {
	base := tcell.StyleDefault
	indicator := func(bg, fg tcell.Color) tcell.Style {
		return base.Bold(true).Background(bg).Foreground(fg)
	}
	return Styles{
		Text:      base,
		Selection: base.Reverse(true),
		Filler:    base.Foreground(tcell.ColorBlue),
		Separator: base.Reverse(true),
		Status:    base,
		Error:     base.Foreground(tcell.ColorRed),
		Modes: map[mode.Mode]tcell.Style{
			mode.Insert:      indicator(tcell.ColorGreen, tcell.ColorBlack),
			mode.Replace:     indicator(tcell.ColorRed, tcell.ColorWhite),
			mode.Visual:      indicator(tcell.ColorPurple, tcell.ColorWhite),
			mode.VisualLine:  indicator(tcell.ColorPurple, tcell.ColorWhite),
			mode.VisualBlock: indicator(tcell.ColorPurple, tcell.ColorWhite),
		},
	}
}

func (s Styles) mode(m mode.Mode) tcell.Style {
	if st, ok := s.Modes[m]; ok {
		return st
	}
	return s.Status
}
