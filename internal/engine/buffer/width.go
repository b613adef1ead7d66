package buffer

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// VisualColumn returns the display column of p: tabs advance to the next
// tab stop and wide characters occupy two cells.
func (b *Buffer) VisualColumn(p Position) int {
	return VisualColumn(b.LineText(p.Line), p.Column, b.TabWidth())
}

// ColumnForVisual returns the character column on line whose display span
// covers vcol, clamped to the line length.
func (b *Buffer) ColumnForVisual(line, vcol int) int {
	return ColumnForVisual(b.LineText(line), vcol, b.TabWidth())
}

// VisualColumn returns the display column reached after the first col
// characters of text.
func VisualColumn(text string, col, tabWidth int) int {
	vcol, runes := 0, 0
	g := uniseg.NewGraphemes(text)
	for runes < col && g.Next() {
		vcol += CellWidth(g.Str(), vcol, tabWidth)
		runes += len(g.Runes())
	}
	return vcol
}

// ColumnForVisual maps a display column back to a character column.
// Positions inside a wide character or tab map to the character itself.
func ColumnForVisual(text string, vcol, tabWidth int) int {
	cur, runes := 0, 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := CellWidth(g.Str(), cur, tabWidth)
		if cur+w > vcol {
			return runes
		}
		cur += w
		runes += len(g.Runes())
	}
	return runes
}

// DisplayWidth returns the cell width of text starting at column 0.
func DisplayWidth(text string, tabWidth int) int {
	return VisualColumn(text, len([]rune(text)), tabWidth)
}

func CellWidth(cluster string, vcol, tabWidth int) int {
	if cluster == "\t" {
		if tabWidth <= 0 {
			tabWidth = DefaultTabWidth
		}
		return tabWidth - vcol%tabWidth
	}
	w := runewidth.StringWidth(cluster)
	if w == 0 {
		w = uniseg.StringWidth(cluster)
	}
	return w
}
