package renderer

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/PasinduAnjana/TextEditor/internal/renderer/backend"
)

// TabWidth is the number of cells a tab occupies on screen.
const TabWidth = 4

// RuneWidth returns the display width of a rune: 0 for control
// characters, 2 for wide (East Asian) characters, else 1. Tabs are
// measured separately.
func RuneWidth(r rune) int {
	if r == '\t' {
		return TabWidth
	}
	if r < 32 || r == 0x7F {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of s.
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}

// drawString draws s starting at column x and clips at maxX. It returns
// the column after the last drawn cell.
func drawString(b backend.Backend, x, y, maxX int, s string, style tcell.Style) int {
	for _, r := range s {
		x = drawRune(b, x, y, maxX, r, style)
		if x >= maxX {
			break
		}
	}
	return x
}

// drawRune draws one rune at column x and returns the next column. A wide
// rune that would straddle maxX is dropped; tabs expand to spaces.
func drawRune(b backend.Backend, x, y, maxX int, r rune, style tcell.Style) int {
	w := RuneWidth(r)
	switch {
	case r == '\t':
		for i := 0; i < w && x < maxX; i++ {
			b.SetContent(x, y, ' ', style)
			x++
		}
		return x
	case w == 0:
		return x
	case x+w > maxX:
		return maxX
	}
	b.SetContent(x, y, r, style)
	return x + w
}

// fill paints columns [x, maxX) of row y with spaces.
func fill(b backend.Backend, x, y, maxX int, style tcell.Style) {
	for ; x < maxX; x++ {
		b.SetContent(x, y, ' ', style)
	}
}
