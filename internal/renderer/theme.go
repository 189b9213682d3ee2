package renderer

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/PasinduAnjana/TextEditor/internal/renderer/highlight"
)

// ErrUnknownTheme indicates a theme name with no definition.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme maps every drawn element to a terminal style.
type Theme struct {
	Name string

	Text    tcell.Style
	Keyword tcell.Style
	String  tcell.Style
	Comment tcell.Style

	Selection tcell.Style
	Status    tcell.Style
	Notice    tcell.Style
	Prompt    tcell.Style

	PanelHeader tcell.Style
	Error       tcell.Style
	Success     tcell.Style
}

// Dark is the default theme.
func Dark() Theme {
	base := tcell.StyleDefault
	return Theme{
		Name:        "dark",
		Text:        base,
		Keyword:     base.Foreground(tcell.ColorAqua),
		String:      base.Foreground(tcell.NewHexColor(0x6A9955)),
		Comment:     base.Foreground(tcell.ColorGray).Italic(true),
		Selection:   base.Background(tcell.NewHexColor(0x264F78)),
		Status:      base.Background(tcell.NewHexColor(0x3C3C3C)).Foreground(tcell.ColorWhite),
		Notice:      base.Background(tcell.NewHexColor(0x3C3C3C)).Foreground(tcell.ColorYellow),
		Prompt:      base.Background(tcell.NewHexColor(0x252526)).Foreground(tcell.ColorWhite).Bold(true),
		PanelHeader: base.Background(tcell.NewHexColor(0x252526)).Foreground(tcell.ColorWhite).Bold(true),
		Error:       base.Foreground(tcell.NewHexColor(0xF48771)),
		Success:     base.Foreground(tcell.NewHexColor(0x89D185)),
	}
}

// Light is a theme for light terminal backgrounds.
func Light() Theme {
	base := tcell.StyleDefault
	return Theme{
		Name:        "light",
		Text:        base,
		Keyword:     base.Foreground(tcell.NewHexColor(0x0000FF)).Bold(true),
		String:      base.Foreground(tcell.NewHexColor(0x008000)),
		Comment:     base.Foreground(tcell.NewHexColor(0x808080)).Italic(true),
		Selection:   base.Background(tcell.NewHexColor(0xADD6FF)),
		Status:      base.Background(tcell.NewHexColor(0xDDDDDD)).Foreground(tcell.ColorBlack),
		Notice:      base.Background(tcell.NewHexColor(0xDDDDDD)).Foreground(tcell.NewHexColor(0xA31515)),
		Prompt:      base.Background(tcell.NewHexColor(0xF3F3F3)).Foreground(tcell.ColorBlack).Bold(true),
		PanelHeader: base.Background(tcell.NewHexColor(0xF3F3F3)).Foreground(tcell.ColorBlack).Bold(true),
		Error:       base.Foreground(tcell.NewHexColor(0xA31515)),
		Success:     base.Foreground(tcell.NewHexColor(0x008000)),
	}
}

// ThemeByName returns the named theme.
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "dark", "":
		return Dark(), nil
	case "light":
		return Light(), nil
	}
	return Theme{}, fmt.Errorf("%q: %w", name, ErrUnknownTheme)
}

// ClassStyle returns the style for a highlight class.
func (t Theme) ClassStyle(c highlight.Class) tcell.Style {
	switch c {
	case highlight.ClassKeyword:
		return t.Keyword
	case highlight.ClassString:
		return t.String
	case highlight.ClassComment:
		return t.Comment
	default:
		return t.Text
	}
}

// selected overlays the selection background on s.
func (t Theme) selected(s tcell.Style) tcell.Style {
	_, bg, _ := t.Selection.Decompose()
	return s.Background(bg)
}
