// Package renderer paints an editor frame onto a terminal backend.
//
// A Frame is a snapshot of what to show: the text with its highlight runs
// and selection, a status line, an optional prompt, and an optional
// compile result panel. The Renderer keeps only the scroll position, which
// follows the caret.
package renderer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/PasinduAnjana/TextEditor/internal/compile"
	"github.com/PasinduAnjana/TextEditor/internal/engine/buffer"
	"github.com/PasinduAnjana/TextEditor/internal/renderer/backend"
	"github.com/PasinduAnjana/TextEditor/internal/renderer/highlight"
)

// Frame is everything drawn in one pass.
type Frame struct {
	Text      string
	Selection buffer.Selection
	// Runs are non-overlapping highlight runs sorted by Start.
	Runs []highlight.Span

	// Title names the document, Language the active language, and Status
	// carries the document stats.
	Title    string
	Language string
	Status   string
	// Notice is a transient message shown at the right of the status line.
	Notice string

	// Prompt, when non-empty, replaces the status line with an input
	// line; the cursor is placed at its end.
	Prompt string

	Compiling bool
	Result    *compile.Result
}

// Renderer draws frames.
type Renderer struct {
	backend backend.Backend
	theme   Theme

	// First visible line and first visible cell column.
	top  int
	left int
}

// New creates a renderer drawing on b.
func New(b backend.Backend, theme Theme) *Renderer {
	return &Renderer{backend: b, theme: theme}
}

// Theme returns the active theme.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// SetTheme replaces the theme.
func (r *Renderer) SetTheme(t Theme) {
	r.theme = t
}

// Scroll returns the first visible line and cell column.
func (r *Renderer) Scroll() (top, left int) {
	return r.top, r.left
}

// Render draws f and shows it.
func (r *Renderer) Render(f Frame) {
	width, height := r.backend.Size()
	r.backend.Clear()
	if width <= 0 || height <= 0 {
		r.backend.Show()
		return
	}

	panel := panelLines(f)
	panelHeight := 0
	if len(panel) > 0 {
		panelHeight = min(len(panel), max(height/3, 2))
		// Keep at least one text row and the status line.
		panelHeight = min(panelHeight, height-2)
		panelHeight = max(panelHeight, 0)
	}
	textRows := max(height-1-panelHeight, 0)

	cursorX, cursorY := r.drawText(f, width, textRows)
	r.drawPanel(panel[:panelHeight], textRows, width)

	statusY := height - 1
	if f.Prompt != "" {
		x := drawString(r.backend, 0, statusY, width, f.Prompt, r.theme.Prompt)
		fill(r.backend, x, statusY, width, r.theme.Prompt)
		r.backend.ShowCursor(min(x, width-1), statusY)
	} else {
		r.drawStatus(f, statusY, width)
		if cursorY >= 0 {
			r.backend.ShowCursor(cursorX, cursorY)
		} else {
			r.backend.HideCursor()
		}
	}

	r.backend.Show()
}

// drawText draws the visible lines and returns the screen position of the
// caret, or -1, -1 when there are no text rows.
func (r *Renderer) drawText(f Frame, width, rows int) (int, int) {
	if rows <= 0 {
		return -1, -1
	}

	lines := strings.Split(f.Text, "\n")
	caret := caretPosition(lines, f.Selection.End)
	r.follow(caret, width, rows)

	offset := 0
	for i := 0; i < r.top && i < len(lines); i++ {
		offset += utf8.RuneCountInString(lines[i]) + 1
	}

	run := 0
	for row := 0; row < rows && r.top+row < len(lines); row++ {
		line := lines[r.top+row]
		col := 0
		for _, ch := range line {
			for run < len(f.Runs) && f.Runs[run].End <= offset {
				run++
			}
			style := r.theme.Text
			if run < len(f.Runs) && f.Runs[run].Start <= offset {
				style = r.theme.ClassStyle(f.Runs[run].Class)
			}
			if offset >= f.Selection.Start && offset < f.Selection.End {
				style = r.theme.selected(style)
			}

			w := RuneWidth(ch)
			if x := col - r.left; x >= 0 && x < width {
				drawRune(r.backend, x, row, width, ch, style)
			}
			col += w
			offset++
		}
		// Selected line breaks show as one highlighted cell.
		if offset >= f.Selection.Start && offset < f.Selection.End {
			if x := col - r.left; x >= 0 && x < width {
				r.backend.SetContent(x, row, ' ', r.theme.Selection)
			}
		}
		offset++
	}

	return caret.col - r.left, caret.line - r.top
}

type screenPos struct {
	line int
	col  int // cell column
}

// caretPosition converts a rune offset to a line and cell column.
func caretPosition(lines []string, offset int) screenPos {
	for i, line := range lines {
		n := utf8.RuneCountInString(line)
		if offset <= n || i == len(lines)-1 {
			col := 0
			for _, ch := range line {
				if offset <= 0 {
					break
				}
				col += RuneWidth(ch)
				offset--
			}
			return screenPos{line: i, col: col}
		}
		offset -= n + 1
	}
	return screenPos{}
}

// follow scrolls so that p is visible.
func (r *Renderer) follow(p screenPos, width, rows int) {
	if p.line < r.top {
		r.top = p.line
	}
	if p.line >= r.top+rows {
		r.top = p.line - rows + 1
	}
	if p.col < r.left {
		r.left = p.col
	}
	if p.col >= r.left+width {
		r.left = p.col - width + 1
	}
}

func (r *Renderer) drawStatus(f Frame, y, width int) {
	left := fmt.Sprintf(" %s [%s]  %s", f.Title, f.Language, f.Status)
	if f.Compiling {
		left += "  Compiling..."
	}
	x := drawString(r.backend, 0, y, width, left, r.theme.Status)
	fill(r.backend, x, y, width, r.theme.Status)

	if f.Notice == "" {
		return
	}
	notice := f.Notice + " "
	nx := width - StringWidth(notice)
	if nx <= x {
		nx = x + 1
	}
	drawString(r.backend, nx, y, width, notice, r.theme.Notice)
}

type panelLine struct {
	text  string
	style func(Theme) tcell.Style
}

func headerStyle(t Theme) tcell.Style  { return t.PanelHeader }
func errorStyle(t Theme) tcell.Style   { return t.Error }
func successStyle(t Theme) tcell.Style { return t.Success }
func textStyle(t Theme) tcell.Style    { return t.Text }

// panelLines lists the compile panel content, header first.
func panelLines(f Frame) []panelLine {
	if f.Result == nil {
		return nil
	}
	res := f.Result

	lines := []panelLine{{text: " Compile result (Esc to dismiss)", style: headerStyle}}
	if res.Success {
		lines = append(lines, panelLine{text: "Compiled successfully", style: successStyle})
	}
	for _, d := range res.Errors {
		text := d.Message
		if d.Line > 0 {
			text = fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
		}
		lines = append(lines, panelLine{text: text, style: errorStyle})
	}
	if res.Output != "" {
		for _, l := range strings.Split(res.Output, "\n") {
			lines = append(lines, panelLine{text: l, style: textStyle})
		}
	}
	return lines
}

func (r *Renderer) drawPanel(lines []panelLine, y, width int) {
	for i, l := range lines {
		style := l.style(r.theme)
		x := drawString(r.backend, 0, y+i, width, l.text, style)
		if i == 0 {
			fill(r.backend, x, y+i, width, style)
		}
	}
}
