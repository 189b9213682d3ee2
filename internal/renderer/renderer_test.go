package renderer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/PasinduAnjana/TextEditor/internal/compile"
	"github.com/PasinduAnjana/TextEditor/internal/engine/buffer"
	"github.com/PasinduAnjana/TextEditor/internal/renderer/backend"
	"github.com/PasinduAnjana/TextEditor/internal/renderer/highlight"
)

func newScreen(t *testing.T, width, height int) *backend.Terminal {
	t.Helper()
	term := backend.NewSimulation(width, height)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(term.Shutdown)
	return term
}

func rowText(b backend.Backend, y int) string {
	width, _ := b.Size()
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, _ := b.Content(x, y)
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestRenderHighlight(t *testing.T) {
	term := newScreen(t, 30, 5)
	r := New(term, Dark())

	text := `val s = "x" // c`
	rules, _ := highlight.Builtin(highlight.Kotlin)
	r.Render(Frame{
		Text:      text,
		Selection: buffer.Caret(0),
		Runs:      highlight.Flatten(highlight.Highlight(text, rules)),
		Title:     "Main.kt",
		Language:  "kotlin",
	})

	if got := rowText(term, 0); got != text {
		t.Errorf("row 0 = %q, want %q", got, text)
	}

	theme := r.Theme()
	tests := []struct {
		x    int
		want tcell.Style
	}{
		{0, theme.Keyword},
		{3, theme.Text},
		{8, theme.String},
		{13, theme.Comment},
	}
	for _, tt := range tests {
		if _, got := term.Content(tt.x, 0); got != tt.want {
			t.Errorf("style at %d = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestRenderSelection(t *testing.T) {
	term := newScreen(t, 20, 4)
	r := New(term, Light())

	r.Render(Frame{Text: "abcdef", Selection: buffer.Select(1, 3)})

	_, selBg, _ := r.Theme().Selection.Decompose()
	for x := 0; x < 5; x++ {
		_, style := term.Content(x, 0)
		_, bg, _ := style.Decompose()
		want := x == 1 || x == 2
		if (bg == selBg) != want {
			t.Errorf("cell %d selected = %v, want %v", x, bg == selBg, want)
		}
	}
}

func TestRenderStatus(t *testing.T) {
	term := newScreen(t, 60, 4)
	r := New(term, Dark())

	r.Render(Frame{
		Text:     "hi",
		Title:    "Untitled.txt*",
		Language: "txt",
		Status:   "Chars: 2  Words: 1  Ln 1, Col 3",
		Notice:   "Saved",
	})

	status := rowText(term, 3)
	if !strings.HasPrefix(status, " Untitled.txt* [txt]  Chars: 2") {
		t.Errorf("status = %q", status)
	}
	if !strings.HasSuffix(status, "Saved") {
		t.Errorf("status = %q, want notice at the end", status)
	}
	if _, style := term.Content(40, 3); style != r.Theme().Status {
		t.Errorf("status fill style = %v", style)
	}
}

func TestRenderPrompt(t *testing.T) {
	term := newScreen(t, 30, 3)
	r := New(term, Dark())

	r.Render(Frame{Text: "x", Prompt: "Save as: a.py", Title: "t"})

	if got := rowText(term, 2); got != "Save as: a.py" {
		t.Errorf("prompt row = %q", got)
	}
}

func TestRenderVerticalScroll(t *testing.T) {
	term := newScreen(t, 20, 4)
	r := New(term, Dark())

	lines := make([]string, 10)
	for i := range lines {
		lines[i] = fmt.Sprintf("line%d", i)
	}
	text := strings.Join(lines, "\n")

	// Caret at the start of line 9; three text rows are visible.
	caret := strings.Index(text, "line9")
	r.Render(Frame{Text: text, Selection: buffer.Caret(caret)})

	if top, _ := r.Scroll(); top != 7 {
		t.Errorf("top = %d, want 7", top)
	}
	if got := rowText(term, 0); got != "line7" {
		t.Errorf("row 0 = %q, want line7", got)
	}
	if got := rowText(term, 2); got != "line9" {
		t.Errorf("row 2 = %q, want line9", got)
	}

	// Moving back up scrolls back.
	r.Render(Frame{Text: text, Selection: buffer.Caret(0)})
	if top, _ := r.Scroll(); top != 0 {
		t.Errorf("top = %d, want 0", top)
	}
}

func TestRenderHorizontalScroll(t *testing.T) {
	term := newScreen(t, 10, 3)
	r := New(term, Dark())

	text := "abcdefghijklmnopqrstuvwxyz"
	r.Render(Frame{Text: text, Selection: buffer.Caret(15)})

	_, left := r.Scroll()
	if left != 6 {
		t.Errorf("left = %d, want 6", left)
	}
	if got := rowText(term, 0); got != text[6:16] {
		t.Errorf("row 0 = %q, want %q", got, text[6:16])
	}
}

func TestRenderWidths(t *testing.T) {
	term := newScreen(t, 20, 3)
	r := New(term, Dark())

	r.Render(Frame{Text: "\tb\n世x"})

	if ch, _ := term.Content(4, 0); ch != 'b' {
		t.Errorf("after tab got %q at 4, want 'b'", ch)
	}
	if ch, _ := term.Content(2, 1); ch != 'x' {
		t.Errorf("after wide rune got %q at 2, want 'x'", ch)
	}
}

func TestRenderCompilePanel(t *testing.T) {
	term := newScreen(t, 40, 12)
	r := New(term, Dark())

	res := compile.Result{
		Errors: []compile.Diagnostic{{Line: 3, Column: 5, Message: "boom"}},
		Output: "COMPILE_ERROR\nmain.c:3:5: error: boom",
	}
	r.Render(Frame{Text: "int main", Result: &res})

	// 12 rows: 4 panel rows above the status line.
	if got := rowText(term, 7); !strings.HasPrefix(got, " Compile result") {
		t.Errorf("panel header = %q", got)
	}
	if got := rowText(term, 8); got != "3:5: boom" {
		t.Errorf("diagnostic row = %q", got)
	}
	if _, style := term.Content(0, 8); style != r.Theme().Error {
		t.Errorf("diagnostic style = %v", style)
	}
	if got := rowText(term, 9); got != "COMPILE_ERROR" {
		t.Errorf("output row = %q", got)
	}
	if got := rowText(term, 0); got != "int main" {
		t.Errorf("text row = %q", got)
	}
}

func TestPanelLines(t *testing.T) {
	if got := panelLines(Frame{}); got != nil {
		t.Errorf("panelLines(no result) = %v", got)
	}

	ok := compile.Result{Success: true, Output: "a\nb"}
	got := panelLines(Frame{Result: &ok})
	var texts []string
	for _, l := range got {
		texts = append(texts, l.text)
	}
	want := []string{" Compile result (Esc to dismiss)", "Compiled successfully", "a", "b"}
	if strings.Join(texts, "|") != strings.Join(want, "|") {
		t.Errorf("panelLines() = %q, want %q", texts, want)
	}

	failed := compile.Failure(compile.MsgNotSaved)
	got = panelLines(Frame{Result: &failed})
	if len(got) != 2 || got[1].text != compile.MsgNotSaved {
		t.Errorf("panelLines(failure) = %v", got)
	}
}

func TestCaretPosition(t *testing.T) {
	lines := []string{"ab", "世c", ""}
	tests := []struct {
		offset int
		want   screenPos
	}{
		{0, screenPos{0, 0}},
		{2, screenPos{0, 2}},
		{3, screenPos{1, 0}},
		{4, screenPos{1, 2}},
		{5, screenPos{1, 3}},
		{6, screenPos{2, 0}},
	}
	for _, tt := range tests {
		if got := caretPosition(lines, tt.offset); got != tt.want {
			t.Errorf("caretPosition(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
	}
}

func TestThemeByName(t *testing.T) {
	for _, name := range []string{"dark", "light"} {
		th, err := ThemeByName(name)
		if err != nil || th.Name != name {
			t.Errorf("ThemeByName(%q) = %q, %v", name, th.Name, err)
		}
	}
	if _, err := ThemeByName("neon"); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("ThemeByName(neon) error = %v", err)
	}

	th := Dark()
	if th.ClassStyle(highlight.ClassKeyword) != th.Keyword || th.ClassStyle(highlight.ClassNone) != th.Text {
		t.Error("ClassStyle mapping is wrong")
	}
}

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{'世', 2},
		{'\t', TabWidth},
		{'\x01', 0},
	}
	for _, tt := range tests {
		if got := RuneWidth(tt.r); got != tt.want {
			t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
	if got := StringWidth("a世"); got != 3 {
		t.Errorf("StringWidth() = %d, want 3", got)
	}
}
