package app

import (
	"strings"

	"github.com/PasinduAnjana/TextEditor/internal/renderer/backend"
)

// prompt is a one-line input shown in place of the status line.
type prompt struct {
	label  string
	input  []rune
	submit func(string) error
}

func (p *prompt) String() string {
	return p.label + string(p.input)
}

// insert appends text, flattening line breaks.
func (p *prompt) insert(text string) {
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(text)
	p.input = append(p.input, []rune(text)...)
}

func (app *Application) openPrompt(label, initial string, submit func(string) error) {
	app.prompt = &prompt{label: label, input: []rune(initial), submit: submit}
}

// promptKey edits the open prompt. Enter submits, Escape cancels.
func (app *Application) promptKey(ev backend.Event) {
	p := app.prompt
	switch ev.Key {
	case backend.KeyRune:
		p.input = append(p.input, ev.Rune)
	case backend.KeyBackspace:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}
	case backend.KeyCtrlV:
		app.pasteClipboard()
	case backend.KeyEscape:
		app.prompt = nil
	case backend.KeyEnter:
		app.prompt = nil
		if err := p.submit(strings.TrimSpace(string(p.input))); err != nil {
			app.fail(err)
		}
	}
}
