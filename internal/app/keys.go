package app

import (
	"fmt"

	"github.com/PasinduAnjana/TextEditor/internal/engine/buffer"
	"github.com/PasinduAnjana/TextEditor/internal/renderer/backend"
)

// pageLines is the caret jump for PageUp and PageDown without a screen.
const pageLines = 10

// handleKey applies one key press.
func (app *Application) handleKey(ev backend.Event) error {
	if ev.Key != backend.KeyCtrlQ {
		app.quitArmed = false
	}
	app.notice = ""

	if app.prompt != nil {
		app.promptKey(ev)
		return nil
	}

	s := app.state
	switch ev.Key {
	case backend.KeyRune:
		if !ev.Mod.Has(backend.ModAlt) {
			s.Insert(string(ev.Rune))
		}
	case backend.KeyEnter:
		s.Insert("\n")
	case backend.KeyTab:
		s.Insert("\t")
	case backend.KeyBackspace:
		s.DeleteBackward()
	case backend.KeyDelete:
		s.DeleteForward()

	case backend.KeyLeft:
		app.move(buffer.Buffer.MoveLeft)
	case backend.KeyRight:
		app.move(buffer.Buffer.MoveRight)
	case backend.KeyUp:
		app.move(buffer.Buffer.MoveUp)
	case backend.KeyDown:
		app.move(buffer.Buffer.MoveDown)
	case backend.KeyHome:
		app.move(buffer.Buffer.LineStart)
	case backend.KeyEnd:
		app.move(buffer.Buffer.LineEnd)
	case backend.KeyPageUp:
		app.moveLines(buffer.Buffer.MoveUp)
	case backend.KeyPageDown:
		app.moveLines(buffer.Buffer.MoveDown)
	case backend.KeyCtrlA:
		s.SetSelection(buffer.Select(0, s.Buffer().RuneLen()))

	case backend.KeyEscape:
		app.escape()

	case backend.KeyCtrlZ:
		info, _ := s.History().PeekUndo()
		if s.Undo() {
			app.notice = "Undo: " + info.Description
		} else {
			app.notice = "Nothing to undo"
		}
	case backend.KeyCtrlY:
		info, _ := s.History().PeekRedo()
		if s.Redo() {
			app.notice = "Redo: " + info.Description
		} else {
			app.notice = "Nothing to redo"
		}

	case backend.KeyCtrlS:
		app.save()
	case backend.KeyCtrlO:
		app.openFile()
	case backend.KeyCtrlN:
		s.NewFile()
		app.saveHint = ""
		app.saver.Stop()
	case backend.KeyCtrlL:
		app.chooseLanguage()

	case backend.KeyCtrlF:
		app.find()
	case backend.KeyCtrlR:
		app.replace()
	case backend.KeyCtrlT:
		app.replaceAll()
	case backend.KeyCtrlE:
		app.toggleCase()

	case backend.KeyCtrlB:
		app.compile()

	case backend.KeyCtrlC:
		app.copySelection(false)
	case backend.KeyCtrlX:
		app.copySelection(true)
	case backend.KeyCtrlV:
		app.pasteClipboard()

	case backend.KeyCtrlQ:
		return app.quit()
	}
	return nil
}

func (app *Application) move(fn func(buffer.Buffer) buffer.Buffer) {
	app.state.Change(fn(app.state.Buffer()))
}

func (app *Application) moveLines(fn func(buffer.Buffer) buffer.Buffer) {
	n := pageLines
	if app.backend != nil && app.running.Load() {
		if _, h := app.backend.Size(); h > 2 {
			n = h - 2
		}
	}
	b := app.state.Buffer()
	for i := 0; i < n; i++ {
		b = fn(b)
	}
	app.state.Change(b)
}

// escape dismisses the compile panel, or collapses the selection.
func (app *Application) escape() {
	s := app.state
	if _, ok := s.CompileResult(); ok {
		s.DismissCompileResult()
		return
	}
	if sel := s.Buffer().Selection(); !sel.IsEmpty() {
		s.SetSelection(buffer.Caret(sel.End))
	}
}

func (app *Application) fail(err error) {
	app.logger.Warn("%v", err)
	app.notice = err.Error()
}

func (app *Application) save() {
	s := app.state
	if s.Handle() == "" {
		app.saveAs()
		return
	}
	if err := s.Save(app.ctx); err != nil {
		app.fail(err)
		return
	}
	app.saver.Stop()
	app.notice = "Saved"
}

func (app *Application) saveAs() {
	def := app.saveHint
	if def == "" {
		def = app.state.SuggestedName()
	}
	app.openPrompt("Save as: ", def, func(path string) error {
		if path == "" {
			return nil
		}
		if err := app.state.SaveAs(app.ctx, path); err != nil {
			return err
		}
		app.saveHint = ""
		app.notice = "Saved " + app.state.Name()
		return nil
	})
}

func (app *Application) openFile() {
	app.openPrompt("Open: ", "", func(path string) error {
		if path == "" {
			return nil
		}
		if err := app.state.Open(app.ctx, path); err != nil {
			return err
		}
		app.saveHint = ""
		app.saver.Stop()
		return nil
	})
}

func (app *Application) chooseLanguage() {
	app.openPrompt("Language: ", app.state.Language(), func(name string) error {
		if name == "" {
			return nil
		}
		return app.state.SetLanguage(name)
	})
}

// find runs FindNext, asking for a query first if none is set.
func (app *Application) find() {
	s := app.state
	if s.Search().Query == "" {
		app.openPrompt("Find: ", "", func(query string) error {
			search := s.Search()
			search.Query = query
			s.SetSearch(search)
			app.findNext()
			return nil
		})
		return
	}
	app.findNext()
}

func (app *Application) findNext() {
	q := app.state.Search().Query
	if q == "" {
		return
	}
	if !app.state.FindNext() {
		app.notice = fmt.Sprintf("Not found: %s", q)
	}
}

func (app *Application) replace() {
	s := app.state
	if s.Search().Query == "" {
		app.find()
		return
	}
	if !s.ReplaceCurrent() {
		app.notice = fmt.Sprintf("Not found: %s", s.Search().Query)
	}
}

func (app *Application) replaceAll() {
	s := app.state
	if s.Search().Query == "" {
		app.find()
		return
	}
	n := s.ReplaceAll()
	app.notice = fmt.Sprintf("Replaced %d", n)
}

func (app *Application) toggleCase() {
	search := app.state.Search()
	search.CaseSensitive = !search.CaseSensitive
	app.state.SetSearch(search)
	if search.CaseSensitive {
		app.notice = "Match case: on"
	} else {
		app.notice = "Match case: off"
	}
}

// compile starts a compile in the background. The result comes back to
// the loop as a compileDone interrupt.
func (app *Application) compile() {
	s := app.state
	if s.Compiling() {
		app.notice = "Compile already running"
		return
	}
	job, ok := s.StartCompile()
	if !ok {
		return
	}

	go func() {
		res := s.Run(app.ctx, job)
		if err := app.post(compileDone{result: res}); err != nil {
			app.logger.Debug("dropping compile result %s: %v", res.RequestID, err)
		}
	}()
}

func (app *Application) copySelection(cut bool) {
	text := app.state.Buffer().SelectedText()
	if text == "" {
		return
	}
	if err := app.clipboard.WriteText(text); err != nil {
		app.fail(err)
		return
	}
	if cut {
		app.state.DeleteBackward()
	}
}

func (app *Application) pasteClipboard() {
	text, err := app.clipboard.ReadText()
	if err != nil {
		app.fail(err)
		return
	}
	app.insertText(text)
}

// quit returns ErrQuit. Dirty saved documents are written first when
// auto-save is on; otherwise unsaved changes need a second Ctrl+Q.
func (app *Application) quit() error {
	s := app.state
	if !s.Dirty() {
		return ErrQuit
	}
	if s.Handle() != "" && app.saver.Enabled() {
		if err := s.Save(app.ctx); err != nil {
			app.fail(err)
			return nil
		}
		return ErrQuit
	}
	if !app.quitArmed {
		app.quitArmed = true
		app.notice = "Unsaved changes, press Ctrl+Q again to quit"
		return nil
	}
	return fmt.Errorf("%w: %w", ErrQuit, ErrUnsavedChanges)
}
