package app

import (
	"github.com/PasinduAnjana/TextEditor/internal/compile"
	"github.com/PasinduAnjana/TextEditor/internal/renderer/backend"
)

// Interrupt payloads posted to the loop by background work.
type (
	compileDone struct {
		result compile.Result
	}
	autosaveDue   struct{}
	configChanged struct{}
)

// handleEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		if app.pasting {
			app.pasteKey(ev)
			return nil
		}
		return app.handleKey(ev)
	case backend.EventPaste:
		app.handlePaste(ev)
	case backend.EventInterrupt:
		app.handleInterrupt(ev.Data)
	}
	return nil
}

// handlePaste collects a bracketed paste so it lands as one edit.
func (app *Application) handlePaste(ev backend.Event) {
	if ev.PasteStart {
		app.pasting = true
		app.pasteBuf = app.pasteBuf[:0]
		return
	}
	app.pasting = false
	text := string(app.pasteBuf)
	app.pasteBuf = app.pasteBuf[:0]
	app.insertText(text)
}

func (app *Application) pasteKey(ev backend.Event) {
	switch ev.Key {
	case backend.KeyRune:
		app.pasteBuf = append(app.pasteBuf, ev.Rune)
	case backend.KeyEnter:
		app.pasteBuf = append(app.pasteBuf, '\n')
	case backend.KeyTab:
		app.pasteBuf = append(app.pasteBuf, '\t')
	}
}

// insertText inserts text into the open prompt or the document.
func (app *Application) insertText(text string) {
	if text == "" {
		return
	}
	if app.prompt != nil {
		app.prompt.insert(text)
		return
	}
	app.state.Insert(text)
}

func (app *Application) handleInterrupt(data any) {
	switch d := data.(type) {
	case compileDone:
		app.state.ApplyCompileResult(d.result)
		if d.result.Success {
			app.notice = "Compiled successfully"
		} else {
			app.notice = "Compilation failed"
		}
	case autosaveDue:
		app.autosave()
	case configChanged:
		app.reloadConfig()
	}
}

// requestAutosave runs on the saver's timer goroutine and hands the save
// to the loop.
func (app *Application) requestAutosave() error {
	return app.post(autosaveDue{})
}

func (app *Application) autosave() {
	if app.state.Handle() == "" || !app.state.Dirty() {
		return
	}
	if err := app.state.Save(app.ctx); err != nil {
		app.fail(err)
		return
	}
	app.logger.Debug("auto-saved %s", app.state.Handle())
}

// startInputPolling reads backend events on a separate goroutine. The
// channel is closed when the backend shuts down.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		defer close(events)

		for {
			// PollEvent blocks; backend.Shutdown in Run unblocks it.
			ev := app.backend.PollEvent()
			if ev.Type == backend.EventClosed {
				return
			}

			select {
			case events <- ev:
			case <-app.done:
				return
			}
		}
	}()

	return events
}
