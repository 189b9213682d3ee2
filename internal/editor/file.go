package editor

import (
	"context"

	"github.com/PasinduAnjana/TextEditor/internal/engine/buffer"
	"github.com/PasinduAnjana/TextEditor/internal/language"
)

// NewFile replaces the document with an empty, untitled one.
func (s *State) NewFile() {
	s.load(func() {
		s.Change(buffer.Empty())
	})
	s.handle = ""
	s.name = UntitledName
	s.language = language.PlainText
	s.dirty = false
	s.compileResult = nil
	s.notify(ChangeDocument | ChangeLanguage)
}

// Open loads the document at handle. The language is detected from the
// file name. Loading does not create an undo step; the history of the
// previous document is discarded.
func (s *State) Open(ctx context.Context, handle string) error {
	text, err := s.provider.ReadAll(ctx, handle)
	if err != nil {
		return NewOperationError("open", handle, err)
	}

	s.load(func() {
		s.Change(buffer.New(text, buffer.Caret(0)))
	})
	s.handle = handle
	s.name = s.provider.Name(handle)
	s.language = language.Detect(s.name, s.registry)
	s.dirty = false
	s.compileResult = nil

	s.logger.Info("opened %s (%s, %d chars)", handle, s.language, s.buf.RuneLen())
	s.notify(ChangeDocument | ChangeLanguage)
	return nil
}

// load runs fn with history recording suppressed and the history cleared.
func (s *State) load(fn func()) {
	s.history.Clear()
	s.loading = true
	defer func() {
		s.loading = false
	}()
	fn()
}

// Save writes the document to its file. A document that was never saved
// returns ErrNoHandle; use SaveAs.
func (s *State) Save(ctx context.Context) error {
	if s.handle == "" {
		return NewOperationError("save", s.name, ErrNoHandle)
	}
	if err := s.provider.WriteAll(ctx, s.handle, s.buf.Text()); err != nil {
		return NewOperationError("save", s.handle, err)
	}
	s.dirty = false
	s.logger.Debug("saved %s", s.handle)
	s.notify(ChangeDocument)
	return nil
}

// SaveAs writes the document to handle and binds the document to it.
func (s *State) SaveAs(ctx context.Context, handle string) error {
	if err := s.provider.WriteAll(ctx, handle, s.buf.Text()); err != nil {
		return NewOperationError("save", handle, err)
	}
	s.handle = handle
	s.name = s.provider.Name(handle)
	s.dirty = false
	s.logger.Info("saved as %s", handle)
	s.notify(ChangeDocument)
	return nil
}

// SuggestedName returns the display name with the extension of the active
// language, for use as the default in a save dialog.
func (s *State) SuggestedName() string {
	return language.WithExtension(s.name, s.language)
}
