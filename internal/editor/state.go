// Package editor holds the state of one open document and the operations a
// front end performs on it.
//
// State is not safe for concurrent use. A front end owns it from a single
// event loop; work that blocks (compiling, saving from a timer) runs
// elsewhere and hands its result back to that loop.
//
// Every text change made through Change goes through the auto-insert
// transform and is recorded in the undo history, except while a history
// snapshot is being restored or a document is being loaded.
package editor

import (
	"context"
	"strings"

	"github.com/PasinduAnjana/TextEditor/internal/compile"
	"github.com/PasinduAnjana/TextEditor/internal/document"
	"github.com/PasinduAnjana/TextEditor/internal/engine/autoinsert"
	"github.com/PasinduAnjana/TextEditor/internal/engine/buffer"
	"github.com/PasinduAnjana/TextEditor/internal/engine/history"
	"github.com/PasinduAnjana/TextEditor/internal/language"
	"github.com/PasinduAnjana/TextEditor/internal/logging"
)

// UntitledName is the display name of a new document.
const UntitledName = "Untitled.txt"

// Compiler runs a compile of a named document.
type Compiler interface {
	Compile(ctx context.Context, filename, source string) compile.Result
}

// State is the editor state for one document.
type State struct {
	buf     buffer.Buffer
	history *history.History

	registry *language.Registry
	provider document.Provider
	compiler Compiler
	logger   *logging.Logger

	autoInsert bool
	loading    bool

	handle   string
	name     string
	language string
	dirty    bool

	search Search

	compiling     bool
	compileResult *compile.Result

	listeners map[int]func(ChangeKind)
	nextID    int
}

// Option configures a State.
type Option func(*State)

// WithRegistry sets the language registry.
func WithRegistry(r *language.Registry) Option {
	return func(s *State) {
		s.registry = r
	}
}

// WithProvider sets the document provider.
func WithProvider(p document.Provider) Option {
	return func(s *State) {
		s.provider = p
	}
}

// WithCompiler sets the compiler.
func WithCompiler(c Compiler) Option {
	return func(s *State) {
		s.compiler = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *State) {
		s.logger = l
	}
}

// WithHistoryLimit bounds the number of undo steps.
func WithHistoryLimit(n int) Option {
	return func(s *State) {
		s.history = history.NewHistory(n)
	}
}

// WithAutoInsert enables or disables bracket pairing and tab expansion.
func WithAutoInsert(enabled bool) Option {
	return func(s *State) {
		s.autoInsert = enabled
	}
}

// New creates the state for an untitled, empty document.
func New(opts ...Option) *State {
	s := &State{
		buf:        buffer.Empty(),
		history:    history.NewHistory(history.DefaultMaxEntries),
		autoInsert: true,
		name:       UntitledName,
		language:   language.PlainText,
		listeners:  make(map[int]func(ChangeKind)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = language.NewRegistry()
	}
	if s.provider == nil {
		s.provider = document.NewOSProvider()
	}
	if s.compiler == nil {
		s.compiler = compile.NewRunner(compile.DefaultConfig())
	}
	if s.logger == nil {
		s.logger = logging.Nop()
	}
	return s
}

// Buffer returns the current buffer.
func (s *State) Buffer() buffer.Buffer {
	return s.buf
}

// Text returns the current text.
func (s *State) Text() string {
	return s.buf.Text()
}

// Handle returns the file the document is bound to, or "" if unsaved.
func (s *State) Handle() string {
	return s.handle
}

// Name returns the display name of the document.
func (s *State) Name() string {
	return s.name
}

// Language returns the active language.
func (s *State) Language() string {
	return s.language
}

// Dirty reports whether the text changed since the last load or save.
func (s *State) Dirty() bool {
	return s.dirty
}

// Registry returns the language registry.
func (s *State) Registry() *language.Registry {
	return s.registry
}

// History returns the undo history.
func (s *State) History() *history.History {
	return s.history
}

// SetAutoInsert enables or disables bracket pairing and tab expansion.
func (s *State) SetAutoInsert(enabled bool) {
	s.autoInsert = enabled
}

// Loading reports whether a document load is being applied.
func (s *State) Loading() bool {
	return s.loading
}

// Change applies a buffer proposed by the front end, typically the current
// buffer with a keystroke applied.
//
// A proposal that changes the text is passed through the auto-insert
// transform and the previous buffer is recorded for undo. A proposal that
// only moves the selection is applied as is. While a history snapshot is
// being restored or a document is being loaded the proposal is applied
// without any processing.
func (s *State) Change(proposed buffer.Buffer) {
	if s.history.Replaying() || s.loading {
		s.setBuffer(proposed)
		return
	}

	prev := s.buf
	if proposed.Text() == prev.Text() {
		if proposed != prev {
			s.buf = proposed
			s.notify(ChangeSelection)
		}
		return
	}

	next := proposed
	if s.autoInsert {
		text, cursor := autoinsert.Apply(proposed.Text(), prev.Text(), proposed.Caret())
		if text != proposed.Text() || cursor != proposed.Caret() {
			next = buffer.New(text, buffer.Caret(cursor))
		}
	}

	if next.Text() == prev.Text() {
		// Skip-over of an existing closer only moves the caret.
		s.buf = next
		s.notify(ChangeSelection)
		return
	}

	s.record(prev, "Edit")
	s.buf = next
	s.dirty = true
	s.notify(ChangeText)
}

// Insert types or pastes text at the selection.
func (s *State) Insert(text string) {
	s.Change(s.buf.Insert(text))
}

// DeleteBackward deletes the selection or the rune before the caret.
func (s *State) DeleteBackward() {
	s.Change(s.buf.DeleteBackward())
}

// DeleteForward deletes the selection or the rune after the caret.
func (s *State) DeleteForward() {
	s.Change(s.buf.DeleteForward())
}

// SetSelection moves the selection without touching the text.
func (s *State) SetSelection(sel buffer.Selection) {
	s.Change(s.buf.WithSelection(sel))
}

// Undo restores the previous snapshot. It reports false when there is
// nothing to undo.
func (s *State) Undo() bool {
	prev, err := s.history.Undo(s.buf)
	if err != nil {
		return false
	}
	s.history.Replay(func() {
		s.Change(prev)
	})
	return true
}

// Redo re-applies the last undone snapshot. It reports false when there is
// nothing to redo.
func (s *State) Redo() bool {
	next, err := s.history.Redo(s.buf)
	if err != nil {
		return false
	}
	s.history.Replay(func() {
		s.Change(next)
	})
	return true
}

// CanUndo reports whether Undo would do anything.
func (s *State) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would do anything.
func (s *State) CanRedo() bool {
	return s.history.CanRedo()
}

// AddTab inserts four spaces at the start of the selection and places the
// caret after them.
func (s *State) AddTab() {
	start := s.buf.Selection().Start
	next, err := s.buf.Apply(buffer.NewInsert(start, strings.Repeat(" ", autoinsert.TabWidth)))
	if err != nil {
		return
	}
	s.commit(next, "Add tab")
}

// commit replaces the buffer with a programmatic edit, recording the
// current buffer for undo.
func (s *State) commit(next buffer.Buffer, description string) {
	if next.Text() == s.buf.Text() {
		s.Change(next)
		return
	}
	s.record(s.buf, description)
	s.buf = next
	s.dirty = true
	s.notify(ChangeText)
}

func (s *State) record(prev buffer.Buffer, description string) {
	s.history.Record(prev, description)
}

// setBuffer applies b without recording it.
func (s *State) setBuffer(b buffer.Buffer) {
	if b == s.buf {
		return
	}
	textChanged := b.Text() != s.buf.Text()
	s.buf = b
	if textChanged {
		s.dirty = true
		s.notify(ChangeText)
		return
	}
	s.notify(ChangeSelection)
}
