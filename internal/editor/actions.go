package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/PasinduAnjana/TextEditor/internal/compile"
	"github.com/PasinduAnjana/TextEditor/internal/language"
	"github.com/PasinduAnjana/TextEditor/internal/renderer/highlight"
)

// SetLanguage switches the active language and changes the extension of
// the display name to match it. The file on disk is not renamed.
func (s *State) SetLanguage(lang string) error {
	if lang != language.PlainText && !s.registry.Has(lang) {
		return NewOperationError("set-language", lang, ErrUnknownLanguage)
	}
	s.language = lang
	s.name = language.WithExtension(s.name, lang)
	s.notify(ChangeLanguage | ChangeDocument)
	return nil
}

// Languages returns the names selectable as the active language.
func (s *State) Languages() []string {
	return append([]string{language.PlainText}, s.registry.Names()...)
}

// AddLanguage imports a language definition file.
func (s *State) AddLanguage(ctx context.Context, filename string, data []byte) (string, error) {
	def, err := s.registry.Import(ctx, filename, data)
	if err != nil {
		return "", NewOperationError("add-language", filename, err)
	}
	s.notify(ChangeLanguages)
	return def.Name, nil
}

// RemoveLanguage removes a custom language. If it was active the document
// falls back to plain text.
func (s *State) RemoveLanguage(ctx context.Context, name string) error {
	if err := s.registry.Remove(ctx, name); err != nil {
		return NewOperationError("remove-language", name, err)
	}
	kinds := ChangeLanguages
	if s.language == name {
		s.language = language.PlainText
		kinds |= ChangeLanguage
	}
	s.notify(kinds)
	return nil
}

// Rules returns the rule set of the active language, or nil for plain text.
func (s *State) Rules() *highlight.RuleSet {
	rs, ok := s.registry.Get(s.language)
	if !ok {
		return nil
	}
	return rs
}

// Highlight returns the non-overlapping highlight runs of the current text.
func (s *State) Highlight() []highlight.Span {
	return highlight.Flatten(highlight.Highlight(s.buf.Text(), s.Rules()))
}

// Stats summarizes the document for a status line.
type Stats struct {
	Chars  int
	Words  int
	Lines  int
	Line   int // 1-based caret line
	Column int // 1-based caret column
}

// String formats the stats the way the status line shows them.
func (st Stats) String() string {
	return fmt.Sprintf("Chars: %d  Words: %d  Ln %d, Col %d", st.Chars, st.Words, st.Line, st.Column)
}

// Stats returns the character and word counts and the caret position.
func (s *State) Stats() Stats {
	p := s.buf.CaretPoint()
	return Stats{
		Chars:  s.buf.RuneLen(),
		Words:  len(strings.Fields(s.buf.Text())),
		Lines:  s.buf.LineCount(),
		Line:   p.Line + 1,
		Column: p.Column + 1,
	}
}

// CompileJob is a compile request taken from the state.
type CompileJob struct {
	Filename string
	Source   string
}

// StartCompile prepares a compile of the current document. It returns
// false when the document cannot be compiled yet; the failure is then
// already stored as the compile result.
func (s *State) StartCompile() (CompileJob, bool) {
	if s.handle == "" {
		s.ApplyCompileResult(compile.Failure(compile.MsgNotSaved))
		return CompileJob{}, false
	}
	s.compiling = true
	s.notify(ChangeCompile)
	return CompileJob{Filename: s.name, Source: s.buf.Text()}, true
}

// Run executes job with the state's compiler. It does not touch the state
// and may be called from any goroutine.
func (s *State) Run(ctx context.Context, job CompileJob) compile.Result {
	return s.compiler.Compile(ctx, job.Filename, job.Source)
}

// ApplyCompileResult stores the result of a finished compile.
func (s *State) ApplyCompileResult(res compile.Result) {
	s.compiling = false
	s.compileResult = &res
	s.notify(ChangeCompile)
}

// Compile runs a compile synchronously and stores its result.
func (s *State) Compile(ctx context.Context) compile.Result {
	job, ok := s.StartCompile()
	if !ok {
		return *s.compileResult
	}
	res := s.Run(ctx, job)
	s.ApplyCompileResult(res)
	return res
}

// Compiling reports whether a compile is in flight.
func (s *State) Compiling() bool {
	return s.compiling
}

// CompileResult returns the last compile result.
func (s *State) CompileResult() (compile.Result, bool) {
	if s.compileResult == nil {
		return compile.Result{}, false
	}
	return *s.compileResult, true
}

// DismissCompileResult clears the last compile result.
func (s *State) DismissCompileResult() {
	if s.compileResult == nil {
		return
	}
	s.compileResult = nil
	s.notify(ChangeCompile)
}
