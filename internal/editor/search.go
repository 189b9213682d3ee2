package editor

import (
	"unicode"

	"github.com/PasinduAnjana/TextEditor/internal/engine/buffer"
)

// Search holds the find/replace parameters.
type Search struct {
	Query         string
	Replacement   string
	CaseSensitive bool
}

// SetSearch sets the find/replace parameters.
func (s *State) SetSearch(search Search) {
	s.search = search
}

// Search returns the find/replace parameters.
func (s *State) Search() Search {
	return s.search
}

// FindNext selects the next match of the query after the selection,
// wrapping around to the start of the text. It reports whether a match
// was found. The text is not changed.
func (s *State) FindNext() bool {
	if s.search.Query == "" {
		return false
	}

	text := []rune(s.buf.Text())
	query := []rune(s.search.Query)
	from := s.buf.Selection().End

	idx := indexRunes(text, query, from, s.search.CaseSensitive)
	if idx < 0 {
		idx = indexRunes(text, query, 0, s.search.CaseSensitive)
	}
	if idx < 0 {
		return false
	}

	s.SetSelection(buffer.Select(idx, idx+len(query)))
	return true
}

// ReplaceCurrent replaces a non-empty selection with the replacement and
// puts the caret after it. With an empty selection it finds the next match
// instead. It reports whether anything happened.
func (s *State) ReplaceCurrent() bool {
	sel := s.buf.Selection()
	if sel.IsEmpty() {
		return s.FindNext()
	}

	next, err := s.buf.Replace(sel.Range(), s.search.Replacement)
	if err != nil {
		return false
	}
	s.commit(next, "Replace")
	return true
}

// ReplaceAll replaces every match of the query and returns the number of
// replacements. All replacements form a single undo step.
func (s *State) ReplaceAll() int {
	if s.search.Query == "" {
		return 0
	}

	text := []rune(s.buf.Text())
	query := []rune(s.search.Query)
	repl := []rune(s.search.Replacement)

	out := make([]rune, 0, len(text))
	count := 0
	caret := s.buf.Caret()
	newCaret := caret
	for i := 0; i < len(text); {
		idx := indexRunes(text, query, i, s.search.CaseSensitive)
		if idx < 0 {
			out = append(out, text[i:]...)
			break
		}
		out = append(out, text[i:idx]...)
		out = append(out, repl...)
		if idx < caret {
			newCaret += len(repl) - len(query)
			if idx+len(query) > caret {
				newCaret = len(out)
			}
		}
		i = idx + len(query)
		count++
	}
	if count == 0 {
		return 0
	}

	s.commit(buffer.New(string(out), buffer.Caret(newCaret)), "Replace all")
	return count
}

// indexRunes returns the index of the first match of query in text at or
// after from, or -1.
func indexRunes(text, query []rune, from int, caseSensitive bool) int {
	if len(query) == 0 || from < 0 {
		return -1
	}
	for i := from; i+len(query) <= len(text); i++ {
		if matchAt(text, query, i, caseSensitive) {
			return i
		}
	}
	return -1
}

func matchAt(text, query []rune, at int, caseSensitive bool) bool {
	for j, q := range query {
		t := text[at+j]
		if t == q {
			continue
		}
		if caseSensitive || unicode.ToLower(t) != unicode.ToLower(q) {
			return false
		}
	}
	return true
}
