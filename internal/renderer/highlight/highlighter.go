package highlight

import (
	"regexp"
	"sort"
	"unicode/utf8"
)

// Highlight returns the styled spans for text under rules.
//
// Spans are reported in application order: all keyword matches, then all
// string matches, then all comment matches. A later span overpaints any
// earlier span it overlaps (see Flatten); a keyword inside a string is
// therefore reported both as a keyword and as part of the string.
// Offsets are rune offsets. Highlight never modifies text and returns
// nil when rules is nil.
func Highlight(text string, rules *RuleSet) []Span {
	if rules == nil || text == "" {
		return nil
	}

	idx := newRuneIndex(text)
	spans := make([]Span, 0)

	spans = appendMatches(spans, idx, text, rules.keywordPattern, ClassKeyword)
	spans = appendMatches(spans, idx, text, rules.stringPattern, ClassString)
	spans = appendMatches(spans, idx, text, rules.commentPattern, ClassComment)

	return spans
}

// appendMatches appends one span per non-empty match of re.
func appendMatches(spans []Span, idx runeIndex, text string, re *regexp.Regexp, class Class) []Span {
	if re == nil {
		return spans
	}
	for _, m := range re.FindAllStringIndex(text, -1) {
		if m[1] <= m[0] {
			continue
		}
		spans = append(spans, Span{
			Start: idx.offset(m[0]),
			End:   idx.offset(m[1]),
			Class: class,
		})
	}
	return spans
}

// Flatten resolves overlapping spans into sorted, non-overlapping runs.
// For every position the class of the last span covering it wins.
// Adjacent runs of the same class are merged.
func Flatten(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}

	end := 0
	for _, s := range spans {
		if s.End > end {
			end = s.End
		}
	}

	// Paint classes position by position in application order.
	paint := make([]Class, end)
	for _, s := range spans {
		start := s.Start
		if start < 0 {
			start = 0
		}
		for i := start; i < s.End; i++ {
			paint[i] = s.Class
		}
	}

	runs := make([]Span, 0)
	for i := 0; i < end; {
		c := paint[i]
		j := i + 1
		for j < end && paint[j] == c {
			j++
		}
		if c != ClassNone {
			runs = append(runs, Span{Start: i, End: j, Class: c})
		}
		i = j
	}

	return runs
}

// ClassAt returns the class covering rune position pos in flattened runs.
func ClassAt(runs []Span, pos int) Class {
	i := sort.Search(len(runs), func(i int) bool {
		return runs[i].End > pos
	})
	if i < len(runs) && runs[i].Start <= pos {
		return runs[i].Class
	}
	return ClassNone
}

// runeIndex maps byte indexes of a string to rune offsets.
type runeIndex []int

func newRuneIndex(s string) runeIndex {
	idx := make(runeIndex, len(s)+1)
	n := 0
	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		for k := 0; k < size; k++ {
			idx[i+k] = n
		}
		i += size
		n++
	}
	idx[len(s)] = n
	return idx
}

func (r runeIndex) offset(byteIdx int) int {
	return r[byteIdx]
}
