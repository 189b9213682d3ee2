// Package highlight provides regex-driven syntax highlighting.
//
// Highlighting is pattern matching, not tokenization: a RuleSet carries a
// keyword list and two regular expressions (string literals and comments),
// and Highlight reports every match as a styled Span. Spans may overlap;
// Flatten resolves them into non-overlapping runs where the span applied
// last wins.
package highlight

import "fmt"

// Class is the presentational class of a highlighted span.
type Class uint8

// Span classes, listed in application order.
const (
	ClassNone Class = iota
	ClassKeyword
	ClassString
	ClassComment
)

var classNames = [...]string{
	ClassNone:    "none",
	ClassKeyword: "keyword",
	ClassString:  "string",
	ClassComment: "comment",
}

// String returns the class name.
func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("class(%d)", c)
}

// Span is a styled rune range [Start, End) of the highlighted text.
type Span struct {
	Start int
	End   int
	Class Class
}

// Len returns the span length in runes.
func (s Span) Len() int {
	return s.End - s.Start
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("%s[%d:%d)", s.Class, s.Start, s.End)
}
