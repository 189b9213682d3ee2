// Package autoinsert implements the bracket-pairing edit transform applied to
// every typed character.
//
// The transform looks at a proposed buffer text (what the text would be
// after the keystroke) and the text before the keystroke, and decides
// whether to pair an opening delimiter, skip over an existing closer, or
// expand a tab into spaces.
package autoinsert

import (
	"strings"
	"unicode/utf8"
)

// TabWidth is the number of spaces a typed tab expands to.
const TabWidth = 4

var tabSpaces = strings.Repeat(" ", TabWidth)

// pairs maps opening delimiters to their closers.
var pairs = map[rune]rune{
	'(':  ')',
	'{':  '}',
	'[':  ']',
	'"':  '"',
	'\'': '\'',
}

// closers is the set of closing delimiters eligible for skip-over.
var closers = map[rune]bool{
	')':  true,
	'}':  true,
	']':  true,
	'"':  true,
	'\'': true,
}

// Apply transforms a single-character insertion.
//
// proposed is the text after the keystroke, previous the text before it,
// and cursor the caret position (rune offset) reported after the
// keystroke, so the typed character sits at cursor-1. Apply returns the
// text to commit and the caret position to use.
//
// Deletions, no-ops and anything that is not a single-rune insertion are
// returned unchanged.
func Apply(proposed, previous string, cursor int) (string, int) {
	pn := utf8.RuneCountInString(proposed)
	if pn <= utf8.RuneCountInString(previous) {
		return proposed, cursor
	}
	if pn-utf8.RuneCountInString(previous) != 1 || cursor < 1 || cursor > pn {
		return proposed, cursor
	}

	runes := []rune(proposed)
	typed := runes[cursor-1]

	var next rune
	hasNext := cursor < len(runes)
	if hasNext {
		next = runes[cursor]
	}

	// Skip-over is checked first so that a quote typed before an identical
	// quote moves past it instead of opening a new pair.
	if closers[typed] && hasNext && next == typed {
		return previous, cursor
	}

	if closer, ok := pairs[typed]; ok {
		out := make([]rune, 0, len(runes)+1)
		out = append(out, runes[:cursor]...)
		out = append(out, closer)
		out = append(out, runes[cursor:]...)
		return string(out), cursor
	}

	if typed == '\t' {
		at := cursor - 1
		var sb strings.Builder
		sb.Grow(len(proposed) + TabWidth)
		sb.WriteString(string(runes[:at]))
		sb.WriteString(tabSpaces)
		sb.WriteString(string(runes[cursor:]))
		return sb.String(), at + TabWidth
	}

	return proposed, cursor
}
