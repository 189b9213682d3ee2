package buffer

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// Buffer is the current editable text plus its selection.
// Buffer is an immutable, comparable value type.
type Buffer struct {
	text string
	sel  Selection
}

// Empty returns an empty buffer with the caret at 0.
func Empty() Buffer {
	return Buffer{}
}

// New creates a buffer holding text with the given selection.
// The selection is clamped so the buffer invariant always holds.
func New(text string, sel Selection) Buffer {
	return Buffer{
		text: text,
		sel:  sel.clamp(utf8.RuneCountInString(text)),
	}
}

// FromString creates a buffer holding text with the caret at the start.
func FromString(text string) Buffer {
	return Buffer{text: text}
}

// Text returns the full buffer content.
func (b Buffer) Text() string {
	return b.text
}

// Selection returns the current selection.
func (b Buffer) Selection() Selection {
	return b.sel
}

// Caret returns the position where typing occurs (the selection start).
func (b Buffer) Caret() Offset {
	return b.sel.Start
}

// RuneLen returns the length of the text in runes.
func (b Buffer) RuneLen() int {
	return utf8.RuneCountInString(b.text)
}

// IsEmpty returns true if the buffer holds no text.
func (b Buffer) IsEmpty() bool {
	return b.text == ""
}

// WithText returns a copy of b holding text, keeping the selection clamped.
func (b Buffer) WithText(text string) Buffer {
	return New(text, b.sel)
}

// WithSelection returns a copy of b with a new selection.
func (b Buffer) WithSelection(sel Selection) Buffer {
	return New(b.text, sel)
}

// Slice returns the text in range r.
func (b Buffer) Slice(r Range) (string, error) {
	n := b.RuneLen()
	if r.Start < 0 || r.End > n {
		return "", ErrOffsetOutOfRange
	}
	if r.Start > r.End {
		return "", ErrRangeInvalid
	}
	start := ByteIndex(b.text, r.Start)
	end := ByteIndex(b.text, r.End)
	return b.text[start:end], nil
}

// SelectedText returns the text covered by the selection.
func (b Buffer) SelectedText() string {
	s, _ := b.Slice(b.sel.Range())
	return s
}

// RuneAt returns the rune at offset, or false past the end of the text.
func (b Buffer) RuneAt(offset Offset) (rune, bool) {
	return RuneAt(b.text, offset)
}

// String implements fmt.Stringer for debugging.
func (b Buffer) String() string {
	var sb strings.Builder
	sb.WriteString(b.sel.String())
	sb.WriteByte(' ')
	if b.RuneLen() > 40 {
		sb.WriteString(b.text[:ByteIndex(b.text, 40)])
		sb.WriteString("...")
	} else {
		sb.WriteString(b.text)
	}
	return sb.String()
}

// ByteIndex converts a rune offset in s to a byte index.
// Offsets past the end map to len(s).
func ByteIndex(s string, offset Offset) int {
	if offset <= 0 {
		return 0
	}
	i := 0
	for idx := range s {
		if i == offset {
			return idx
		}
		i++
	}
	return len(s)
}

// RuneOffset converts a byte index in s to a rune offset.
func RuneOffset(s string, byteIdx int) Offset {
	if byteIdx <= 0 {
		return 0
	}
	if byteIdx >= len(s) {
		return utf8.RuneCountInString(s)
	}
	return utf8.RuneCountInString(s[:byteIdx])
}

// RuneAt returns the rune at rune offset in s, or false if out of range.
func RuneAt(s string, offset Offset) (rune, bool) {
	if offset < 0 {
		return 0, false
	}
	i := 0
	for _, r := range s {
		if i == offset {
			return r, true
		}
		i++
	}
	return 0, false
}
