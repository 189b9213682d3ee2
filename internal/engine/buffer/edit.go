package buffer

import (
	"fmt"
	"unicode/utf8"
)

// Edit represents a text edit operation.
// It specifies a range to replace and the new text.
type Edit struct {
	Range   Range  // The range to replace
	NewText string // The replacement text
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(offset Offset, text string) Edit {
	return Edit{
		Range:   Range{Start: offset, End: offset},
		NewText: text,
	}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(start, end Offset) Edit {
	return Edit{Range: NewRange(start, end)}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// Apply returns the buffer produced by applying e, with the caret placed
// after the new text.
func (b Buffer) Apply(e Edit) (Buffer, error) {
	n := b.RuneLen()
	if e.Range.Start < 0 || e.Range.End > n {
		return b, ErrOffsetOutOfRange
	}
	if e.Range.Start > e.Range.End {
		return b, ErrRangeInvalid
	}
	start := ByteIndex(b.text, e.Range.Start)
	end := ByteIndex(b.text, e.Range.End)
	text := b.text[:start] + e.NewText + b.text[end:]
	caret := e.Range.Start + utf8.RuneCountInString(e.NewText)
	return New(text, Caret(caret)), nil
}

// Insert replaces the selection with s and leaves the caret after it.
// This is what typing or pasting at the caret proposes.
func (b Buffer) Insert(s string) Buffer {
	out, _ := b.Apply(Edit{Range: b.sel.Range(), NewText: s})
	return out
}

// DeleteBackward deletes the selection, or the rune before the caret.
func (b Buffer) DeleteBackward() Buffer {
	r := b.sel.Range()
	if r.IsEmpty() {
		if r.Start == 0 {
			return b
		}
		r.Start--
	}
	out, _ := b.Apply(NewDelete(r.Start, r.End))
	return out
}

// DeleteForward deletes the selection, or the rune after the caret.
func (b Buffer) DeleteForward() Buffer {
	r := b.sel.Range()
	if r.IsEmpty() {
		if r.End >= b.RuneLen() {
			return b
		}
		r.End++
	}
	out, _ := b.Apply(NewDelete(r.Start, r.End))
	return out
}

// Replace replaces range r with s and leaves the caret after the new text.
func (b Buffer) Replace(r Range, s string) (Buffer, error) {
	return b.Apply(Edit{Range: r, NewText: s})
}
