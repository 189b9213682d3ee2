package buffer

import "fmt"

// Offset is a rune position in the buffer text.
type Offset = int

// Range represents a rune range in the buffer.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start Offset // Inclusive start position
	End   Offset // Exclusive end position
}

// NewRange creates a new Range, swapping the ends if they are reversed.
func NewRange(start, end Offset) Range {
	if end < start {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in runes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Selection is the selected region of a buffer. When Start == End the
// selection is a plain caret.
type Selection struct {
	Start Offset
	End   Offset
}

// Caret returns a collapsed selection at offset.
func Caret(offset Offset) Selection {
	return Selection{Start: offset, End: offset}
}

// Select returns a selection covering [start, end). Reversed ends are swapped.
func Select(start, end Offset) Selection {
	if end < start {
		start, end = end, start
	}
	return Selection{Start: start, End: end}
}

// IsEmpty returns true if the selection is just a caret.
func (s Selection) IsEmpty() bool {
	return s.Start == s.End
}

// Range returns the selection as a Range.
func (s Selection) Range() Range {
	return Range{Start: s.Start, End: s.End}
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("caret(%d)", s.Start)
	}
	return fmt.Sprintf("sel[%d:%d)", s.Start, s.End)
}

// clamp forces the selection into [0, n].
func (s Selection) clamp(n int) Selection {
	s.Start = clampOffset(s.Start, n)
	s.End = clampOffset(s.End, n)
	if s.End < s.Start {
		s.Start, s.End = s.End, s.Start
	}
	return s
}

func clampOffset(off, n int) int {
	if off < 0 {
		return 0
	}
	if off > n {
		return n
	}
	return off
}
