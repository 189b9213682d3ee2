package buffer

import "fmt"

// Point represents a line and column position.
// Both Line and Column are 0-indexed; Column is counted in runes.
type Point struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// OffsetToPoint converts a rune offset to line/column.
func (b Buffer) OffsetToPoint(offset Offset) Point {
	var p Point
	i := 0
	for _, r := range b.text {
		if i >= offset {
			break
		}
		if r == '\n' {
			p.Line++
			p.Column = 0
		} else {
			p.Column++
		}
		i++
	}
	return p
}

// PointToOffset converts line/column to a rune offset.
// Columns past the end of a line clamp to the line end; lines past the
// end of the text clamp to the text end.
func (b Buffer) PointToOffset(p Point) Offset {
	line, col, i := 0, 0, 0
	for _, r := range b.text {
		if line == p.Line && (col == p.Column || r == '\n') {
			return i
		}
		if r == '\n' {
			line++
			col = 0
		} else if line == p.Line {
			col++
		}
		i++
	}
	return i
}

// LineCount returns the number of lines in the buffer.
func (b Buffer) LineCount() int {
	n := 1
	for _, r := range b.text {
		if r == '\n' {
			n++
		}
	}
	return n
}

// CaretPoint returns the line/column of the caret.
func (b Buffer) CaretPoint() Point {
	return b.OffsetToPoint(b.sel.Start)
}

// MoveLeft collapses the selection and moves the caret one rune left.
func (b Buffer) MoveLeft() Buffer {
	if !b.sel.IsEmpty() {
		return b.WithSelection(Caret(b.sel.Start))
	}
	return b.WithSelection(Caret(b.sel.Start - 1))
}

// MoveRight collapses the selection and moves the caret one rune right.
func (b Buffer) MoveRight() Buffer {
	if !b.sel.IsEmpty() {
		return b.WithSelection(Caret(b.sel.End))
	}
	return b.WithSelection(Caret(b.sel.End + 1))
}

// MoveUp moves the caret to the same column on the previous line.
func (b Buffer) MoveUp() Buffer {
	p := b.CaretPoint()
	if p.Line == 0 {
		return b.WithSelection(Caret(0))
	}
	p.Line--
	return b.WithSelection(Caret(b.PointToOffset(p)))
}

// MoveDown moves the caret to the same column on the next line.
func (b Buffer) MoveDown() Buffer {
	p := b.CaretPoint()
	if p.Line >= b.LineCount()-1 {
		return b.WithSelection(Caret(b.RuneLen()))
	}
	p.Line++
	return b.WithSelection(Caret(b.PointToOffset(p)))
}

// LineStart moves the caret to the start of its line.
func (b Buffer) LineStart() Buffer {
	p := b.CaretPoint()
	p.Column = 0
	return b.WithSelection(Caret(b.PointToOffset(p)))
}

// LineEnd moves the caret to the end of its line.
func (b Buffer) LineEnd() Buffer {
	p := b.CaretPoint()
	p.Column = int(^uint(0) >> 1)
	return b.WithSelection(Caret(b.PointToOffset(p)))
}
