// Package buffer provides the editable text value used by the editor engine.
//
// A Buffer is an immutable pair of text and selection. Every edit helper
// returns a new Buffer, which makes buffers safe to keep as history
// snapshots and to hand to the auto-insert transform as a "proposed" state.
//
// Basic usage:
//
//	buf := buffer.New("Hello, World!", buffer.Caret(7))
//
//	// Type some text at the caret
//	buf = buf.Insert("Beautiful ") // "Hello, Beautiful World!"
//
//	// Delete the rune before the caret
//	buf = buf.DeleteBackward()
//
// Position Types:
//
// All positions are rune offsets into the text, not byte offsets. A caret
// between the first and second character of "héllo" is at offset 1 and the
// caret after "é" is at offset 2. Point converts an offset to a line and
// column (also in runes).
//
// Invariant:
//
// For every Buffer, 0 <= Selection.Start <= Selection.End <= RuneLen().
// Constructors clamp out-of-range selections instead of failing.
package buffer
