// Package history provides undo/redo functionality for the editor.
//
// The history keeps whole-buffer snapshots rather than inverse operations.
// Before a user edit is applied, the caller records the buffer as it was:
//
//	h := history.NewHistory(1000) // Max 1000 undo entries
//
//	h.Record(current, "Type 'a'")
//	current = edited
//
//	// Undo/redo hand back the snapshot to restore
//	prev, err := h.Undo(current)
//	next, err := h.Redo(prev)
//
// # Replay suppression
//
// Restoring a snapshot usually flows back through the same change handler
// that records user edits. Wrap the restore in Replay so the handler can
// check Replaying and skip recording:
//
//	h.Replay(func() { state.setBuffer(prev) })
//
// A fresh Record clears the redo stack. Undo followed by Redo is an exact
// round trip as long as nothing is recorded in between.
package history
