package history

import (
	"errors"
	"sync"
	"time"

	"github.com/PasinduAnjana/TextEditor/internal/engine/buffer"
)

// Errors returned when a stack is empty.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is used when NewHistory is given a non-positive limit.
const DefaultMaxEntries = 1000

type entry struct {
	snapshot    buffer.Buffer
	description string
	at          time.Time
}

// OperationInfo describes the entry on top of a stack.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}

// History holds the undo and redo snapshot stacks of one buffer.
type History struct {
	mu sync.Mutex

	undo []entry
	redo []entry
	max  int

	// replaying is set while a restored snapshot is being applied.
	replaying bool
}

// NewHistory creates an empty history keeping at most maxEntries undo steps.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{max: maxEntries}
}

// Record pushes the buffer as it was before a user edit and forgets
// everything that could have been redone.
func (h *History) Record(current buffer.Buffer, description string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undo = append(h.undo, entry{snapshot: current, description: description, at: time.Now()})
	h.redo = nil
	h.trimLocked()
}

// Undo pops the newest snapshot and parks current on the redo stack.
// On an empty stack current is returned with ErrNothingToUndo.
func (h *History) Undo(current buffer.Buffer) (buffer.Buffer, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	prev, ok := move(&h.undo, &h.redo, current)
	if !ok {
		return current, ErrNothingToUndo
	}
	return prev, nil
}

// Redo is the mirror of Undo.
func (h *History) Redo(current buffer.Buffer) (buffer.Buffer, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	next, ok := move(&h.redo, &h.undo, current)
	if !ok {
		return current, ErrNothingToRedo
	}
	h.trimLocked()
	return next, nil
}

// move pops from src and pushes current onto dst under the popped
// entry's description.
func move(src, dst *[]entry, current buffer.Buffer) (buffer.Buffer, bool) {
	n := len(*src)
	if n == 0 {
		return current, false
	}
	top := (*src)[n-1]
	*src = (*src)[:n-1]
	*dst = append(*dst, entry{snapshot: current, description: top.description, at: time.Now()})
	return top.snapshot, true
}

// Replay runs fn with the replay flag set, so change handlers that consult
// Replaying do not record the restore itself.
func (h *History) Replay(fn func()) {
	h.setReplaying(true)
	defer h.setReplaying(false)
	fn()
}

func (h *History) setReplaying(v bool) {
	h.mu.Lock()
	h.replaying = v
	h.mu.Unlock()
}

// Replaying reports whether a Replay is in progress.
func (h *History) Replaying() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.replaying
}

func (h *History) CanUndo() bool { return h.UndoCount() > 0 }
func (h *History) CanRedo() bool { return h.RedoCount() > 0 }

// UndoCount returns the depth of the undo stack.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo)
}

// RedoCount returns the depth of the redo stack.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo)
}

// Clear empties both stacks.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo, h.redo = nil, nil
}

// PeekUndo describes what Undo would restore.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return peek(h.undo)
}

// PeekRedo describes what Redo would restore.
func (h *History) PeekRedo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return peek(h.redo)
}

func peek(stack []entry) (OperationInfo, bool) {
	if len(stack) == 0 {
		return OperationInfo{}, false
	}
	top := stack[len(stack)-1]
	return OperationInfo{Description: top.description, Timestamp: top.at}, true
}

// SetMaxEntries changes the undo limit, dropping the oldest entries when
// the stack is already deeper.
func (h *History) SetMaxEntries(n int) {
	if n <= 0 {
		n = DefaultMaxEntries
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.max = n
	h.trimLocked()
}

// MaxEntries returns the undo limit.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.max
}

func (h *History) trimLocked() {
	if over := len(h.undo) - h.max; over > 0 {
		h.undo = h.undo[over:]
	}
}
