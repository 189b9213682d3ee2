// Package backend provides the terminal abstraction the renderer draws on
// and the application reads input from.
package backend

import "github.com/gdamore/tcell/v2"

// Backend is a character-cell screen with an event queue.
type Backend interface {
	// Init prepares the screen for drawing.
	Init() error
	// Shutdown restores the terminal. It unblocks PollEvent.
	Shutdown()
	// Size returns the width and height in cells.
	Size() (width, height int)
	// SetContent sets the rune and style of one cell.
	SetContent(x, y int, r rune, style tcell.Style)
	// Content returns the rune and style of one cell.
	Content(x, y int) (rune, tcell.Style)
	// Clear blanks the whole screen.
	Clear()
	// Show flushes pending changes to the terminal.
	Show()
	// ShowCursor places the cursor at x, y.
	ShowCursor(x, y int)
	// HideCursor hides the cursor.
	HideCursor()
	// PollEvent blocks until an event is available.
	PollEvent() Event
	// PostEvent queues an event. It is safe to call from any goroutine.
	PostEvent(ev Event) error
}

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventPaste
	// EventInterrupt carries Data posted by another goroutine.
	EventInterrupt
	// EventClosed is returned once the screen has been shut down.
	EventClosed
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int

	// PasteStart is true at the start of a bracketed paste and false at its end.
	PasteStart bool

	// Data is the payload of an interrupt event.
	Data any
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys. KeyCtrlA through KeyCtrlZ are
// consecutive.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// CtrlKey returns the Ctrl+letter key for a letter a-z or A-Z.
func CtrlKey(letter rune) (Key, bool) {
	switch {
	case letter >= 'a' && letter <= 'z':
		return KeyCtrlA + Key(letter-'a'), true
	case letter >= 'A' && letter <= 'Z':
		return KeyCtrlA + Key(letter-'A'), true
	}
	return KeyNone, false
}

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has returns true if the mask includes the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}
