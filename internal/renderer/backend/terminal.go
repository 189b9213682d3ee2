package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal implements Backend using tcell.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex

	// Simulation size, applied on Init.
	simWidth, simHeight int
}

// NewTerminal creates a backend for the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewSimulation creates a backend over an in-memory screen of the given
// size.
func NewSimulation(width, height int) *Terminal {
	return &Terminal{
		screen:    tcell.NewSimulationScreen("UTF-8"),
		simWidth:  width,
		simHeight: height,
	}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	if sim, ok := t.screen.(tcell.SimulationScreen); ok && t.simWidth > 0 {
		sim.SetSize(t.simWidth, t.simHeight)
	}

	t.screen.EnablePaste()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetContent(x, y int, r rune, style tcell.Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, r, nil, style)
}

func (t *Terminal) Content(x, y int) (rune, tcell.Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, _, style, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return mainc, style
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

// PollEvent is not locked: it blocks, and Shutdown must be able to
// unblock it.
func (t *Terminal) PollEvent() Event {
	return convertEvent(t.screen.PollEvent())
}

func (t *Terminal) PostEvent(ev Event) error {
	switch ev.Type {
	case EventKey:
		return t.screen.PostEvent(tcell.NewEventKey(convertToTcellKey(ev.Key), ev.Rune, convertToTcellMod(ev.Mod)))
	case EventInterrupt:
		return t.screen.PostEvent(tcell.NewEventInterrupt(ev.Data))
	case EventPaste:
		return t.screen.PostEvent(tcell.NewEventPaste(ev.PasteStart))
	}
	return nil
}

// convertEvent converts a tcell event. A nil event means the screen was
// finalized.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case nil:
		return Event{Type: EventClosed}

	case *tcell.EventKey:
		k, r := convertKey(e.Key(), e.Rune(), e.Modifiers())
		return Event{
			Type: EventKey,
			Key:  k,
			Rune: r,
			Mod:  convertMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{
			Type:   EventResize,
			Width:  w,
			Height: h,
		}

	case *tcell.EventPaste:
		return Event{
			Type:       EventPaste,
			PasteStart: e.Start(),
		}

	case *tcell.EventInterrupt:
		return Event{
			Type: EventInterrupt,
			Data: e.Data(),
		}

	default:
		return Event{Type: EventNone}
	}
}

// convertKey converts a tcell key. Tab, Enter and Backspace share codes
// with Ctrl+I, Ctrl+M and Ctrl+H and are matched first. Terminals that
// report Ctrl+letter as a rune with the Ctrl modifier are folded into the
// Ctrl keys.
func convertKey(k tcell.Key, r rune, mod tcell.ModMask) (Key, rune) {
	switch k {
	case tcell.KeyRune:
		if mod&tcell.ModCtrl != 0 {
			if ck, ok := CtrlKey(r); ok {
				return ck, 0
			}
		}
		return KeyRune, r
	case tcell.KeyEscape:
		return KeyEscape, 0
	case tcell.KeyEnter:
		return KeyEnter, 0
	case tcell.KeyTab:
		return KeyTab, 0
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace, 0
	case tcell.KeyDelete:
		return KeyDelete, 0
	case tcell.KeyHome:
		return KeyHome, 0
	case tcell.KeyEnd:
		return KeyEnd, 0
	case tcell.KeyPgUp:
		return KeyPageUp, 0
	case tcell.KeyPgDn:
		return KeyPageDown, 0
	case tcell.KeyUp:
		return KeyUp, 0
	case tcell.KeyDown:
		return KeyDown, 0
	case tcell.KeyLeft:
		return KeyLeft, 0
	case tcell.KeyRight:
		return KeyRight, 0
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return KeyCtrlA + Key(k-tcell.KeyCtrlA), 0
	}
	return KeyNone, 0
}

func convertToTcellKey(k Key) tcell.Key {
	switch k {
	case KeyRune:
		return tcell.KeyRune
	case KeyEscape:
		return tcell.KeyEscape
	case KeyEnter:
		return tcell.KeyEnter
	case KeyTab:
		return tcell.KeyTab
	case KeyBackspace:
		return tcell.KeyBackspace2
	case KeyDelete:
		return tcell.KeyDelete
	case KeyHome:
		return tcell.KeyHome
	case KeyEnd:
		return tcell.KeyEnd
	case KeyPageUp:
		return tcell.KeyPgUp
	case KeyPageDown:
		return tcell.KeyPgDn
	case KeyUp:
		return tcell.KeyUp
	case KeyDown:
		return tcell.KeyDown
	case KeyLeft:
		return tcell.KeyLeft
	case KeyRight:
		return tcell.KeyRight
	}
	if k >= KeyCtrlA && k <= KeyCtrlZ {
		return tcell.KeyCtrlA + tcell.Key(k-KeyCtrlA)
	}
	return tcell.KeyNUL
}

func convertMod(m tcell.ModMask) ModMask {
	var mod ModMask
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	return mod
}

func convertToTcellMod(m ModMask) tcell.ModMask {
	var mod tcell.ModMask
	if m.Has(ModShift) {
		mod |= tcell.ModShift
	}
	if m.Has(ModCtrl) {
		mod |= tcell.ModCtrl
	}
	if m.Has(ModAlt) {
		mod |= tcell.ModAlt
	}
	return mod
}
