package app

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard reads and writes plain text.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// MemoryClipboard keeps the clipboard in process memory.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

// NewMemoryClipboard creates an empty in-memory clipboard.
func NewMemoryClipboard() *MemoryClipboard {
	return &MemoryClipboard{}
}

// ReadText returns the stored text.
func (c *MemoryClipboard) ReadText() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

// WriteText stores text.
func (c *MemoryClipboard) WriteText(text string) error {
	c.mu.Lock()
	c.text = text
	c.mu.Unlock()
	return nil
}

// SystemClipboard uses the OS clipboard and falls back to process memory
// when no clipboard utility is available.
type SystemClipboard struct {
	local MemoryClipboard
}

// NewSystemClipboard creates a clipboard backed by the OS clipboard.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{}
}

// ReadText returns the OS clipboard content, or the last text written
// through this clipboard if the OS clipboard cannot be read.
func (c *SystemClipboard) ReadText() (string, error) {
	if !clipboard.Unsupported {
		if text, err := clipboard.ReadAll(); err == nil {
			return text, nil
		}
	}
	return c.local.ReadText()
}

// WriteText writes text to the OS clipboard. The text is kept locally as
// well so a later paste works without an OS clipboard.
func (c *SystemClipboard) WriteText(text string) error {
	_ = c.local.WriteText(text)
	if clipboard.Unsupported {
		return nil
	}
	return clipboard.WriteAll(text)
}
