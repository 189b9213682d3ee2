// Package document reads and writes whole documents through a provider.
//
// A handle identifies a document to its provider. For OSProvider the handle
// is a file path.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound is returned when a handle does not name a document.
var ErrNotFound = errors.New("document not found")

// Provider reads and writes whole documents.
type Provider interface {
	// ReadAll returns the text of the document.
	ReadAll(ctx context.Context, handle string) (string, error)
	// WriteAll replaces the text of the document, creating it if needed.
	WriteAll(ctx context.Context, handle, text string) error
	// Name returns the display name of the document.
	Name(handle string) string
}

// LineEnding is the line terminator style of a file.
type LineEnding string

const (
	// LineEndingLF is "\n".
	LineEndingLF LineEnding = "lf"
	// LineEndingCRLF is "\r\n".
	LineEndingCRLF LineEnding = "crlf"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// DetectLineEnding returns CRLF when every line break in content is CRLF
// and LF otherwise.
func DetectLineEnding(content []byte) LineEnding {
	crlf := bytes.Count(content, []byte("\r\n"))
	lf := bytes.Count(content, []byte("\n"))
	if crlf > 0 && crlf == lf {
		return LineEndingCRLF
	}
	return LineEndingLF
}

// format remembers how a file was encoded so it is written back the same way.
type format struct {
	bom    bool
	ending LineEnding
}

// OSProvider reads and writes files on the local file system. Text is
// handed out with LF line breaks and without a byte order mark; both are
// restored when the file is written back.
type OSProvider struct {
	mu      sync.Mutex
	formats map[string]format
	perm    fs.FileMode
}

// NewOSProvider creates a provider over the local file system.
func NewOSProvider() *OSProvider {
	return &OSProvider{
		formats: make(map[string]format),
		perm:    0o644,
	}
}

// ReadAll implements Provider.
func (p *OSProvider) ReadAll(ctx context.Context, handle string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(handle)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", handle, ErrNotFound)
		}
		return "", err
	}

	f := format{ending: DetectLineEnding(data)}
	if bytes.HasPrefix(data, bomUTF8) {
		f.bom = true
		data = data[len(bomUTF8):]
	}

	p.mu.Lock()
	p.formats[filepath.Clean(handle)] = f
	p.mu.Unlock()

	text := string(data)
	if f.ending == LineEndingCRLF {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	return text, nil
}

// WriteAll implements Provider. The file is replaced atomically.
func (p *OSProvider) WriteAll(ctx context.Context, handle, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	f := p.formats[filepath.Clean(handle)]
	p.mu.Unlock()

	if f.ending == LineEndingCRLF {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	data := []byte(text)
	if f.bom {
		data = append(append([]byte{}, bomUTF8...), data...)
	}

	dir := filepath.Dir(handle)
	perm := p.perm
	if info, err := os.Stat(handle); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(handle)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, handle); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Name implements Provider.
func (p *OSProvider) Name(handle string) string {
	return filepath.Base(handle)
}

// MemoryProvider keeps documents in memory.
type MemoryProvider struct {
	mu    sync.RWMutex
	files map[string]string
	// FailWrites makes every WriteAll fail with this error when set.
	FailWrites error
}

// NewMemoryProvider creates an empty in-memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{files: make(map[string]string)}
}

// ReadAll implements Provider.
func (p *MemoryProvider) ReadAll(_ context.Context, handle string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	text, ok := p.files[handle]
	if !ok {
		return "", fmt.Errorf("%s: %w", handle, ErrNotFound)
	}
	return text, nil
}

// WriteAll implements Provider.
func (p *MemoryProvider) WriteAll(_ context.Context, handle, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.FailWrites != nil {
		return p.FailWrites
	}
	p.files[handle] = text
	return nil
}

// Name implements Provider.
func (p *MemoryProvider) Name(handle string) string {
	return filepath.Base(handle)
}

// Get returns the stored text of handle.
func (p *MemoryProvider) Get(handle string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	text, ok := p.files[handle]
	return text, ok
}
