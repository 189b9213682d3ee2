package compile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/PasinduAnjana/TextEditor/internal/logging"
)

// ErrTimeout is returned when the result file does not appear in time.
var ErrTimeout = errors.New("timed out waiting for compile output")

// WaitForFile waits until path holds a complete status line and returns
// its content.
//
// The directory containing path is watched with fsnotify so the file is
// picked up as soon as it is written; a poll every interval covers
// filesystems where notifications are unavailable. When timeout elapses
// WaitForFile makes one final check, accepting a non-empty file whose
// status line was never terminated, and otherwise returns ErrTimeout.
func WaitForFile(ctx context.Context, path string, timeout, interval time.Duration, logger *logging.Logger) ([]byte, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	if data, ok := readReady(path); ok {
		return data, nil
	}

	var events <-chan fsnotify.Event
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("fsnotify unavailable, polling only: %v", err)
	} else {
		defer watcher.Close()
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			logger.Warn("cannot watch %s, polling only: %v", filepath.Dir(path), err)
		} else {
			events = watcher.Events
		}
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case <-deadline.C:
			data, err := os.ReadFile(path)
			if err != nil || len(bytes.TrimSpace(data)) == 0 {
				return nil, ErrTimeout
			}
			return data, nil

		case <-ticker.C:
			if data, ok := readReady(path); ok {
				return data, nil
			}

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if data, ok := readReady(path); ok {
				logger.Debug("compile output signalled by %s", ev.Op)
				return data, nil
			}
		}
	}
}

// readReady returns the file content once the file holds at least the
// status line. A first line still being written has no newline yet.
func readReady(path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil || bytes.IndexByte(data, '\n') < 0 {
		return nil, false
	}
	return data, true
}
