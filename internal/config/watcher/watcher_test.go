package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOperationString(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Operation(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestCoalesce(t *testing.T) {
	tests := []struct {
		pending, next, want Operation
	}{
		{OpWrite, OpWrite, OpWrite},
		{OpCreate, OpWrite, OpCreate},
		{OpWrite, OpRemove, OpRemove},
		{OpCreate, OpRemove, OpRemove},
		{OpRemove, OpWrite, OpRemove},
		{OpRemove, OpCreate, OpCreate},
		{OpWrite, OpRename, OpRename},
	}
	for _, tt := range tests {
		if got := coalesce(tt.pending, tt.next); got != tt.want {
			t.Errorf("coalesce(%v, %v) = %v, want %v", tt.pending, tt.next, got, tt.want)
		}
	}
}

func newStarted(t *testing.T) *Watcher {
	t.Helper()
	w, err := New(WithDebounce(20 * time.Millisecond))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestWatchReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := newStarted(t)
	events := make(chan Event, 10)
	w.OnChange(func(ev Event) { events <- ev })
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	w.Start()

	// Unwatched files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("a = 2\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	abs, _ := filepath.Abs(path)
	select {
	case ev := <-events:
		if ev.Path != abs {
			t.Errorf("event path = %q, want %q", ev.Path, abs)
		}
		if ev.Op == OpRemove {
			t.Errorf("event op = %v", ev.Op)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatchBookkeeping(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.toml")
	b := filepath.Join(dir, "b.toml")

	w := newStarted(t)
	for _, p := range []string{a, b, a} {
		if err := w.Watch(p); err != nil {
			t.Fatalf("Watch(%s) failed: %v", p, err)
		}
	}
	if got := len(w.WatchedFiles()); got != 2 {
		t.Errorf("WatchedFiles() has %d entries, want 2", got)
	}

	if err := w.Unwatch(a); err != nil {
		t.Fatalf("Unwatch failed: %v", err)
	}
	if err := w.Unwatch(a); err != nil {
		t.Fatalf("second Unwatch failed: %v", err)
	}
	if got := w.WatchedFiles(); len(got) != 1 {
		t.Errorf("WatchedFiles() = %v", got)
	}

	if err := w.Watch(filepath.Join(dir, "missing", "c.toml")); err == nil {
		t.Error("watching a file in a missing directory should fail")
	}

	w.Stop()
	if err := w.Watch(b); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Watch after Stop error = %v", err)
	}
}

func TestHandlerPanicIsContained(t *testing.T) {
	w := newStarted(t)
	called := make(chan struct{}, 1)
	w.OnChange(func(Event) { panic("boom") })
	w.OnChange(func(Event) { called <- struct{}{} })

	w.mu.Lock()
	w.pending["/x"] = Event{Path: "/x", Op: OpWrite}
	w.mu.Unlock()
	w.flush()

	select {
	case <-called:
	default:
		t.Error("second handler not called after first panicked")
	}
}
