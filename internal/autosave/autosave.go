// Package autosave persists a document after a quiet period following the
// last edit. Every edit restarts the quiet period; a pending save is
// superseded, never queued.
package autosave

import (
	"sync"
	"time"

	"github.com/PasinduAnjana/TextEditor/internal/logging"
)

// DefaultDelay is the quiet period before an automatic save.
const DefaultDelay = 1500 * time.Millisecond

// Debouncer runs a callback once after calls have stopped for a delay.
//
// All methods are safe for concurrent use. The callback runs on a timer
// goroutine and never concurrently with itself.
type Debouncer struct {
	mu       sync.Mutex
	runMu    sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	pending  bool
	gen      uint64
	callback func()
}

// NewDebouncer creates a debouncer that calls callback after delay.
func NewDebouncer(delay time.Duration, callback func()) *Debouncer {
	return &Debouncer{
		delay:    delay,
		callback: callback,
	}
}

// Trigger restarts the quiet period. Earlier pending calls are dropped.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = true
	d.gen++
	gen := d.gen

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(gen)
	})
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if !d.pending || d.gen != gen {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.run()
}

func (d *Debouncer) run() {
	d.runMu.Lock()
	defer d.runMu.Unlock()
	d.callback()
}

// Flush runs the callback now if a call is pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	pending := d.pending
	d.pending = false
	d.mu.Unlock()

	if pending {
		d.run()
	}
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Saver schedules automatic saves of the current document.
type Saver struct {
	mu        sync.Mutex
	enabled   bool
	debouncer *Debouncer
	logger    *logging.Logger
}

// Option configures a Saver.
type Option func(*Saver)

// WithLogger sets the saver logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Saver) {
		s.logger = l
	}
}

// WithEnabled sets whether edits schedule saves. Savers start enabled.
func WithEnabled(enabled bool) Option {
	return func(s *Saver) {
		s.enabled = enabled
	}
}

// NewSaver creates a saver calling save after delay of inactivity.
// A non-positive delay uses DefaultDelay. save is called from a timer
// goroutine; callers that own single-threaded state should hand the work
// over to their own loop.
func NewSaver(delay time.Duration, save func() error, opts ...Option) *Saver {
	if delay <= 0 {
		delay = DefaultDelay
	}
	s := &Saver{
		enabled: true,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.debouncer = NewDebouncer(delay, func() {
		if err := save(); err != nil {
			s.logger.Warn("autosave failed: %v", err)
			return
		}
		s.logger.Debug("autosaved")
	})
	return s
}

// Edited records an edit and restarts the quiet period.
func (s *Saver) Edited() {
	s.mu.Lock()
	enabled := s.enabled
	s.mu.Unlock()

	if enabled {
		s.debouncer.Trigger()
	}
}

// SetEnabled turns automatic saves on or off. Turning them off drops any
// pending save.
func (s *Saver) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()

	if !enabled {
		s.debouncer.Cancel()
	}
}

// Enabled reports whether automatic saves are on.
func (s *Saver) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Pending reports whether a save is scheduled.
func (s *Saver) Pending() bool {
	return s.debouncer.Pending()
}

// Flush performs a pending save immediately.
func (s *Saver) Flush() {
	s.debouncer.Flush()
}

// Stop drops any pending save.
func (s *Saver) Stop() {
	s.debouncer.Cancel()
}
