// Package app wires the editor core to a terminal front end. It owns the
// event loop: every state change happens on the loop goroutine, and
// background work (compiles, auto-saves) posts its outcome back to the loop
// as an interrupt event.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/PasinduAnjana/TextEditor/internal/autosave"
	"github.com/PasinduAnjana/TextEditor/internal/compile"
	"github.com/PasinduAnjana/TextEditor/internal/config"
	"github.com/PasinduAnjana/TextEditor/internal/config/watcher"
	"github.com/PasinduAnjana/TextEditor/internal/document"
	"github.com/PasinduAnjana/TextEditor/internal/editor"
	"github.com/PasinduAnjana/TextEditor/internal/language"
	"github.com/PasinduAnjana/TextEditor/internal/logging"
	"github.com/PasinduAnjana/TextEditor/internal/renderer"
	"github.com/PasinduAnjana/TextEditor/internal/renderer/backend"
)

// Application is the central coordinator for the editor components.
type Application struct {
	config     *config.Config
	configPath string
	watcher    *watcher.Watcher
	logger     *logging.Logger
	logOut     io.Closer

	state     *editor.State
	registry  *language.Registry
	saver     *autosave.Saver
	clipboard Clipboard

	backend  backend.Backend
	renderer *renderer.Renderer
	theme    renderer.Theme

	logLevel string

	// UI state owned by the loop goroutine.
	notice    string
	prompt    *prompt
	pasting   bool
	pasteBuf  []rune
	saveHint  string
	quitArmed bool

	ctx    context.Context
	cancel context.CancelFunc

	running   atomic.Bool
	ready     chan struct{}
	readyOnce sync.Once
	done      chan struct{}
	stopOnce  sync.Once
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty uses the
	// default location, where a missing file is not an error.
	ConfigPath string

	// Config overrides loading from ConfigPath.
	Config *config.Config

	// WatchConfig reloads the configuration file when it changes while
	// the editor runs.
	WatchConfig bool

	// LogLevel overrides the configured level when set.
	LogLevel string

	// LogOutput overrides the configured log file.
	LogOutput io.Writer

	// File is opened on startup. A file that does not exist yet becomes
	// the default name for the first save.
	File string

	// Language forces the language of the initial document.
	Language string

	// Search seeds the find/replace parameters.
	Search editor.Search

	// Provider, Store, Clipboard and Compiler replace the default
	// implementations.
	Provider  document.Provider
	Store     language.Store
	Clipboard Clipboard
	Compiler  editor.Compiler
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		ready: make(chan struct{}),
		done:  make(chan struct{}),
	}
	app.ctx, app.cancel = context.WithCancel(context.Background())

	if err := app.bootstrap(opts); err != nil {
		app.cancel()
		if app.watcher != nil {
			app.watcher.Stop()
		}
		if app.logOut != nil {
			app.logOut.Close()
		}
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap(opts Options) error {
	// 1. Config
	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.Load(opts.ConfigPath)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
		app.configPath = opts.ConfigPath
		if app.configPath == "" {
			app.configPath, _ = config.DefaultPath()
		}
	}
	app.logLevel = opts.LogLevel
	if app.logLevel != "" {
		cfg.Logging.Level = app.logLevel
	}
	app.config = cfg

	// 2. Logging
	if err := app.setupLogging(opts.LogOutput); err != nil {
		return &InitError{Component: "logging", Err: err}
	}

	// 3. Theme
	theme, err := renderer.ThemeByName(cfg.Theme.Name)
	if err != nil {
		return &InitError{Component: "theme", Err: err}
	}
	app.theme = theme

	// 4. Language registry
	store := opts.Store
	if store == nil {
		dir, err := cfg.Languages.Path()
		if err != nil {
			app.logger.Warn("no language directory, custom languages will not persist: %v", err)
			store = language.NewMemoryStore()
		} else {
			store = language.NewDirStore(dir)
		}
	}
	app.registry = language.NewRegistry(
		language.WithStore(store),
		language.WithLogger(app.logger.WithComponent("language")),
	)
	if err := app.registry.Load(app.ctx); err != nil {
		app.logger.Warn("loading custom languages: %v", err)
	}

	// 5. Editor state
	provider := opts.Provider
	if provider == nil {
		provider = document.NewOSProvider()
	}
	compiler := opts.Compiler
	if compiler == nil {
		compiler = compile.NewRunner(cfg.Compile.RunnerConfig(),
			compile.WithLogger(app.logger.WithComponent("compile")))
	}
	app.state = editor.New(
		editor.WithRegistry(app.registry),
		editor.WithProvider(provider),
		editor.WithCompiler(compiler),
		editor.WithLogger(app.logger.WithComponent("editor")),
		editor.WithHistoryLimit(cfg.Editor.HistoryLimit),
		editor.WithAutoInsert(cfg.Editor.AutoInsert),
	)
	app.state.SetSearch(opts.Search)

	// 6. Auto-save
	app.saver = autosave.NewSaver(cfg.Autosave.Delay.Std(), app.requestAutosave,
		autosave.WithEnabled(cfg.Autosave.Enabled),
		autosave.WithLogger(app.logger.WithComponent("autosave")),
	)
	app.state.Subscribe(app.onChange)

	// 7. Clipboard
	app.clipboard = opts.Clipboard
	if app.clipboard == nil {
		app.clipboard = NewSystemClipboard()
	}

	// 8. Live reload
	if opts.WatchConfig && app.configPath != "" {
		if err := app.watchConfig(); err != nil {
			app.logger.Warn("config reload disabled: %v", err)
		}
	}

	// 9. Initial document
	if opts.File != "" {
		if err := app.state.Open(app.ctx, opts.File); err != nil {
			if !errors.Is(err, document.ErrNotFound) {
				return &InitError{Component: "document", Err: err}
			}
			app.saveHint = opts.File
			app.logger.Info("%s does not exist yet, starting empty", opts.File)
		}
	}
	if opts.Language != "" {
		if err := app.state.SetLanguage(opts.Language); err != nil {
			return &InitError{Component: "language", Err: err}
		}
	}

	return nil
}

// setupLogging creates the logger. The terminal owns stderr while the
// editor runs, so without an explicit output or log file nothing is logged.
func (app *Application) setupLogging(out io.Writer) error {
	cfg := app.config.Logging
	if out == nil && cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		app.logOut = f
		out = f
	}
	if out == nil {
		app.logger = logging.Nop()
		return nil
	}
	app.logger = logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: out,
		Name:   config.AppName,
	})
	return nil
}

// onChange schedules an auto-save after user edits.
func (app *Application) onChange(kind editor.ChangeKind) {
	if kind.Has(editor.ChangeText) && !app.state.Loading() && app.state.Handle() != "" {
		app.saver.Edited()
	}
}

// SetBackend sets the rendering backend. It must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	app.renderer = renderer.New(b, app.theme)
	return nil
}

// Run initializes the backend and runs the event loop until the user
// quits or Shutdown is called. A user quit returns ErrQuit.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if app.backend == nil {
		return &InitError{Component: "backend", Err: ErrNoBackend}
	}
	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	app.readyOnce.Do(func() { close(app.ready) })
	return app.eventLoop()
}

// Ready is closed once Run has initialized the backend.
func (app *Application) Ready() <-chan struct{} {
	return app.ready
}

// eventLoop handles events until quit or shutdown.
func (app *Application) eventLoop() error {
	events := app.startInputPolling()
	app.render()

	for {
		select {
		case <-app.done:
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.handleEvent(ev); err != nil {
				return err
			}
			app.render()
		}
	}
}

// render draws the current state.
func (app *Application) render() {
	if app.renderer == nil {
		return
	}
	app.renderer.Render(app.frame())
}

// frame snapshots the state for the renderer.
func (app *Application) frame() renderer.Frame {
	s := app.state
	title := s.Name()
	if s.Dirty() {
		title += "*"
	}
	f := renderer.Frame{
		Text:      s.Text(),
		Selection: s.Buffer().Selection(),
		Runs:      s.Highlight(),
		Title:     title,
		Language:  s.Language(),
		Status:    s.Stats().String(),
		Notice:    app.notice,
		Compiling: s.Compiling(),
	}
	if app.prompt != nil {
		f.Prompt = app.prompt.String()
	}
	if res, ok := s.CompileResult(); ok {
		f.Result = &res
	}
	return f
}

// post hands data to the event loop as an interrupt event.
func (app *Application) post(data any) error {
	if app.backend == nil || !app.running.Load() {
		return ErrNotRunning
	}
	return app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: data})
}

// Shutdown stops the event loop and releases resources. It is safe to
// call more than once and from any goroutine.
func (app *Application) Shutdown() {
	app.stopOnce.Do(func() {
		close(app.done)
		app.cancel()
		app.saver.Stop()
		if app.watcher != nil {
			app.watcher.Stop()
		}
		app.logger.Info("shutting down")
		_ = app.logger.Sync()
		if app.logOut != nil {
			app.logOut.Close()
		}
	})
}

// IsRunning reports whether the event loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the effective configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// State returns the editor state. It must only be used from the event
// loop goroutine while Run is active.
func (app *Application) State() *editor.State {
	return app.state
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Context returns a context canceled by Shutdown.
func (app *Application) Context() context.Context {
	return app.ctx
}

// Notice returns the transient status message.
func (app *Application) Notice() string {
	return app.notice
}
