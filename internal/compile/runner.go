package compile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PasinduAnjana/TextEditor/internal/logging"
)

// Defaults for Config.
const (
	DefaultOutputFile   = "compile_output.txt"
	DefaultTimeout      = 10 * time.Second
	DefaultPollInterval = 100 * time.Millisecond
)

// SourcePrefix starts the name of every source file handed to the harness.
const SourcePrefix = "tmp_code_"

var supportedExtensions = map[string]bool{
	"kt":   true,
	"py":   true,
	"c":    true,
	"java": true,
}

// Supported reports whether documents with extension ext (without the dot)
// can be compiled.
func Supported(ext string) bool {
	return supportedExtensions[strings.ToLower(ext)]
}

// Config configures a Runner.
type Config struct {
	// WorkDir is the directory shared with the harness.
	WorkDir string
	// OutputFile is the result file name inside WorkDir.
	OutputFile string
	// Timeout bounds the wait for the result file.
	Timeout time.Duration
	// PollInterval is how often the result file is checked.
	PollInterval time.Duration
}

// DefaultConfig returns the default configuration using the OS temporary
// directory.
func DefaultConfig() Config {
	return Config{
		WorkDir:      filepath.Join(os.TempDir(), "texteditor"),
		OutputFile:   DefaultOutputFile,
		Timeout:      DefaultTimeout,
		PollInterval: DefaultPollInterval,
	}
}

// Runner performs compile invocations.
type Runner struct {
	config Config
	logger *logging.Logger
	newID  func() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a runner. Zero fields of cfg take their defaults.
func NewRunner(cfg Config, opts ...Option) *Runner {
	def := DefaultConfig()
	if cfg.WorkDir == "" {
		cfg.WorkDir = def.WorkDir
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = def.OutputFile
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}

	r := &Runner{
		config: cfg,
		logger: logging.Nop(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the effective configuration.
func (r *Runner) Config() Config {
	return r.config
}

// OutputPath returns the path of the result file.
func (r *Runner) OutputPath() string {
	return filepath.Join(r.config.WorkDir, r.config.OutputFile)
}

// Compile hands source to the harness and waits for the result.
// filename is the document name and selects the language by extension.
// Compile never returns an error: every failure is reported as a failed
// Result with a single diagnostic.
func (r *Runner) Compile(ctx context.Context, filename, source string) Result {
	id := r.newID()
	log := r.logger.WithField("request", id)

	if filename == "" {
		return withID(Failure(MsgNotSaved), id)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if !Supported(ext) {
		log.Info("unsupported extension %q", ext)
		return withID(Failure(MsgUnsupported), id)
	}

	if err := os.MkdirAll(r.config.WorkDir, 0o755); err != nil {
		log.Error("create work dir: %v", err)
		return withID(Failure(err.Error()), id)
	}

	output := r.OutputPath()
	if err := os.Remove(output); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Error("remove stale output: %v", err)
		return withID(Failure(err.Error()), id)
	}

	src := filepath.Join(r.config.WorkDir, fmt.Sprintf("%s%s.%s", SourcePrefix, id, ext))
	if err := os.WriteFile(src, []byte(source), 0o644); err != nil {
		log.Error("write source: %v", err)
		return withID(Failure(err.Error()), id)
	}
	defer os.Remove(src)

	log.Info("waiting for %s (timeout %s)", output, r.config.Timeout)
	start := time.Now()

	data, err := WaitForFile(ctx, output, r.config.Timeout, r.config.PollInterval, log)
	switch {
	case errors.Is(err, ErrTimeout):
		log.Warn("no compile output after %s", r.config.Timeout)
		return withID(Failure(MsgNoOutput), id)
	case err != nil:
		log.Error("wait for output: %v", err)
		return withID(Failure(err.Error()), id)
	}

	res := ParseOutput(string(data))
	log.Info("compile finished in %s: success=%t errors=%d", time.Since(start).Round(time.Millisecond), res.Success, len(res.Errors))
	return withID(res, id)
}

func withID(res Result, id string) Result {
	res.RequestID = id
	return res
}
