// Package config loads the editor settings.
//
// Settings are resolved in layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. TEXTEDITOR_* environment variables
//
// The merged result is validated before it is returned.
//
// Basic usage:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	runner := compile.NewRunner(cfg.Compile.RunnerConfig())
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/PasinduAnjana/TextEditor/internal/autosave"
	"github.com/PasinduAnjana/TextEditor/internal/compile"
	"github.com/PasinduAnjana/TextEditor/internal/config/loader"
	"github.com/PasinduAnjana/TextEditor/internal/engine/history"
	"github.com/PasinduAnjana/TextEditor/internal/logging"
)

// AppName names the per-user config directory.
const AppName = "texteditor"

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Duration is a time.Duration written as a string such as "1500ms".
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds all editor settings.
type Config struct {
	Editor    EditorConfig    `toml:"editor" yaml:"editor"`
	Autosave  AutosaveConfig  `toml:"autosave" yaml:"autosave"`
	Compile   CompileConfig   `toml:"compile" yaml:"compile"`
	Languages LanguagesConfig `toml:"languages" yaml:"languages"`
	Logging   LoggingConfig   `toml:"logging" yaml:"logging"`
	Theme     ThemeConfig     `toml:"theme" yaml:"theme"`
}

// EditorConfig holds editing behavior settings.
type EditorConfig struct {
	// HistoryLimit bounds the number of undo steps.
	HistoryLimit int `toml:"historyLimit" yaml:"historyLimit"`

	// AutoInsert enables bracket pairing and tab expansion.
	AutoInsert bool `toml:"autoInsert" yaml:"autoInsert"`
}

// AutosaveConfig holds auto-save settings.
type AutosaveConfig struct {
	Enabled bool     `toml:"enabled" yaml:"enabled"`
	Delay   Duration `toml:"delay" yaml:"delay"`
}

// CompileConfig holds settings for the external compiler hand-off.
type CompileConfig struct {
	// WorkDir is the directory shared with the external compiler.
	// Empty means the OS temp dir.
	WorkDir      string   `toml:"workDir" yaml:"workDir"`
	OutputFile   string   `toml:"outputFile" yaml:"outputFile"`
	Timeout      Duration `toml:"timeout" yaml:"timeout"`
	PollInterval Duration `toml:"pollInterval" yaml:"pollInterval"`
}

// RunnerConfig converts the settings to a compile runner config.
func (c CompileConfig) RunnerConfig() compile.Config {
	rc := compile.DefaultConfig()
	if c.WorkDir != "" {
		rc.WorkDir = c.WorkDir
	}
	rc.OutputFile = c.OutputFile
	rc.Timeout = c.Timeout.Std()
	rc.PollInterval = c.PollInterval.Std()
	return rc
}

// LanguagesConfig holds custom language storage settings.
type LanguagesConfig struct {
	// Dir holds persisted language definitions. Empty means the user
	// config dir.
	Dir string `toml:"dir" yaml:"dir"`
}

// Path returns the definitions directory.
func (c LanguagesConfig) Path() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, "languages"), nil
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
	// File receives log output. Empty disables logging.
	File string `toml:"file" yaml:"file"`
}

// LogLevel returns the parsed level.
func (c LoggingConfig) LogLevel() logging.LogLevel {
	return logging.ParseLogLevel(c.Level)
}

// ThemeConfig selects the color theme.
type ThemeConfig struct {
	Name string `toml:"name" yaml:"name"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			HistoryLimit: history.DefaultMaxEntries,
			AutoInsert:   true,
		},
		Autosave: AutosaveConfig{
			Enabled: true,
			Delay:   Duration(autosave.DefaultDelay),
		},
		Compile: CompileConfig{
			OutputFile:   compile.DefaultOutputFile,
			Timeout:      Duration(compile.DefaultTimeout),
			PollInterval: Duration(compile.DefaultPollInterval),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Theme: ThemeConfig{
			Name: ThemeDark,
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

type options struct {
	fs        loader.FileSystem
	envPrefix string
}

// Option configures Load.
type Option func(*options)

// WithFileSystem reads config files through fsys.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnvPrefix changes the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// Load resolves the configuration from defaults, the file at path and the
// environment. An empty path uses DefaultPath, where a missing file is not
// an error; an explicit path must exist.
func Load(path string, opts ...Option) (*Config, error) {
	o := options{
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		if _, err := o.fs.Stat(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config %s: %w", path, err)
			}
			if explicit {
				return nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
			}
		} else {
			l, err := loader.ForFile(o.fs, path)
			if err != nil {
				return nil, err
			}
			data, err := l.Load()
			if err != nil {
				return nil, err
			}
			if err := cfg.merge(data, true); err != nil {
				return nil, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}

	env, err := loader.NewEnvLoader(o.envPrefix).Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.merge(env, false); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge decodes data over c. Settings absent from data keep their values.
// In strict mode unknown settings are an error; otherwise they are ignored.
func (c *Config) merge(data map[string]any, strict bool) error {
	if len(data) == 0 {
		return nil
	}
	raw, err := toml.Marshal(data)
	if err != nil {
		return err
	}
	dec := toml.NewDecoder(bytes.NewReader(raw))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(c); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return fmt.Errorf("%w: %s", ErrUnknownSetting, sme.String())
		}
		return err
	}
	return nil
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path, msg string, value any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
	}

	if c.Editor.HistoryLimit <= 0 {
		fail("editor.historyLimit", "must be positive", c.Editor.HistoryLimit)
	}
	if c.Autosave.Delay <= 0 {
		fail("autosave.delay", "must be positive", c.Autosave.Delay.Std())
	}
	if c.Compile.OutputFile == "" || filepath.Base(c.Compile.OutputFile) != c.Compile.OutputFile {
		fail("compile.outputFile", "must be a plain file name", c.Compile.OutputFile)
	}
	if c.Compile.Timeout <= 0 {
		fail("compile.timeout", "must be positive", c.Compile.Timeout.Std())
	}
	if c.Compile.PollInterval <= 0 || c.Compile.PollInterval > c.Compile.Timeout {
		fail("compile.pollInterval", "must be positive and not exceed the timeout", c.Compile.PollInterval.Std())
	}
	if !logging.ValidLevel(c.Logging.Level) {
		fail("logging.level", "must be debug, info, warn or error", c.Logging.Level)
	}
	if c.Theme.Name != ThemeDark && c.Theme.Name != ThemeLight {
		fail("theme.name", "must be dark or light", c.Theme.Name)
	}

	return errors.Join(errs...)
}
