package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/PasinduAnjana/TextEditor/internal/compile"
	"github.com/PasinduAnjana/TextEditor/internal/logging"
)

// testPrefix keeps the developer's own environment out of the tests.
const testPrefix = "TEXTEDITOR_TEST_"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Editor.HistoryLimit != 1000 || !cfg.Editor.AutoInsert {
		t.Errorf("Editor = %+v", cfg.Editor)
	}
	if cfg.Autosave.Delay.Std() != 1500*time.Millisecond || !cfg.Autosave.Enabled {
		t.Errorf("Autosave = %+v", cfg.Autosave)
	}
	if cfg.Compile.OutputFile != "compile_output.txt" || cfg.Compile.Timeout.Std() != 10*time.Second {
		t.Errorf("Compile = %+v", cfg.Compile)
	}
	if cfg.Theme.Name != ThemeDark || cfg.Logging.LogLevel() != logging.LogLevelInfo {
		t.Errorf("Theme = %q, Logging = %+v", cfg.Theme.Name, cfg.Logging)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[editor]
autoInsert = false

[autosave]
delay = "3s"

[compile]
workDir = "/srv/compile"
timeout = "30s"

[theme]
name = "light"
`)

	cfg, err := Load(path, WithEnvPrefix(testPrefix))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Editor.AutoInsert {
		t.Error("Editor.AutoInsert = true, want false")
	}
	if cfg.Editor.HistoryLimit != 1000 {
		t.Errorf("Editor.HistoryLimit = %d, want default 1000", cfg.Editor.HistoryLimit)
	}
	if cfg.Autosave.Delay.Std() != 3*time.Second {
		t.Errorf("Autosave.Delay = %v, want 3s", cfg.Autosave.Delay.Std())
	}
	if cfg.Theme.Name != ThemeLight {
		t.Errorf("Theme.Name = %q, want light", cfg.Theme.Name)
	}

	rc := cfg.Compile.RunnerConfig()
	want := compile.Config{
		WorkDir:      "/srv/compile",
		OutputFile:   "compile_output.txt",
		Timeout:      30 * time.Second,
		PollInterval: 100 * time.Millisecond,
	}
	if rc != want {
		t.Errorf("RunnerConfig() = %+v, want %+v", rc, want)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
editor:
  historyLimit: 25
logging:
  level: debug
  file: /tmp/editor.log
languages:
  dir: /srv/languages
`)

	cfg, err := Load(path, WithEnvPrefix(testPrefix))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Editor.HistoryLimit != 25 {
		t.Errorf("Editor.HistoryLimit = %d, want 25", cfg.Editor.HistoryLimit)
	}
	if cfg.Logging.LogLevel() != logging.LogLevelDebug || cfg.Logging.File != "/tmp/editor.log" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if dir, err := cfg.Languages.Path(); err != nil || dir != "/srv/languages" {
		t.Errorf("Languages.Path() = %q, %v", dir, err)
	}
}

func TestLoadFileSystem(t *testing.T) {
	fsys := fstest.MapFS{
		"texteditor.toml": {Data: []byte("[autosave]\nenabled = false\n")},
	}

	cfg, err := Load("texteditor.toml", WithFileSystem(fsys), WithEnvPrefix(testPrefix))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Autosave.Enabled {
		t.Error("Autosave.Enabled = true, want false")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeFile(t, "config.toml", "[theme]\nname = \"light\"\n")
	t.Setenv(testPrefix+"THEME", "dark")
	t.Setenv(testPrefix+"AUTOSAVE_DELAY", "250ms")
	t.Setenv(testPrefix+"EDITOR_HISTORY_LIMIT", "7")
	t.Setenv(testPrefix+"UNRELATED_SETTING", "ignored")

	cfg, err := Load(path, WithEnvPrefix(testPrefix))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Theme.Name != ThemeDark {
		t.Errorf("Theme.Name = %q, want dark (env wins over file)", cfg.Theme.Name)
	}
	if cfg.Autosave.Delay.Std() != 250*time.Millisecond {
		t.Errorf("Autosave.Delay = %v, want 250ms", cfg.Autosave.Delay.Std())
	}
	if cfg.Editor.HistoryLimit != 7 {
		t.Errorf("Editor.HistoryLimit = %d, want 7", cfg.Editor.HistoryLimit)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"), WithEnvPrefix(testPrefix))
		if !errors.Is(err, ErrFileNotFound) {
			t.Errorf("Load error = %v, want ErrFileNotFound", err)
		}
	})

	t.Run("unknown setting", func(t *testing.T) {
		path := writeFile(t, "config.toml", "[editor]\nfontSize = 12\n")
		_, err := Load(path, WithEnvPrefix(testPrefix))
		if !errors.Is(err, ErrUnknownSetting) {
			t.Errorf("Load error = %v, want ErrUnknownSetting", err)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		path := writeFile(t, "config.json", "{}")
		if _, err := Load(path, WithEnvPrefix(testPrefix)); err == nil {
			t.Error("Load(config.json) should fail")
		}
	})

	t.Run("bad duration", func(t *testing.T) {
		path := writeFile(t, "config.toml", "[autosave]\ndelay = \"soon\"\n")
		if _, err := Load(path, WithEnvPrefix(testPrefix)); err == nil {
			t.Error("Load with a bad duration should fail")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		path := writeFile(t, "config.yaml", "theme:\n  name: neon\n")
		_, err := Load(path, WithEnvPrefix(testPrefix))
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("Load error = %v, want ErrValidationFailed", err)
		}
	})
}

func TestLoadDefaultPathMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", WithEnvPrefix(testPrefix))
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg.Editor.HistoryLimit != Default().Editor.HistoryLimit {
		t.Errorf("Load(\"\") did not return defaults: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		path   string
	}{
		{"history", func(c *Config) { c.Editor.HistoryLimit = 0 }, "editor.historyLimit"},
		{"delay", func(c *Config) { c.Autosave.Delay = 0 }, "autosave.delay"},
		{"output file", func(c *Config) { c.Compile.OutputFile = "../out.txt" }, "compile.outputFile"},
		{"timeout", func(c *Config) { c.Compile.Timeout = -1 }, "compile.timeout"},
		{"poll interval", func(c *Config) { c.Compile.PollInterval = Duration(time.Minute) }, "compile.pollInterval"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"theme", func(c *Config) { c.Theme.Name = "" }, "theme.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if ve.Path != tt.path {
				t.Errorf("ValidationError.Path = %q, want %q", ve.Path, tt.path)
			}
		})
	}
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Editor.HistoryLimit = -1
	cfg.Theme.Name = "neon"

	err := cfg.Validate()
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok || len(joined.Unwrap()) != 2 {
		t.Errorf("Validate() = %v, want two joined errors", err)
	}
}

func TestDuration(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if d.Std() != 90*time.Second {
		t.Errorf("Duration = %v, want 1m30s", d.Std())
	}
	text, _ := d.MarshalText()
	if string(text) != "1m30s" {
		t.Errorf("MarshalText() = %q", text)
	}
	if err := d.UnmarshalText([]byte("x")); err == nil {
		t.Error("UnmarshalText(x) should fail")
	}
}
