package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"Error", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}

	if ValidLevel("verbose") {
		t.Error("ValidLevel(verbose) = true")
	}
	if !ValidLevel("WARN") {
		t.Error("ValidLevel(WARN) = false")
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LogLevelWarn, Output: &buf})

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn %d", 42)
	l.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("filtered levels written: %q", out)
	}
	if !strings.Contains(out, "warn 42") {
		t.Errorf("missing formatted warning: %q", out)
	}
	if !strings.Contains(out, "error message") {
		t.Errorf("missing error: %q", out)
	}
}

func TestLoggerSetLevelShared(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LogLevelError, Output: &buf})
	child := l.WithComponent("compile")

	l.SetLevel(LogLevelDebug)
	if !child.Enabled(LogLevelDebug) {
		t.Error("child should follow parent level")
	}

	child.Debug("polling")
	out := buf.String()
	if !strings.Contains(out, "polling") || !strings.Contains(out, "compile") {
		t.Errorf("component entry missing: %q", out)
	}
}

func TestLoggerWithField(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LogLevelInfo, Output: &buf, Name: "test"})

	l.WithField("request", "abc-123").Info("started")

	out := buf.String()
	for _, want := range []string{"started", "request", "abc-123", "test", "INFO"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("dropped")
	if l.Enabled(LogLevelError) {
		t.Error("Nop logger should not be enabled")
	}
}
