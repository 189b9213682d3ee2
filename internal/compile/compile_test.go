package compile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name    string
		content string
		success bool
		errors  []Diagnostic
		output  string
	}{
		{
			name:    "success",
			content: "OK\nHello, world\n",
			success: true,
			output:  "Hello, world",
		},
		{
			name:    "error with diagnostics",
			content: "COMPILE_ERROR\nmain.c:3:5: error: expected ';'\nmain.c:7:1: error: unknown type\n",
			success: false,
			errors: []Diagnostic{
				{Line: 3, Column: 5, Message: "expected ';'"},
				{Line: 7, Column: 1, Message: "unknown type"},
			},
			output: "main.c:3:5: error: expected ';'\nmain.c:7:1: error: unknown type",
		},
		{
			name:    "ansi stripped",
			content: "COMPILE_ERROR\n\x1b[1mmain.kt:1:2: \x1b[31merror: \x1b[0munresolved reference\n",
			success: false,
			errors:  []Diagnostic{{Line: 1, Column: 2, Message: "unresolved reference"}},
			output:  "main.kt:1:2: error: unresolved reference",
		},
		{
			name:    "warnings dropped",
			content: "SUCCESS\nWARNING: deprecated flag\nrunning\n",
			success: true,
			output:  "running",
		},
		{
			name:    "crlf",
			content: "COMPILE_ERROR\r\na.py:2:1: error: bad\r\n",
			success: false,
			errors:  []Diagnostic{{Line: 2, Column: 1, Message: "bad"}},
			output:  "a.py:2:1: error: bad",
		},
		{
			name:    "status only",
			content: "OK",
			success: true,
			output:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOutput(tt.content)
			if got.Success != tt.success {
				t.Errorf("Success = %v, want %v", got.Success, tt.success)
			}
			if !reflect.DeepEqual(got.Errors, tt.errors) {
				t.Errorf("Errors = %v, want %v", got.Errors, tt.errors)
			}
			if got.Output != tt.output {
				t.Errorf("Output = %q, want %q", got.Output, tt.output)
			}
		})
	}
}

func TestFailure(t *testing.T) {
	res := Failure("")
	if res.Success || len(res.Errors) != 1 || res.Errors[0].Message != MsgUnknown {
		t.Errorf("Failure(\"\") = %+v", res)
	}
}

func TestSupported(t *testing.T) {
	for _, ext := range []string{"kt", "py", "c", "java", "KT"} {
		if !Supported(ext) {
			t.Errorf("Supported(%q) = false", ext)
		}
	}
	for _, ext := range []string{"", "txt", "rs"} {
		if Supported(ext) {
			t.Errorf("Supported(%q) = true", ext)
		}
	}
}

func TestWaitForFileExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("OK\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := WaitForFile(context.Background(), path, time.Second, 10*time.Millisecond, nil)
	if err != nil || string(data) != "OK\n" {
		t.Errorf("WaitForFile() = %q, %v", data, err)
	}
}

func TestWaitForFileAppears(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(path, []byte("COMPILE_ERROR\n"), 0o644)
	}()

	data, err := WaitForFile(context.Background(), path, 5*time.Second, 20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("WaitForFile failed: %v", err)
	}
	if string(data) != "COMPILE_ERROR\n" {
		t.Errorf("data = %q", data)
	}
}

func TestWaitForFileTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	start := time.Now()
	_, err := WaitForFile(context.Background(), path, 80*time.Millisecond, 10*time.Millisecond, nil)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("returned after %s, before the timeout", elapsed)
	}
}

func TestWaitForFilePartialStatusLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	go func() {
		f, err := os.Create(path)
		if err != nil {
			return
		}
		defer f.Close()
		_, _ = f.WriteString("COMPILE_")
		_ = f.Sync()
		time.Sleep(200 * time.Millisecond)
		_, _ = f.WriteString("ERROR\nmain.c:3:5: error: boom\n")
	}()

	data, err := WaitForFile(context.Background(), path, 5*time.Second, 10*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("WaitForFile failed: %v", err)
	}
	res := ParseOutput(string(data))
	if res.Success || len(res.Errors) != 1 || res.Errors[0].Message != "boom" {
		t.Errorf("ParseOutput(%q) = %+v, want one failure diagnostic", data, res)
	}
}

func TestWaitForFileEmptyAtTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := WaitForFile(context.Background(), path, 60*time.Millisecond, 10*time.Millisecond, nil); !errors.Is(err, ErrTimeout) {
		t.Errorf("error = %v, want ErrTimeout", err)
	}
}

func TestWaitForFileUnterminatedAtTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("OK"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := WaitForFile(context.Background(), path, 60*time.Millisecond, 10*time.Millisecond, nil)
	if err != nil || string(data) != "OK" {
		t.Errorf("WaitForFile() = %q, %v", data, err)
	}
}

func TestWaitForFileCanceled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := WaitForFile(ctx, path, time.Second, 10*time.Millisecond, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRunnerRefusals(t *testing.T) {
	r := NewRunner(Config{WorkDir: t.TempDir(), Timeout: 50 * time.Millisecond})

	tests := []struct {
		filename string
		message  string
	}{
		{"", MsgNotSaved},
		{"notes.txt", MsgUnsupported},
		{"README", MsgUnsupported},
	}
	for _, tt := range tests {
		res := r.Compile(context.Background(), tt.filename, "x")
		if res.Success || len(res.Errors) != 1 || res.Errors[0].Message != tt.message {
			t.Errorf("Compile(%q) = %+v, want failure %q", tt.filename, res, tt.message)
		}
		if res.RequestID == "" {
			t.Errorf("Compile(%q) has no request id", tt.filename)
		}
	}
}

func TestRunnerTimeout(t *testing.T) {
	dir := t.TempDir()
	r := NewRunner(Config{WorkDir: dir, Timeout: 60 * time.Millisecond, PollInterval: 10 * time.Millisecond})

	res := r.Compile(context.Background(), "Main.kt", "fun main() {}")
	if res.Success || len(res.Errors) != 1 || res.Errors[0].Message != MsgNoOutput {
		t.Errorf("Compile() = %+v, want %q", res, MsgNoOutput)
	}

	// The handed-over source is cleaned up afterwards.
	matches, _ := filepath.Glob(filepath.Join(dir, SourcePrefix+"*"))
	if len(matches) != 0 {
		t.Errorf("source files left behind: %v", matches)
	}
}

// fakeHarness waits for a source file in dir and answers with result.
func fakeHarness(t *testing.T, dir, result string, seen chan<- string) {
	t.Helper()
	go func() {
		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			matches, _ := filepath.Glob(filepath.Join(dir, SourcePrefix+"*"))
			if len(matches) > 0 {
				src, _ := os.ReadFile(matches[0])
				if len(src) == 0 {
					time.Sleep(5 * time.Millisecond)
					continue
				}
				seen <- filepath.Base(matches[0]) + "\n" + string(src)
				_ = os.WriteFile(filepath.Join(dir, DefaultOutputFile), []byte(result), 0o644)
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
		close(seen)
	}()
}

func TestRunnerCompile(t *testing.T) {
	dir := t.TempDir()

	// A stale result from an earlier run must not be picked up.
	stale := filepath.Join(dir, DefaultOutputFile)
	if err := os.WriteFile(stale, []byte("OK\nstale\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(Config{WorkDir: dir, Timeout: 5 * time.Second, PollInterval: 10 * time.Millisecond})
	r.newID = func() string { return "req-1" }

	seen := make(chan string, 1)
	fakeHarness(t, dir, "COMPILE_ERROR\nprog.c:2:3: error: missing brace\n", seen)

	res := r.Compile(context.Background(), "/home/u/prog.c", "int main() {")

	got := <-seen
	if want := "tmp_code_req-1.c\nint main() {"; got != want {
		t.Errorf("harness saw %q, want %q", got, want)
	}
	if res.Success {
		t.Error("Success = true, want false")
	}
	want := []Diagnostic{{Line: 2, Column: 3, Message: "missing brace"}}
	if !reflect.DeepEqual(res.Errors, want) {
		t.Errorf("Errors = %v, want %v", res.Errors, want)
	}
	if res.RequestID != "req-1" {
		t.Errorf("RequestID = %q", res.RequestID)
	}
	if strings.Contains(res.Output, "stale") {
		t.Error("stale output returned")
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	cfg := NewRunner(Config{}).Config()
	if cfg.OutputFile != DefaultOutputFile || cfg.Timeout != DefaultTimeout || cfg.PollInterval != DefaultPollInterval || cfg.WorkDir == "" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}
