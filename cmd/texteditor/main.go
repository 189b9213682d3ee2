// Package main is the entry point for the terminal text editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/PasinduAnjana/TextEditor/internal/app"
	"github.com/PasinduAnjana/TextEditor/internal/compile"
	"github.com/PasinduAnjana/TextEditor/internal/logging"
	"github.com/PasinduAnjana/TextEditor/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the parsed command line.
type options struct {
	app app.Options

	addLanguage    string
	removeLanguage string
	listLanguages  bool
	compile        bool
	showVersion    bool
}

// batch reports whether the command runs without the editor screen.
func (o options) batch() bool {
	return o.addLanguage != "" || o.removeLanguage != "" || o.listLanguages || o.compile
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "texteditor %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	if opts.batch() {
		opts.app.LogOutput = stderr
		if opts.app.LogLevel == "" {
			opts.app.LogLevel = "warn"
		}
	} else {
		opts.app.WatchConfig = true
	}

	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	if opts.batch() {
		return runBatch(application, opts, stdout, stderr)
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runBatch performs the non-interactive commands in a fixed order: add,
// remove, list, compile.
func runBatch(application *app.Application, opts options, stdout, stderr io.Writer) int {
	ctx := application.Context()
	state := application.State()

	if opts.addLanguage != "" {
		data, err := os.ReadFile(opts.addLanguage)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		name, err := state.AddLanguage(ctx, filepath.Base(opts.addLanguage), data)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Added language %s\n", name)
	}

	if opts.removeLanguage != "" {
		if err := state.RemoveLanguage(ctx, opts.removeLanguage); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Removed language %s\n", opts.removeLanguage)
	}

	if opts.listLanguages {
		for _, name := range state.Languages() {
			fmt.Fprintln(stdout, name)
		}
	}

	if opts.compile {
		if opts.app.File == "" {
			fmt.Fprintln(stderr, "Error: -compile needs a file")
			return 2
		}
		if state.Handle() == "" {
			fmt.Fprintf(stderr, "Error: %s: not found\n", opts.app.File)
			return 1
		}
		res := state.Compile(ctx)
		application.Logger().Debug("compile %s finished: success=%v", res.RequestID, res.Success)
		printResult(stdout, state.Name(), res)
		if !res.Success {
			return 1
		}
	}
	return 0
}

func printResult(w io.Writer, name string, res compile.Result) {
	for _, d := range res.Errors {
		if d.Line > 0 {
			fmt.Fprintf(w, "%s:%d:%d: error: %s\n", name, d.Line, d.Column, d.Message)
		} else {
			fmt.Fprintf(w, "error: %s\n", d.Message)
		}
	}
	if res.Output != "" {
		fmt.Fprintln(w, res.Output)
	}
	if res.Success {
		fmt.Fprintln(w, "Compiled successfully")
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	var caseSensitive bool

	fs := flag.NewFlagSet("texteditor", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.app.ConfigPath, "config", "", "Path to configuration file (TOML or YAML)")
	fs.StringVar(&opts.app.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.app.Language, "lang", "", "Language of the opened document")
	fs.StringVar(&opts.app.Search.Query, "find", "", "Search query for Ctrl+F")
	fs.StringVar(&opts.app.Search.Replacement, "replace", "", "Replacement text for Ctrl+R and Ctrl+T")
	fs.BoolVar(&caseSensitive, "match-case", false, "Make searches case sensitive")
	fs.StringVar(&opts.addLanguage, "add-language", "", "Import a language definition file (JSON, YAML or Lua) and exit")
	fs.StringVar(&opts.removeLanguage, "remove-language", "", "Remove a custom language and exit")
	fs.BoolVar(&opts.listLanguages, "list-languages", false, "List available languages and exit")
	fs.BoolVar(&opts.compile, "compile", false, "Compile the file, print the result and exit")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "texteditor - terminal code editor\n\n")
		fmt.Fprintf(stderr, "Usage: texteditor [options] [file]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  texteditor                          Open an empty document\n")
		fmt.Fprintf(stderr, "  texteditor main.kt                  Open a file\n")
		fmt.Fprintf(stderr, "  texteditor -find foo -replace bar a.py\n")
		fmt.Fprintf(stderr, "  texteditor -add-language rust.json  Import a language\n")
		fmt.Fprintf(stderr, "  texteditor -compile main.c          Compile via the external harness\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.app.Search.CaseSensitive = caseSensitive

	if opts.app.LogLevel != "" && !logging.ValidLevel(opts.app.LogLevel) {
		return opts, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.app.LogLevel)
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.app.File = fs.Arg(0)
	default:
		return opts, fmt.Errorf("only one file can be opened, got %d", fs.NArg())
	}

	return opts, nil
}
