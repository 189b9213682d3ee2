// Package compile hands a document to an external compiler harness and
// collects the result file it writes.
//
// The harness is not controlled by the editor. The editor drops the source
// into a shared work directory, removes any stale result, and waits for the
// harness to write the result file. The first line of that file is a status
// flag: "COMPILE_ERROR" marks a failure, anything else success. The
// remaining lines are the compiler output.
package compile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StatusError is the status flag written by the harness on failure.
const StatusError = "COMPILE_ERROR"

// Messages reported as single diagnostics.
const (
	MsgNotSaved    = "Please save before compiling"
	MsgUnsupported = "Unsupported file type"
	MsgNoOutput    = "Compilation output not found. Make sure the external compiler is running."
	MsgUnknown     = "Unknown error"
)

// Diagnostic is one compiler error. Line and Column are 1-based when taken
// from compiler output and 0 for synthesized diagnostics.
type Diagnostic struct {
	Line    int
	Column  int
	Message string
}

// Result is the outcome of one compile invocation.
type Result struct {
	Success bool
	Errors  []Diagnostic
	Output  string
	// RequestID identifies the invocation in logs.
	RequestID string
}

// Failure returns a failed result carrying a single synthesized diagnostic.
func Failure(msg string) Result {
	if msg == "" {
		msg = MsgUnknown
	}
	return Result{
		Success: false,
		Errors:  []Diagnostic{{Line: 0, Column: 0, Message: msg}},
	}
}

var diagnosticPattern = regexp.MustCompile(`^(.+):(\d+):(\d+): error: (.+)$`)

// ParseOutput parses the content of a result file.
// ANSI escape sequences are stripped from the output and lines starting
// with "WARNING:" are discarded.
func ParseOutput(content string) Result {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")

	status := strings.TrimSpace(ansi.Strip(lines[0]))
	res := Result{Success: status != StatusError}

	kept := make([]string, 0, len(lines))
	for _, line := range lines[1:] {
		line = ansi.Strip(line)
		if strings.HasPrefix(line, "WARNING:") {
			continue
		}
		kept = append(kept, line)
		if d, ok := parseDiagnostic(line); ok {
			res.Errors = append(res.Errors, d)
		}
	}

	res.Output = strings.TrimRight(strings.Join(kept, "\n"), "\n")
	return res
}

func parseDiagnostic(line string) (Diagnostic, bool) {
	m := diagnosticPattern.FindStringSubmatch(line)
	if m == nil {
		return Diagnostic{}, false
	}
	ln, err := strconv.Atoi(m[2])
	if err != nil {
		return Diagnostic{}, false
	}
	col, err := strconv.Atoi(m[3])
	if err != nil {
		return Diagnostic{}, false
	}
	return Diagnostic{Line: ln, Column: col, Message: m[4]}, true
}
