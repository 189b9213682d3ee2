package editor

import (
	"errors"
	"testing"
)

func TestOperationError(t *testing.T) {
	base := errors.New("disk full")
	err := NewOperationError("save", "/tmp/a.kt", base)

	if got := err.Error(); got != "save /tmp/a.kt: disk full" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, base) {
		t.Error("errors.Is should match the wrapped error")
	}
	if !errors.Is(err, err) {
		t.Error("errors.Is should match itself")
	}
	if errors.Is(err, NewOperationError("save", "/tmp/a.kt", base)) {
		t.Error("errors.Is should not match a different wrapper")
	}

	noTarget := NewOperationError("compile", "", nil)
	if noTarget.Error() != "compile" {
		t.Errorf("Error() = %q", noTarget.Error())
	}

	var nilErr *OperationError
	if nilErr.Error() != "" || nilErr.Unwrap() != nil || nilErr.Is(base) {
		t.Error("nil receiver methods should be safe")
	}
}
