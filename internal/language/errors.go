package language

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrInvalidDefinition is returned for definitions that cannot be used.
	ErrInvalidDefinition = errors.New("invalid language definition")
	// ErrBuiltin is returned when removing or replacing a built-in language.
	ErrBuiltin = errors.New("built-in language")
	// ErrNotFound is returned when a language is not registered.
	ErrNotFound = errors.New("language not found")
	// ErrInvalidName is returned for names that cannot be stored.
	ErrInvalidName = errors.New("invalid language name")
	// ErrUnsupportedFormat is returned for definition files of unknown type.
	ErrUnsupportedFormat = errors.New("unsupported definition format")
)

// DefinitionError describes why a definition was rejected.
type DefinitionError struct {
	// Source names where the definition came from, typically a file name.
	Source string
	// Field is the offending field, empty when the document itself is bad.
	Field string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	msg := "invalid language definition"
	if e.Source != "" {
		msg += " " + e.Source
	}
	if e.Field != "" {
		msg += fmt.Sprintf(": field %q", e.Field)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// Is reports ErrInvalidDefinition for every DefinitionError.
func (e *DefinitionError) Is(target error) bool {
	return target == ErrInvalidDefinition
}

func fieldError(field string, err error) *DefinitionError {
	return &DefinitionError{Field: field, Err: err}
}

var (
	errMissing   = errors.New("missing")
	errWrongType = errors.New("wrong type")
	errMalformed = errors.New("malformed document")
)
