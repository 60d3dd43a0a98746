package schema

import (
	"fmt"
	"strings"

	"github.com/wasmregistry/codemap/pkg/errors"
)

// FieldError represents a validation failure at a specific path.
type FieldError struct {
	Path    string // Value path (e.g., "contracts[3].release.url")
	Message string // Human-readable error message
}

// Error implements the error interface
func (e *FieldError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Is implements errors.Is support
func (e *FieldError) Is(target error) bool {
	return target == errors.ErrInvalidInput
}

// Errors collects every validation failure found in one pass.
type Errors struct {
	Errors []*FieldError
}

// Error implements the error interface
func (e *Errors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&b, "\n  - %s", err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying errors for errors.Is/As compatibility.
func (e *Errors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Add appends a validation error.
func (e *Errors) Add(path, message string) {
	e.Errors = append(e.Errors, &FieldError{Path: path, Message: message})
}

// AddError appends an existing FieldError.
func (e *Errors) AddError(err *FieldError) {
	e.Errors = append(e.Errors, err)
}

// HasErrors returns true if any errors were collected.
func (e *Errors) HasErrors() bool {
	return len(e.Errors) > 0
}

// ToError returns nil if no errors, otherwise returns self.
func (e *Errors) ToError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// Messages returns the collected errors as plain strings, one per violation.
func (e *Errors) Messages() []string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return msgs
}
