package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSessionUnavailable is returned when no host session exists and none can be created.
	ErrSessionUnavailable = errors.New("host session unavailable")

	// ErrElementNotFound is returned when every known locator for a field failed.
	ErrElementNotFound = errors.New("element not found")

	// ErrValidation is returned for malformed row input.
	ErrValidation = errors.New("validation failed")

	// ErrPersistence is returned when the workbook cannot be written to disk.
	ErrPersistence = errors.New("workbook persistence failed")

	// ErrStatusLine is returned when a status bar message does not carry a document number.
	ErrStatusLine = errors.New("unparseable status line")
)

// ValidationError reports a row that cannot be classified or built
type ValidationError struct {
	RowIndex int
	Code     string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d: cost object %q: %s", e.RowIndex, e.Code, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ElementNotFoundError lists every locator that was tried for a logical field
type ElementNotFoundError struct {
	Field string
	Tried []string
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("field %s: no locator matched (tried %s)", e.Field, strings.Join(e.Tried, ", "))
}

// Unwrap lets errors.Is match ErrElementNotFound
func (e *ElementNotFoundError) Unwrap() error {
	return ErrElementNotFound
}

// PersistenceError wraps a workbook save failure
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("save workbook %s: %v", e.Path, e.Err)
}

// Is lets errors.Is match ErrPersistence
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
