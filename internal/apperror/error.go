// Package apperror defines the error taxonomy shared by every layer of visa.
package apperror

import (
	"errors"
	"fmt"
)

// Error is a classified application error.
type Error struct {
	Code    string // Error code (e.g., NOT_FOUND)
	Message string // User-facing message
	Fields  map[string]string
	Err     error // Wrapped original error (optional)
}

// Error implements error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements errors.Unwrap interface for errors.Is/As
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error carrying the same code, so sentinels such as
// ErrNotFound work with errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// New creates a new Error without wrapping
func New(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates an Error that wraps an existing error
func Wrap(err error, code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Storage wraps a driver error as a storage failure.
func Storage(err error, message string) *Error {
	return Wrap(err, CodeStorage, message)
}

// NotFound reports a missing query or update target.
func NotFound(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// Validation builds a validation error carrying per-field messages.
func Validation(fields map[string]string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: validationMessage(fields),
		Fields:  fields,
	}
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return CodeOf(err) == code
}
