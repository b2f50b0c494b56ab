// Package errors provides structured error types for chartkit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, CLI and preview server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - EMPTY_*: Nothing to compute (callers render an empty state instead)
//   - INVALID_*: Input validation failures (caller precondition violations)
//   - NOT_FOUND_*: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// Interaction edge cases (stale or out-of-bounds indices) never produce an
// error: they are clamped or degrade to a "no position" sentinel.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEmptyDomain, "no categories for band scale")
//	if errors.Is(err, errors.ErrCodeEmptyDomain) {
//	    // Render the empty state
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidChart, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Nothing to scale
	ErrCodeEmptyDomain Code = "EMPTY_DOMAIN"

	// Input validation errors
	ErrCodeInvalidRange  Code = "INVALID_RANGE"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidChart  Code = "INVALID_CHART"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsCallerError reports whether err is a precondition violation by the
// caller (an empty domain or any INVALID_* code) rather than an internal
// failure.
func IsCallerError(err error) bool {
	switch GetCode(err) {
	case ErrCodeEmptyDomain, ErrCodeInvalidRange, ErrCodeInvalidInput,
		ErrCodeInvalidFormat, ErrCodeInvalidChart:
		return true
	}
	return false
}

// EmptyDomain returns an EMPTY_DOMAIN error for the named scale or axis.
func EmptyDomain(what string) *Error {
	return New(ErrCodeEmptyDomain, "%s has an empty domain", what)
}

// InvalidRange returns an INVALID_RANGE error for a pixel range.
func InvalidRange(from, to float64) *Error {
	return New(ErrCodeInvalidRange, "pixel range [%g, %g] must have a positive, finite length", from, to)
}
