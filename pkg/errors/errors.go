// Package errors provides structured error types for Framewright.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, TUI and HTTP API
//   - Machine-readable reason codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Reason Codes
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND_*: Resource not found
//   - CONSTRAINT_*: Recoverable domain constraint outcomes
//   - STORE_*: Persistence failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "unknown panel type: %s", t)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStoreWrite, origErr, "save assembly %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable reason code.
type Code string

// Reason codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidNodeType   Code = "INVALID_NODE_TYPE"
	ErrCodeInvalidPanelType  Code = "INVALID_PANEL_TYPE"
	ErrCodeInvalidAssemblyID Code = "INVALID_ASSEMBLY_ID"
	ErrCodeInvalidDimension  Code = "INVALID_DIMENSION"
	ErrCodeDuplicateID       Code = "DUPLICATE_ID"

	// Resource not found errors
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeNodeNotFound     Code = "NODE_NOT_FOUND"
	ErrCodePanelNotFound    Code = "PANEL_NOT_FOUND"
	ErrCodeAssemblyNotFound Code = "ASSEMBLY_NOT_FOUND"

	// Recoverable domain constraint outcomes
	ErrCodeConstraintClamped Code = "CONSTRAINT_CLAMPED"
	ErrCodeMissingReference  Code = "MISSING_REFERENCE"
	ErrCodeChainBroken       Code = "CHAIN_BROKEN"

	// Persistence errors
	ErrCodeStoreRead  Code = "STORE_READ"
	ErrCodeStoreWrite Code = "STORE_WRITE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable reason code
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

// Is reports whether err carries the given reason code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the reason code from an error, if available.
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
