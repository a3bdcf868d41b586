// Package errors provides structured error types for kgviz.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP service
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Every failure of a conversion maps to exactly one code:
//   - INVALID_PATH: a path resolves outside the permitted root
//   - FILE_NOT_FOUND: the input document does not exist
//   - DECODE_ERROR: no supported text encoding yields valid JSON
//   - INVALID_STRUCTURE: the envelope, content or a record is missing a required key
//   - GRAPH_INTEGRITY: a link references a node id that does not exist
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidStructure, "knowledge graph must contain 'entities' array")
//	if errors.Is(err, errors.ErrCodeInvalidStructure) {
//	    // Handle malformed input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDecode, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeInvalidStructure Code = "INVALID_STRUCTURE"
	ErrCodeDecode           Code = "DECODE_ERROR"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Graph errors
	ErrCodeGraphIntegrity Code = "GRAPH_INTEGRITY"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// IntegrityError lists every node id referenced by a link but absent from
// the node set. Missing is sorted.
type IntegrityError struct {
	Missing []string
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%d missing nodes: %s", len(e.Missing), strings.Join(e.Missing, ", "))
}

// Code returns the error code for this error type.
func (e *IntegrityError) Code() Code {
	return ErrCodeGraphIntegrity
}

// MissingIDs returns the missing node ids carried by err, or nil if err does
// not wrap an *IntegrityError.
func MissingIDs(err error) []string {
	var ie *IntegrityError
	if errors.As(err, &ie) {
		return ie.Missing
	}
	return nil
}
