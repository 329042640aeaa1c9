// Package errors provides structured error types for the isnad service.
//
// Every error that crosses a package boundary carries a machine-readable
// [Code] so the CLI and the HTTP API can map it to an exit status or a
// response status without string matching.
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: input validation failures
//   - *NOT_FOUND: resource not found
//   - REPOSITORY_ERROR, NETWORK_ERROR, TIMEOUT: backing store failures
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidHadithID, "hadith id cannot be empty")
//	if errors.Is(err, errors.ErrCodeInvalidHadithID) {
//	    // Handle validation error
//	}
//
//	// Wrap a backend error
//	err := errors.Wrap(errors.ErrCodeRepository, origErr, "fetch narrators")
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidIndex    Code = "INVALID_INDEX"
	ErrCodeInvalidHadithID Code = "INVALID_HADITH_ID"
	ErrCodeInvalidQuery    Code = "INVALID_QUERY"
	ErrCodeInvalidPage     Code = "INVALID_PAGE"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeHadithNotFound   Code = "HADITH_NOT_FOUND"
	ErrCodeNarratorNotFound Code = "NARRATOR_NOT_FOUND"

	// Backing store errors
	ErrCodeRepository Code = "REPOSITORY_ERROR"
	ErrCodeNetwork    Code = "NETWORK_ERROR"
	ErrCodeTimeout    Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error carries a Code next to the message. Message is safe to show to
// API clients; Cause is logged, not returned.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets the standard errors.Is match on code alone:
//
//	errors.Is(err, &Error{Code: ErrCodeHadithNotFound})
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Message == "" && t.Cause == nil && t.Code == e.Code
}

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code. A
// REPOSITORY_ERROR wrapping a NOT_FOUND is a repository error.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without code or cause, or err.Error()
// for errors without a code.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error to the response status the API reports for it.
func HTTPStatus(err error) int {
	code := GetCode(err)
	switch {
	case code == "":
		return http.StatusInternalServerError
	case strings.HasPrefix(string(code), "INVALID_"):
		return http.StatusBadRequest
	case strings.HasSuffix(string(code), "NOT_FOUND"):
		return http.StatusNotFound
	case code == ErrCodeRepository, code == ErrCodeNetwork:
		return http.StatusBadGateway
	case code == ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case code == ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
