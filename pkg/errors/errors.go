// Package errors provides the structured error type shared by the CLI
// and the HTTP surface.
//
// Every failure that crosses a package boundary carries a machine
// readable [Code] next to its human readable message, so callers can
// branch on the category without string matching:
//
//	err := errors.New(errors.ErrCodeInvalidLanguage, "unknown language name: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidLanguage) {
//	    // reject the input
//	}
//
// Wrapping preserves the cause for the standard errors.Is/As chain:
//
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to fetch %s", title)
//
// Codes group by category: INVALID_* for input validation,
// *_NOT_FOUND for missing resources, NETWORK_ERROR / TIMEOUT /
// RATE_LIMITED for transport failures, and API_ERROR / EDIT_CONFLICT /
// UNAUTHORIZED for wiki API replies.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	// Input validation
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidLanguage Code = "INVALID_LANGUAGE"
	ErrCodeInvalidTitle    Code = "INVALID_TITLE"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Markup structure
	ErrCodeHeaderStructure Code = "HEADER_STRUCTURE"
	ErrCodePageSkipped     Code = "PAGE_SKIPPED"

	// Missing resources
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodePageNotFound     Code = "PAGE_NOT_FOUND"
	ErrCodeCategoryNotFound Code = "CATEGORY_NOT_FOUND"

	// Transport
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Wiki API replies
	ErrCodeAPI          Code = "API_ERROR"
	ErrCodeEditConflict Code = "EDIT_CONFLICT"
	ErrCodeUnauthorized Code = "UNAUTHORIZED"

	// Everything else
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a Code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes the cause to the errors.Is/As chain.
func (e *Error) Unwrap() error { return e.Cause }

// New builds an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error around an existing cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain carries code.
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// GetCode returns the code of the first *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage strips the code prefix for display. Plain errors pass
// through unchanged.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// RateLimitedError carries the server's suggested wait for a
// rate-limited reply.
type RateLimitedError struct {
	RetryAfter int // seconds
	Message    string
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code returns ErrCodeRateLimited.
func (e *RateLimitedError) Code() Code { return ErrCodeRateLimited }
