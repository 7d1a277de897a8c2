// Package domainerrors defines the coded error taxonomy shared by every
// service in the module. Stores return sentinel errors; services wrap or
// translate them into coded errors so transport layers can map them to
// status codes without string matching.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of failure. The string value doubles as the wire
// representation in HTTP error envelopes.
type Code string

const (
	CodeNotFound            Code = "not_found"
	CodeInvalidAmount       Code = "invalid_amount"
	CodeInsufficientFunds   Code = "insufficient_funds"
	CodeInvalidTransition   Code = "invalid_transition"
	CodeValidation          Code = "validation_error"
	CodeDuplicateMembership Code = "duplicate_membership"
	CodeBadRequest          Code = "bad_request"
	CodeInternal            Code = "internal_error"
	// CodeInvariantViolation marks a broken internal invariant. It is never
	// expected in normal operation; treat it as a fatal consistency fault.
	CodeInvariantViolation Code = "invariant_violation"
)

// Error is the concrete coded error type.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error with no underlying cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error, preserving the
// chain for errors.Is / errors.As.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Is is a readability alias for HasCode used at call sites that read like
// errors.Is.
func Is(err error, code Code) bool { return HasCode(err, code) }

// CodeOf extracts the code from err, defaulting to CodeInternal for untyped
// errors so callers never leak raw failure detail.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf returns the public message for err, empty for untyped errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}

// ToHTTPStatus maps a code to its HTTP status. Unknown codes map to 500.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidAmount, CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeInsufficientFunds:
		return http.StatusUnprocessableEntity
	case CodeInvalidTransition, CodeDuplicateMembership:
		return http.StatusConflict
	case CodeInternal, CodeInvariantViolation:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
