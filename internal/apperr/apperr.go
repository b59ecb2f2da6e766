// Package apperr defines the error taxonomy shared by the scheduler,
// storage, and web layers.
package apperr

import (
	"errors"
	"fmt"
)

// Code identifies a class of scheduler error.
type Code string

const (
	// CodeNotFound indicates a card, schedule, or owner does not exist.
	CodeNotFound Code = "NOT_FOUND"
	// CodeUnauthorized indicates the caller does not own the referenced record.
	CodeUnauthorized Code = "UNAUTHORIZED"
	// CodeInvalidSchedule indicates an empty or non-positive interval curve.
	CodeInvalidSchedule Code = "INVALID_SCHEDULE"
	// CodeInvalidInput indicates a request payload that fails validation.
	CodeInvalidInput Code = "INVALID_INPUT"
	// CodeInvalidCardState indicates an outcome submitted for a non-active card.
	CodeInvalidCardState Code = "INVALID_CARD_STATE"
	// CodeMalformedTemporalData indicates a stored date is not a valid instant.
	CodeMalformedTemporalData Code = "MALFORMED_TEMPORAL_DATA"
	// CodeVersionConflict indicates a concurrent update won the card row.
	CodeVersionConflict Code = "VERSION_CONFLICT"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// CodeOf extracts the Code from err, or "" when err carries none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is lets coded errors match each other by code alone, so callers can
// test with a sentinel like errors.Is(err, NotFound("")).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NotFound creates a not-found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// Unauthorized creates an ownership error.
func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

// InvalidSchedule creates an invalid-curve error.
func InvalidSchedule(msg string, cause error) *Error {
	return &Error{Code: CodeInvalidSchedule, Message: msg, Cause: cause}
}

// InvalidInput creates a request-validation error.
func InvalidInput(msg string, cause error) *Error {
	return &Error{Code: CodeInvalidInput, Message: msg, Cause: cause}
}

// InvalidCardState creates an invalid-lifecycle error.
func InvalidCardState(msg string) *Error {
	return &Error{Code: CodeInvalidCardState, Message: msg}
}

// MalformedTemporalData creates a bad-stored-date error.
func MalformedTemporalData(msg string) *Error {
	return &Error{Code: CodeMalformedTemporalData, Message: msg}
}

// VersionConflict creates a concurrent-update error.
func VersionConflict(msg string) *Error {
	return &Error{Code: CodeVersionConflict, Message: msg}
}
