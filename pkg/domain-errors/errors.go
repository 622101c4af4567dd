// Package domainerrors carries typed error codes across layers so transports can
// classify failures without inspecting messages.
package domainerrors

import (
	"errors"
)

// Code classifies a domain error. Transports map codes to status codes.
type Code string

const (
	CodeBadRequest         Code = "bad_request"
	CodeValidation         Code = "validation_error"
	CodeInvalidInput       Code = "invalid_input"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeInvariantViolation Code = "invariant_violation"
	CodeTimeout            Code = "timeout"
	CodeRateLimited        Code = "rate_limited"
	CodeInternal           Code = "internal_error"

	// Onboarding taxonomy.
	CodeInvalidToken          Code = "invalid_token"
	CodeInviteExpired         Code = "invite_expired"
	CodeMissingClientContext  Code = "missing_client_context"
	CodeUnsupportedEntityType Code = "unsupported_entity_type"
)

// Error is a domain error with a stable code and a human readable message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a domain error with the given code.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
// Returns nil when err is nil.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// From extracts the outermost domain error from the chain.
func From(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether the outermost domain error in the chain carries code.
func HasCode(err error, code Code) bool {
	de, ok := From(err)
	return ok && de.Code == code
}

// Is is an alias for HasCode kept for call sites that read better with it.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the code of err, or CodeInternal for non-domain errors.
func CodeOf(err error) Code {
	if de, ok := From(err); ok {
		return de.Code
	}
	return CodeInternal
}
