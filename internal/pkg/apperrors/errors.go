package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the caller boundary. Handlers map kinds to
// HTTP status codes; messages attached to Authentication and Internal errors
// must stay generic since they are shown to clients.
type Kind int

const (
	// KindInternal is an unexpected failure in this service or a collaborator
	KindInternal Kind = iota
	// KindAuthentication covers bad credentials, bad/expired/tampered tokens and OTP mismatches
	KindAuthentication
	// KindPermission means authenticated but lacking a required role
	KindPermission
	// KindValidation means malformed input
	KindValidation
	// KindRateLimit means a request quota was exceeded
	KindRateLimit
	// KindUnavailable means a feature is disabled or a dependency is unconfigured
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindPermission:
		return "permission"
	case KindValidation:
		return "validation"
	case KindRateLimit:
		return "rate_limit"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error is a tagged error carrying a client-safe message and an optional cause
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is allows errors.Is matching on kind via the sentinel helpers below
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Authentication creates an authentication failure with a client-safe message
func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Permission creates a permission-denied error
func Permission(message string) *Error {
	return &Error{Kind: KindPermission, Message: message}
}

// Validation creates a validation error
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// RateLimit creates a rate-limit-exceeded error
func RateLimit(message string) *Error {
	return &Error{Kind: KindRateLimit, Message: message}
}

// Unavailable creates an error for a disabled feature or unconfigured dependency
func Unavailable(message string) *Error {
	return &Error{Kind: KindUnavailable, Message: message}
}

// Internal wraps an unexpected failure with a generic client-safe message
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal for untagged errors
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message of err, or fallback for untagged errors
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
