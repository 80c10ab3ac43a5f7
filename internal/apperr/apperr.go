package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error
type Kind string

const (
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not_found"
	KindInsufficientData Kind = "insufficient_data"
	KindUpstream         Kind = "upstream_unavailable"
	KindInternal         Kind = "internal"
)

// Error is the structured error returned by services
type Error struct {
	Kind    Kind
	Message string
	// Hint is an optional user-facing remedy, e.g. "add more training posts".
	Hint  string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, fmt.Sprintf(format, args...))
}

func NotFound(resource string) *Error {
	return New(KindNotFound, fmt.Sprintf("%s not found", resource))
}

func InsufficientData(message, hint string) *Error {
	return &Error{Kind: KindInsufficientData, Message: message, Hint: hint}
}

func Upstream(service string, cause error) *Error {
	return &Error{
		Kind:    KindUpstream,
		Message: fmt.Sprintf("%s unavailable", service),
		Cause:   cause,
	}
}

// Wrap attaches a message to err, keeping the kind of an existing Error
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return &Error{Kind: appErr.Kind, Message: message, Hint: appErr.Hint, Cause: err}
	}
	return &Error{Kind: KindInternal, Message: message, Cause: err}
}

// KindOf returns the kind of the first Error in err's chain, or KindInternal
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HintOf returns the hint of the first Error in err's chain
func HintOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Hint
	}
	return ""
}
