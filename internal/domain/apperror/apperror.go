package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure for the transport layer.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation: malformed or out-of-range input; recoverable by the caller.
	KindValidation
	// KindNotFound: missing record, or a record the actor is not in scope for.
	// The two cases are deliberately indistinguishable.
	KindNotFound
	// KindConflict: the operation collides with the record's current state
	// (terminal-state re-decision, deletion of a decided request, ...).
	KindConflict
	// KindInvariant: a derived state that should be impossible; indicates a
	// tenant/segment misconfiguration, not a caller mistake.
	KindInvariant
	// KindDependency: an external collaborator failed or returned incomplete data.
	KindDependency
)

// Error is the single error type crossing operation boundaries.
// Field is set for validation errors where one input is at fault.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: msg}
}

func Validationf(field, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Invariant(msg string) *Error {
	return &Error{Kind: KindInvariant, Message: msg}
}

func Dependency(msg string, err error) *Error {
	return &Error{Kind: KindDependency, Message: msg, Err: err}
}

// From unwraps err into an *Error, or wraps it as KindUnknown.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Kind: KindUnknown, Message: err.Error(), Err: err}
}

// KindOf returns the Kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

func IsKind(err error, k Kind) bool { return KindOf(err) == k }
