// Package apperror defines the error kinds returned by the usecase layer.
// The delivery layer maps each kind to a status code; everything else is
// treated as an internal failure.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a business-rule failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidRequest
	KindConflict
	KindInvalidState
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidRequest:
		return "invalid_request"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Error is a classified error. Sentinels are declared once per package and
// compared with errors.Is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) *Error       { return New(KindNotFound, message) }
func InvalidRequest(message string) *Error { return New(KindInvalidRequest, message) }
func Conflict(message string) *Error       { return New(KindConflict, message) }
func InvalidState(message string) *Error   { return New(KindInvalidState, message) }
func Unauthorized(message string) *Error   { return New(KindUnauthorized, message) }
func Forbidden(message string) *Error      { return New(KindForbidden, message) }

// Wrap attaches detail to a sentinel while keeping errors.Is and KindOf working.
func Wrap(sentinel *Error, format string, args ...any) error {
	return &detailed{sentinel: sentinel, detail: fmt.Sprintf(format, args...)}
}

type detailed struct {
	sentinel *Error
	detail   string
}

func (d *detailed) Error() string {
	return d.sentinel.Message + ": " + d.detail
}

func (d *detailed) Unwrap() error {
	return d.sentinel
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
