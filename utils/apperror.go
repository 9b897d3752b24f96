package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the machine-readable category of a business error.
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindForbidden       Kind = "forbidden"
	KindInvalidArgument Kind = "invalid_argument"
	KindInvalidState    Kind = "invalid_state"
	KindConflict        Kind = "conflict"
	KindInternal        Kind = "internal"
)

// AppError is returned by service operations when a precondition is not met.
// Message names the blocker and is safe to show to the caller.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func NewAppError(kind Kind, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *AppError {
	return NewAppError(KindNotFound, format, args...)
}

func Forbidden(format string, args ...any) *AppError {
	return NewAppError(KindForbidden, format, args...)
}

func InvalidArgument(format string, args ...any) *AppError {
	return NewAppError(KindInvalidArgument, format, args...)
}

func InvalidState(format string, args ...any) *AppError {
	return NewAppError(KindInvalidState, format, args...)
}

func Conflict(format string, args ...any) *AppError {
	return NewAppError(KindConflict, format, args...)
}

// Internal wraps an infrastructure failure.
func Internal(err error, format string, args ...any) *AppError {
	e := NewAppError(KindInternal, format, args...)
	e.Err = err
	return e
}

// KindOf returns the kind of err, or KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error kind onto a response status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidArgument, KindInvalidState, KindConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message to render for err. Internal details stay in the logs.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "Internal Server Error"
}
