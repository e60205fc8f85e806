package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of failure categories the services are allowed to
// surface. Every kind maps to exactly one HTTP status class.
type Kind int

const (
	KindInvalidRequest Kind = iota // 400: malformed input or illegal transition
	KindUnauthorized               // 401: principal not authenticated
	KindForbidden                  // 403: authenticated but not permitted
	KindNotFound                   // 404: target resource does not exist
	KindConflict                   // 409: uniqueness constraint would be violated
	KindInternal                   // 500: unexpected failure or store inconsistency
)

// Status returns the HTTP status code bound to the kind.
func (k Kind) Status() int {
	switch k {
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the stable machine-readable code used in the response envelope.
func (k Kind) Code() string {
	switch k {
	case KindInvalidRequest:
		return "INVALID_REQUEST"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}

// Error carries one Kind plus a client-safe message. The wrapped cause is for
// diagnostic logging only and must never reach the response body: raw store
// errors can leak schema details.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the diagnostic cause to errors.Is/errors.As chains.
func (e *Error) Unwrap() error { return e.cause }

// New builds a taxonomy error with a client-safe message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with fmt-style formatting. The formatted result is still the
// outward message, so callers must not interpolate raw driver errors into it.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches an underlying cause for logging while keeping the outward
// message independent of it.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Internal wraps an unexpected failure with a generic outward message.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", cause: cause}
}

// From extracts the taxonomy error from err. Anything that is not already a
// taxonomy error is classified as internal, so no unmapped failure crosses
// the transport boundary.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// IsKind reports whether err is a taxonomy error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
