// Package apierror provides the canonical error taxonomy shared by services
// and handlers. All errors returned to clients go through this package to
// ensure consistency and to prevent leaking internal details (stack traces,
// DB errors, etc.).
//
// Kinds:
//   - Validation: a caller-supplied value violates a precondition. 422.
//   - Conflict:   the action would violate a uniqueness or ordering invariant. 409.
//   - NotFound:   the referenced entity does not exist. 404.
//   - Network:    an upstream dependency could not be reached. 502.
package apierror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindNetwork
)

// Error carries a user-facing message plus a kind used for the HTTP mapping.
// The wrapped cause (if any) is logged server-side, never serialized.
type Error struct {
	Kind   Kind
	Detail string
	cause  error
}

func (e *Error) Error() string { return e.Detail }
func (e *Error) Unwrap() error { return e.cause }

// Status maps the kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func Validation(detail string) *Error { return &Error{Kind: KindValidation, Detail: detail} }
func Conflict(detail string) *Error   { return &Error{Kind: KindConflict, Detail: detail} }
func NotFound(detail string) *Error   { return &Error{Kind: KindNotFound, Detail: detail} }

// Network wraps a transport failure. The cause is retained for logs only.
func Network(detail string, cause error) *Error {
	return &Error{Kind: KindNetwork, Detail: detail, cause: cause}
}

// Internal wraps an unexpected failure behind a generic client message.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Detail: "internal server error", cause: cause}
}

// StatusOf returns the HTTP status for any error, defaulting to 500.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status()
	}
	return http.StatusInternalServerError
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}

// Body is the canonical JSON envelope for all 4xx/5xx responses.
type Body struct {
	Detail string `json:"detail"`
}

func New(msg string) *Body { return &Body{Detail: msg} }

// ValidationBody wraps multiple field errors from request binding.
type ValidationBody struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationBody {
	return &ValidationBody{Detail: "validation error", Fields: fields}
}
