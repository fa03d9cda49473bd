// Package apperrors defines the error kinds surfaced by the query and write
// paths and their mapping onto HTTP status codes.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel kinds. Match with errors.Is.
var (
	ErrInvalidQuery    = errors.New("invalid query")
	ErrInvalidInput    = errors.New("invalid input")
	ErrReferential     = errors.New("referential error")
	ErrNotFound        = errors.New("not found")
	ErrNotConfigured   = errors.New("not configured")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// Error carries the kind plus the offending field and, for enumerated
// parameters, the values that would have been accepted.
type Error struct {
	Kind    error
	Field   string
	Allowed []string
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Field != "" {
		b.WriteString(": ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Allowed) > 0 {
		fmt.Fprintf(&b, " (allowed: %s)", strings.Join(e.Allowed, ", "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == e.Kind }

// Detail is the JSON shape placed in the response envelope's errors field.
type Detail struct {
	Kind    string   `json:"kind"`
	Field   string   `json:"field,omitempty"`
	Allowed []string `json:"allowed,omitempty"`
}

func (e *Error) Detail() Detail {
	return Detail{Kind: e.Kind.Error(), Field: e.Field, Allowed: e.Allowed}
}

func InvalidQuery(field, message string, allowed ...string) *Error {
	return &Error{Kind: ErrInvalidQuery, Field: field, Message: message, Allowed: allowed}
}

func InvalidInput(field, message string) *Error {
	return &Error{Kind: ErrInvalidInput, Field: field, Message: message}
}

func Referential(field, message string) *Error {
	return &Error{Kind: ErrReferential, Field: field, Message: message}
}

func NotFound(field, message string) *Error {
	return &Error{Kind: ErrNotFound, Field: field, Message: message}
}

// NotConfigured reports that a collaborator (store, blob storage, identity) is absent.
func NotConfigured(component string) *Error {
	return &Error{Kind: ErrNotConfigured, Field: component, Message: component + " is not configured"}
}

func Unauthenticated(err error) *Error {
	return &Error{Kind: ErrUnauthenticated, Err: err}
}

func Forbidden(message string) *Error {
	return &Error{Kind: ErrForbidden, Message: message}
}

// As extracts the *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HTTPStatus maps an error onto the status code returned to clients.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidQuery), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrReferential):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotConfigured), IsStoreUnavailable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
