// Package apperr defines the typed failures raised by the service layer and
// the HTTP status each one maps to.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failure
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unexpected"
	}
}

// UnexpectedMessage is the only text shown to clients for unclassified errors
const UnexpectedMessage = "An unexpected error occurred"

// Error is a classified failure
type Error struct {
	Kind    Kind
	Entity  string
	Field   string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports that an entity of the given type does not exist
func NotFound(entity string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Entity:  entity,
		Message: entity + " not found",
	}
}

// Conflict reports a uniqueness violation on field
func Conflict(entity, field string) *Error {
	return &Error{
		Kind:    KindConflict,
		Entity:  entity,
		Field:   field,
		Message: capitalize(field) + " already exists",
	}
}

// ValidationFailed reports every invalid field at once
func ValidationFailed(fields map[string]string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "Validation Error",
		Fields:  fields,
	}
}

// Unavailable reports that a dependency could not be reached
func Unavailable(dependency string, err error) *Error {
	return &Error{
		Kind:    KindUnavailable,
		Entity:  dependency,
		Message: capitalize(dependency) + " service unavailable",
		Err:     err,
	}
}

// KindOf returns the kind of err, KindUnexpected when it is not an *Error
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// Is reports whether err is an *Error of the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps a kind to its response status
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusForbidden
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
