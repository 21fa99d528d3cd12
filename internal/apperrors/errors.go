// Package apperrors defines the typed domain errors the request pipeline
// translates into HTTP responses.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies a domain error for transport translation.
type Kind int

const (
	KindInternal Kind = iota
	KindConflict
	KindNotFound
	KindUnauthenticated
	KindForbidden
	KindValidation
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a typed domain error carrying enough detail to shape an HTTP
// response. Controllers return it; the handler factory translates it.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Value   string
	Details []FieldError
}

func (e *Error) Error() string {
	return e.Message
}

// Conflict reports a duplicate unique field.
func Conflict(message, field, value string) *Error {
	return &Error{Kind: KindConflict, Message: message, Field: field, Value: value}
}

// NotFound reports a missing entity.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Unauthenticated reports bad or missing credentials.
func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// Forbidden reports insufficient privileges.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Validation reports a request body that failed its schema.
func Validation(details []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Details: details}
}

// KindOf returns the kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Status maps an error kind to its HTTP status code.
func Status(k Kind) int {
	switch k {
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
