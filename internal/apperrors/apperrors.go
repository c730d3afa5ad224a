// Package apperrors defines the error taxonomy shared by services,
// repositories and the HTTP boundary. Handlers return these errors and a
// single Fiber error handler maps them onto status codes, so business code
// never touches HTTP statuses directly.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	// KindInternal is anything we could not classify; surfaced as 500.
	KindInternal Kind = iota
	// KindValidation is a required-field or shape violation; surfaced as 400.
	KindValidation
	// KindDuplicate is a unique-constraint violation on create; surfaced as 400.
	KindDuplicate
	// KindNotFound covers both a genuinely missing document and a malformed
	// identifier; surfaced as 404 without distinguishing the two.
	KindNotFound
)

// Error is the concrete error type carried through the service layer.
type Error struct {
	Kind    Kind
	Message string
	// Field names the conflicting field for duplicate errors; empty otherwise.
	Field string
	// Err is the wrapped underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validationf builds a validation failure.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Duplicatef builds a duplicate-resource failure naming the conflicting field.
func Duplicatef(field, format string, args ...interface{}) *Error {
	return &Error{Kind: KindDuplicate, Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a not-found failure.
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unclassified failure with a caller-facing message.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain; plain errors are internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsDuplicate reports whether err is a duplicate-resource failure.
func IsDuplicate(err error) bool {
	return KindOf(err) == KindDuplicate
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}
