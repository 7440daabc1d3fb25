// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"github.com/pkg/errors"

	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/store"
)

// Kind classifies a workflow failure.
type Kind string

const (
	KindValidationFailed  Kind = "validation_failed"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindPersistenceFailed Kind = "persistence_failed"
	KindUnexpected        Kind = "unexpected"
)

// Error is returned by every Service operation. Message is short and stable
// enough to show to users; Issues lists every field violation for
// KindValidationFailed.
type Error struct {
	Kind    Kind
	Message string
	Issues  []models.FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err. Errors not produced by this package are
// KindUnexpected; a nil error has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// IssuesOf returns the field violations carried by err, if any.
func IssuesOf(err error) []models.FieldError {
	var e *Error
	if errors.As(err, &e) {
		return e.Issues
	}
	return nil
}

func validationFailed(message string, issues ...models.FieldError) *Error {
	return &Error{Kind: KindValidationFailed, Message: message, Issues: issues}
}

func unauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Message: "Authentication required"}
}

func forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func notFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func persistenceFailed(message string, err error) *Error {
	return &Error{Kind: KindPersistenceFailed, Message: message, Err: err}
}

func unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: "An unexpected error occurred", Err: err}
}

// storeMessage is the message a store failure reports about itself
func storeMessage(err error) string {
	var se *store.Error
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return err.Error()
}
