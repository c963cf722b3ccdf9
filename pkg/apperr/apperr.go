// Package apperr carries the typed failure categories used across the
// backend. Every layer wraps its failures in an AppError so the chat
// orchestrator can pick user-facing wording and the HTTP layer can pick a
// status code from the same Kind.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies the failure category.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindMalformedResponse
	KindPersistence
	KindNoLocationFound
	KindNoLocationSupplied
	KindNoLawyersFound
	KindNotFound
	KindValidation
	KindTurnInProgress
)

var kindNames = map[Kind]string{
	KindUnknown:            "UNKNOWN",
	KindNetwork:            "NETWORK_ERROR",
	KindMalformedResponse:  "MALFORMED_RESPONSE",
	KindPersistence:        "PERSISTENCE_ERROR",
	KindNoLocationFound:    "NO_LOCATION_FOUND",
	KindNoLocationSupplied: "NO_LOCATION_SUPPLIED",
	KindNoLawyersFound:     "NO_LAWYERS_FOUND",
	KindNotFound:           "NOT_FOUND",
	KindValidation:         "VALIDATION_ERROR",
	KindTurnInProgress:     "TURN_IN_PROGRESS",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// AppError is the structured error carried between layers.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates an AppError without an underlying cause.
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Newf is New with a format string.
func Newf(kind Kind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to cause. A nil cause yields nil.
func Wrap(cause error, kind Kind, message string) error {
	if cause == nil {
		return nil
	}
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

// KindOf returns the kind of the first AppError in err's chain,
// or KindUnknown when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// Persistence wraps a datastore failure.
func Persistence(cause error, message string) error {
	return Wrap(cause, KindPersistence, message)
}

// NotFound builds a NotFound error.
func NotFound(message string) *AppError {
	return New(KindNotFound, message)
}
