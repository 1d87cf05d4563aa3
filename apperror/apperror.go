// Package apperror defines the application's error taxonomy. Every failure a
// request can surface is classified into a Kind, and each Kind knows its HTTP
// status code. Handlers and services raise these typed errors at the point of
// detection; the web layer translates them into problem-details payloads at
// the outermost request boundary.
package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	// Internal is an unexpected fault. Clients only ever see a generic detail.
	Internal Kind = iota
	// Validation is one or more field-level rule violations.
	Validation
	// LogicConflict is a state-dependent business rule violation, such as a
	// duplicate login.
	LogicConflict
	// Unauthorized covers missing or invalid credentials and unparseable
	// identity claims.
	Unauthorized
	// NotFound means a referenced resource is absent.
	NotFound
	// Timeout means the operation exceeded its deadline or the client went away.
	Timeout
	// Database is a datastore fault. Rendered like Internal.
	Database
	// Config is a configuration fault. Fatal at startup; rendered like Internal
	// should it ever reach a response.
	Config
)

// FieldError describes a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error is the application error type. Message is user-facing; Err carries the
// underlying cause for logs and errors.Is/As inspection and is never rendered
// to clients.
type Error struct {
	Kind    Kind
	Message string
	// Code is the machine-readable conflict code, set for LogicConflict.
	Code string
	// Fields holds per-field violations, set for Validation.
	Fields []FieldError
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to its HTTP status code.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case LogicConflict:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case Timeout:
		return http.StatusGatewayTimeout
	case Database, Config, Internal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// New creates an Error of an arbitrary kind.
func New(kind Kind, message string, underlying error) *Error {
	return &Error{Kind: kind, Message: message, Err: underlying}
}

// NewValidationError creates a Validation error from field-level violations.
func NewValidationError(fields ...FieldError) *Error {
	return &Error{Kind: Validation, Message: "Validation failed", Fields: fields}
}

// NewLogicConflictError creates a LogicConflict error with its machine-readable
// code.
func NewLogicConflictError(message, code string) *Error {
	return &Error{Kind: LogicConflict, Message: message, Code: code}
}

// NewUnauthorizedError creates an Unauthorized error.
func NewUnauthorizedError(message string, underlying error) *Error {
	return New(Unauthorized, message, underlying)
}

// NewNotFoundError creates a NotFound error.
func NewNotFoundError(message string, underlying error) *Error {
	return New(NotFound, message, underlying)
}

// NewTimeoutError creates a Timeout error.
func NewTimeoutError(underlying error) *Error {
	return New(Timeout, "Request timed out", underlying)
}

// NewInternalError creates an Internal error.
func NewInternalError(message string, underlying error) *Error {
	return New(Internal, message, underlying)
}

// NewDatabaseError creates a Database error.
func NewDatabaseError(message string, underlying error) *Error {
	return New(Database, message, underlying)
}

// NewConfigError creates a Config error.
func NewConfigError(message string, underlying error) *Error {
	return New(Config, message, underlying)
}

// FromError coerces any error into an *Error. Context cancellation and
// deadline expiry become Timeout so operators can tell abandoned requests from
// genuine faults; everything else unclassified becomes Internal.
func FromError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewTimeoutError(err)
	}
	return NewInternalError("unexpected error", err)
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == NotFound
}

// IsUnauthorized reports whether err is an Unauthorized error.
func IsUnauthorized(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == Unauthorized
}

// IsValidation reports whether err is a Validation error.
func IsValidation(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == Validation
}

// IsLogicConflict reports whether err is a LogicConflict error.
func IsLogicConflict(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == LogicConflict
}
