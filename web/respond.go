// Package web holds the HTTP boundary helpers shared by all feature packages:
// JSON encoding and decoding, the problem-details error writer, request
// logging, and translation of validator failures into field errors.
package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/drimcity/drimcity-go/apperror"
)

// Problem is the problem-details error envelope returned on every error
// response. Errors is populated for validation failures, Code for logic
// conflicts.
type Problem struct {
	Title   string               `json:"title"`
	Type    string               `json:"type"`
	Detail  string               `json:"detail"`
	Status  int                  `json:"status"`
	TraceID string               `json:"traceId"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
	Code    string               `json:"code,omitempty"`
}

// statusType returns a stable URI identifying the error class.
func statusType(status int) string {
	return "https://developer.mozilla.org/en-US/docs/Web/HTTP/Status/" + strconv.Itoa(status)
}

// NewProblem renders an application error as a problem-details payload. The
// dispatch over kinds is exhaustive; anything unclassified is rendered as an
// internal error with a generic detail so internals never leak.
func NewProblem(appErr *apperror.Error, traceID string) Problem {
	status := appErr.StatusCode()
	p := Problem{
		Type:    statusType(status),
		Status:  status,
		TraceID: traceID,
	}

	switch appErr.Kind {
	case apperror.Validation:
		p.Title = "Validation failed"
		p.Detail = appErr.Message
		p.Errors = appErr.Fields
	case apperror.LogicConflict:
		p.Title = "Logic conflict"
		p.Detail = appErr.Message
		p.Code = appErr.Code
	case apperror.Unauthorized:
		p.Title = "Unauthorized"
		p.Detail = appErr.Message
	case apperror.NotFound:
		p.Title = "Not found"
		p.Detail = appErr.Message
	case apperror.Timeout:
		p.Title = "Timeout"
		p.Detail = "Request timed out"
	case apperror.Internal, apperror.Database, apperror.Config:
		p.Title = "Internal error"
		p.Detail = "Internal server error has occurred"
	default:
		p.Title = "Internal error"
		p.Detail = "Internal server error has occurred"
	}

	return p
}

// RespondJSON writes data as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
	}
}

// RespondError translates any error into a problem-details response. Server
// faults are logged with their underlying cause; the response body never
// carries internals, only the traceId correlating to the log line.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.FromError(err)
	traceID := middleware.GetReqID(r.Context())

	if appErr.StatusCode() >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().
			Err(appErr).
			Str("request_id", traceID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}

	problem := NewProblem(appErr, traceID)
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	if err := json.NewEncoder(w).Encode(problem); err != nil {
		http.Error(w, `{"error":"failed to encode error response"}`, http.StatusInternalServerError)
	}
}

// DecodeJSON decodes the request body into dst, converting malformed JSON
// into a Validation error with a body-level field entry.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.NewValidationError(apperror.FieldError{
			Field:   "body",
			Message: "Request body is not valid JSON",
			Code:    "body_must_be_valid_json",
		})
	}
	return nil
}
