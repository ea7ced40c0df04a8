package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avashisht/homeplan-core/internal/device"
	"github.com/avashisht/homeplan-core/internal/tinxy"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes.
const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeNotFound    = "not_found"
	ErrCodeConflict    = "conflict"
	ErrCodeUpstream    = "upstream_error"
	ErrCodeInternal    = "internal_error"
	ErrCodeUnavailable = "unavailable"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// writeCommandError maps a controller error onto an HTTP response.
//
// Mapping:
//   - invalid symbolic state       -> 400
//   - undetermined current state   -> 409 (toggle refused, state unknown)
//   - vendor timeout / connection
//     failure / HTTP error         -> 502
//   - anything else                -> 500
func writeCommandError(w http.ResponseWriter, err error) {
	var httpErr *tinxy.HTTPError

	switch {
	case errors.Is(err, device.ErrInvalidState):
		writeBadRequest(w, err.Error())
	case errors.Is(err, tinxy.ErrStateUndetermined):
		writeError(w, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, tinxy.ErrTimeout),
		errors.Is(err, tinxy.ErrConnectionFailed),
		errors.Is(err, tinxy.ErrMalformedResponse),
		errors.As(err, &httpErr):
		writeError(w, http.StatusBadGateway, ErrCodeUpstream, err.Error())
	default:
		writeInternalError(w, err.Error())
	}
}
