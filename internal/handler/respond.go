// Package handler implements the HTTP surface of the GlobalTrotter API.
// Handlers decode and validate request bodies, resolve the authenticated
// user, call into the service layer, and translate domain errors into the
// API's error envelope.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
)

// errorBody is the JSON envelope returned for every non-2xx response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v as the response body with the given status.
// Encoding failures are logged; by then the status line is already sent.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.ErrorContext(r.Context(), "encode response", "error", err)
	}
}

// writeError maps err onto the API's status codes and error envelope.
// Domain sentinels map to their documented statuses; anything unrecognized
// becomes a 500 with a generic message so internals never leak to clients.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrAccessDenied):
		status, code = http.StatusForbidden, "access_denied"
	case errors.Is(err, domain.ErrDuplicateBudget):
		status, code = http.StatusConflict, "duplicate_budget"
	case errors.Is(err, domain.ErrEmailTaken):
		status, code = http.StatusConflict, "email_taken"
	case errors.Is(err, domain.ErrInvalidAmount):
		status, code = http.StatusUnprocessableEntity, "invalid_amount"
	case errors.Is(err, domain.ErrInvalidOperation):
		status, code = http.StatusUnprocessableEntity, "invalid_operation"
	case errors.Is(err, domain.ErrValidation):
		status, code = http.StatusUnprocessableEntity, "validation_failed"
	}

	msg := clientMessage(err, status)
	if status >= 500 {
		s.log.ErrorContext(r.Context(), "request failed", "error", err)
	}
	s.writeJSON(w, r, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

// writeBadRequest reports a malformed request (unparseable JSON, bad UUID,
// bad query parameter) as a 400.
func (s *Server) writeBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	s.writeJSON(w, r, http.StatusBadRequest, errorBody{Error: errorDetail{Code: "bad_request", Message: msg}})
}

// isAccessDenied reports whether err wraps domain.ErrAccessDenied.
func isAccessDenied(err error) bool {
	return errors.Is(err, domain.ErrAccessDenied)
}

// writeDecodeError reports a request body that failed to decode or validate.
// Struct validation failures are 422; unparseable JSON is 400.
func (s *Server) writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		s.writeJSON(w, r, http.StatusUnprocessableEntity, errorBody{Error: errorDetail{Code: "validation_failed", Message: err.Error()}})
		return
	}
	s.writeBadRequest(w, r, err.Error())
}

// clientMessage strips the internal "service.X.Y:" wrapping prefixes from
// err so clients see only the tail of the chain. 5xx errors always get a
// generic message.
func clientMessage(err error, status int) string {
	if status >= 500 {
		return "internal server error"
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 && strings.HasPrefix(msg, "service.") {
		msg = msg[i+2:]
	}
	return msg
}
