// Package httputil renders JSON envelopes and maps domain error codes to HTTP statuses.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "onboard/pkg/domain-errors"
)

// ErrorResponse is the failure envelope: {success:false, error, code}.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError classifies err and writes the failure envelope.
// Internal errors never echo their message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := StatusFor(code)

	msg := "internal server error"
	if de, ok := dErrors.From(err); ok && status < http.StatusInternalServerError {
		msg = de.Message
	}
	WriteJSON(w, status, ErrorResponse{Success: false, Error: msg, Code: string(code)})
}

// StatusFor maps a domain error code to an HTTP status.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidInput,
		dErrors.CodeInvalidToken, dErrors.CodeMissingClientContext, dErrors.CodeUnsupportedEntityType,
		dErrors.CodeInvariantViolation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeInviteExpired:
		return http.StatusGone
	case dErrors.CodeRateLimited:
		return http.StatusTooManyRequests
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes the request body into v, rejecting malformed payloads.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "invalid JSON body")
	}
	return nil
}
