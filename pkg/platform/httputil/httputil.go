// Package httputil writes JSON responses and translates domain errors to
// HTTP statuses.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "didpool/pkg/domain-errors"
)

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the error envelope for err. Server-side failures carry
// only the code so internal detail does not leak.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := StatusFor(code)
	body := map[string]string{"error": string(code)}
	if status < http.StatusInternalServerError {
		var de *dErrors.Error
		if errors.As(err, &de) {
			body["error_description"] = de.Message
		}
	}
	WriteJSON(w, status, body)
}

// StatusFor maps a domain error code to an HTTP status.
func StatusFor(code dErrors.Code) int {
	switch {
	case code.Is(dErrors.CodeInvalidInput):
		return http.StatusBadRequest
	case code.Is(dErrors.CodePoolNotFound):
		return http.StatusNotFound
	case code.Is(dErrors.CodeTaaMismatch):
		return http.StatusConflict
	case code.Is(dErrors.CodeTaaConfigurationRequired):
		return http.StatusPreconditionFailed
	case code.Is(dErrors.CodePoolNotConfigured):
		return http.StatusServiceUnavailable
	case code.Is(dErrors.CodeResolution), code.Is(dErrors.CodeLedgerClient):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
