// ABOUTME: Maps service errors onto HTTP status codes and a JSON error envelope
// ABOUTME: Not-found responses use a fixed message so ownership never leaks

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/seapoint/taskboard/internal/service"
)

// errorBody is the generic JSON error envelope for non-401 failures.
type errorBody struct {
	Error string `json:"error"`
}

// writeError recovers a service error into a structured response. Unexpected
// errors are logged with full detail and surfaced as a bare 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		// Fixed message: a resource owned by someone else produces a
		// byte-identical response to a resource that does not exist.
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, service.ErrConflict):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, service.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid credentials"})
	default:
		h.logger.Error("request failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
