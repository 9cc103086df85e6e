// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

const internalErrorMessage = "internal server error"

// ErrorResponse is the body written for every failed request.
// Field names the offending input field for validation failures.
type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// RespondJSON writes data as a JSON body with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError writes {"message": ...} with the given status code.
// Server errors (5xx) are logged with the cause and the client receives a generic message.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	RespondFieldError(w, logger, status, err, "")
}

// RespondFieldError writes {"message": ..., "field": ...} with the given status code.
func RespondFieldError(w http.ResponseWriter, logger *slog.Logger, status int, err error, field string) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "error", err, "status", status)
		RespondJSON(w, status, ErrorResponse{Message: internalErrorMessage})
		return
	}

	logger.Debug("request rejected", "error", err, "status", status, "field", field)
	RespondJSON(w, status, ErrorResponse{Message: err.Error(), Field: field})
}

// PathID parses the named path value as a positive int64 identifier.
// It reports false for missing, non-numeric, or non-positive values.
func PathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
