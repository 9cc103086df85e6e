package components

import (
	"errors"
	"net/http"
)

// Domain errors for component operations.
var (
	ErrNotFound   = errors.New("component not found")
	ErrDuplicate  = errors.New("component name already exists")
	ErrValidation = errors.New("invalid component")
)

// MapHTTPStatus maps component domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
