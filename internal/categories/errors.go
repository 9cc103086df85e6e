package categories

import (
	"errors"
	"net/http"
)

// Domain errors for category operations.
var (
	ErrNotFound   = errors.New("category not found")
	ErrDuplicate  = errors.New("category slug already exists")
	ErrValidation = errors.New("invalid category")
)

// MapHTTPStatus maps category domain errors to appropriate HTTP status codes.
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
