package prompts

import (
	"errors"
	"net/http"
)

// Domain errors for prompt operations.
var (
	ErrNotFound   = errors.New("prompt not found")
	ErrDuplicate  = errors.New("prompt already exists")
	ErrValidation = errors.New("invalid prompt")
)

// ValidationError names the input field that failed validation.
// Field is empty when the request body as a whole is malformed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// InvalidReference reports that field (categoryId or componentId) names a
// row that does not exist.
func InvalidReference(field string) error {
	target := "category"
	if field == "componentId" {
		target = "component"
	}
	return invalid(field, field+" does not reference an existing "+target)
}

// MapHTTPStatus maps prompt domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
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
