// Package prompts implements the prompt domain: filtered listing with
// resolved relations, keyed reads, validated creation, and copy tracking.
package prompts

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// CreateCommand carries the validated data for a new prompt.
// A nil ComponentID is stored as NULL.
type CreateCommand struct {
	CategoryID  int64   `json:"categoryId"`
	ComponentID *int64  `json:"componentId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Content     string  `json:"content"`
	IsFavorite  bool    `json:"isFavorite"`
	Metadata    *string `json:"metadata"`
}

// CopyResult is the body returned by the copy endpoint.
type CopyResult struct {
	Success bool `json:"success"`
}

// Validate checks value constraints on an already typed command.
// Fields are checked in declaration order and the first failure is returned.
func (c CreateCommand) Validate() error {
	if c.CategoryID <= 0 {
		return invalid("categoryId", "categoryId must be a positive integer")
	}
	if c.ComponentID != nil && *c.ComponentID <= 0 {
		return invalid("componentId", "componentId must be a positive integer")
	}
	for _, f := range []struct{ name, value string }{
		{"title", c.Title},
		{"description", c.Description},
		{"content", c.Content},
	} {
		if strings.TrimSpace(f.value) == "" {
			return invalid(f.name, f.name+" is required")
		}
	}
	return nil
}

// DecodeCreateCommand reads a JSON object from r and converts it to a
// CreateCommand, reporting the first offending field as a *ValidationError.
// componentId accepts an integer or a numeric string; null, 0, false and ""
// mean no component. Unknown keys are ignored.
// Errors from an http.MaxBytesReader are returned unchanged.
func DecodeCreateCommand(r io.Reader) (CreateCommand, error) {
	var cmd CreateCommand

	dec := json.NewDecoder(r)
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return cmd, err
		}
		return cmd, &ValidationError{Message: "request body must be a JSON object"}
	}
	if body == nil {
		return cmd, &ValidationError{Message: "request body must be a JSON object"}
	}

	var err error

	if cmd.CategoryID, err = requiredID(body, "categoryId"); err != nil {
		return cmd, err
	}
	if cmd.ComponentID, err = optionalID(body, "componentId"); err != nil {
		return cmd, err
	}
	if cmd.Title, err = requiredString(body, "title"); err != nil {
		return cmd, err
	}
	if cmd.Description, err = requiredString(body, "description"); err != nil {
		return cmd, err
	}
	if cmd.Content, err = requiredString(body, "content"); err != nil {
		return cmd, err
	}
	if cmd.IsFavorite, err = optionalBool(body, "isFavorite"); err != nil {
		return cmd, err
	}
	if cmd.Metadata, err = optionalString(body, "metadata"); err != nil {
		return cmd, err
	}

	return cmd, cmd.Validate()
}

func requiredID(body map[string]any, field string) (int64, error) {
	v, ok := body[field]
	if !ok || v == nil {
		return 0, invalid(field, field+" is required")
	}

	n, ok := v.(json.Number)
	if !ok {
		return 0, invalid(field, field+" must be an integer")
	}

	id, ok := integer(n)
	if !ok || id <= 0 {
		return 0, invalid(field, field+" must be a positive integer")
	}
	return id, nil
}

func optionalID(body map[string]any, field string) (*int64, error) {
	var (
		id int64
		ok bool
	)

	switch v := body[field].(type) {
	case nil:
		return nil, nil
	case bool:
		if !v {
			return nil, nil
		}
	case json.Number:
		id, ok = integer(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		id, ok = integer(json.Number(s))
	}

	if !ok || id < 0 {
		return nil, invalid(field, field+" must be an integer")
	}
	if id == 0 {
		return nil, nil
	}
	return &id, nil
}

func requiredString(body map[string]any, field string) (string, error) {
	v, ok := body[field]
	if !ok || v == nil {
		return "", invalid(field, field+" is required")
	}

	s, ok := v.(string)
	if !ok {
		return "", invalid(field, field+" must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return "", invalid(field, field+" is required")
	}
	return s, nil
}

func optionalBool(body map[string]any, field string) (bool, error) {
	switch v := body[field].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	default:
		return false, invalid(field, field+" must be a boolean")
	}
}

func optionalString(body map[string]any, field string) (*string, error) {
	switch v := body[field].(type) {
	case nil:
		return nil, nil
	case string:
		return &v, nil
	default:
		return nil, invalid(field, field+" must be a string")
	}
}

// integer accepts integral JSON numbers, including forms like 3.0.
func integer(n json.Number) (int64, bool) {
	if i, err := n.Int64(); err == nil {
		return i, true
	}

	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}
