// Package categories implements the category domain. Categories are created
// once (normally by seeding) and never updated.
package categories

import (
	"fmt"
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// CreateCommand carries the data needed to create a category.
type CreateCommand struct {
	Name        string `json:"name" yaml:"name"`
	Slug        string `json:"slug" yaml:"slug"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
	Color       string `json:"color" yaml:"color"`
}

// Validate requires every field to be non-empty and the slug to be lowercase
// alphanumeric words joined by single hyphens.
func (c CreateCommand) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", c.Name},
		{"slug", c.Slug},
		{"description", c.Description},
		{"icon", c.Icon},
		{"color", c.Color},
	}

	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, f.name)
		}
	}

	if !slugPattern.MatchString(c.Slug) {
		return fmt.Errorf("%w: slug %q is not URL-safe", ErrValidation, c.Slug)
	}

	return nil
}
