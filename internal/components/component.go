// Package components implements the component domain: the functional areas
// (Email, Spreadsheet, ...) a prompt can optionally be tied to.
package components

import (
	"fmt"
	"strings"
)

// CreateCommand carries the data needed to create a component.
type CreateCommand struct {
	Name string `json:"name"`
}

// Validate reports a missing or blank name.
func (c CreateCommand) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	return nil
}
