// Package seed bootstraps an empty catalog with the editorial dataset
// embedded in seed.yaml.
package seed

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/promptlib/internal/categories"
)

//go:embed seed.yaml
var defaultDataset []byte

// Dataset is the bootstrap catalog. Prompts reference components by name.
type Dataset struct {
	Components []string   `yaml:"components"`
	Categories []Category `yaml:"categories"`
}

// Category is a category definition together with its prompts.
type Category struct {
	categories.CreateCommand `yaml:",inline"`
	Prompts                  []Prompt `yaml:"prompts"`
}

// Prompt is a prompt definition. Component is optional.
type Prompt struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Content     string `yaml:"content"`
	Component   string `yaml:"component"`
	IsFavorite  bool   `yaml:"favorite"`
}

// Default returns the embedded dataset.
func Default() (*Dataset, error) {
	return Parse(defaultDataset)
}

// Parse decodes and validates a YAML dataset.
func Parse(data []byte) (*Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse seed dataset: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks category definitions, slug uniqueness, and that every
// component a prompt names is declared.
func (d *Dataset) Validate() error {
	slugs := make(map[string]bool, len(d.Categories))

	for _, c := range d.Categories {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("seed category %q: %w", c.Slug, err)
		}
		if slugs[c.Slug] {
			return fmt.Errorf("seed category %q: duplicate slug", c.Slug)
		}
		slugs[c.Slug] = true

		for _, p := range c.Prompts {
			if p.Component != "" && !slices.Contains(d.Components, p.Component) {
				return fmt.Errorf("seed prompt %q: unknown component %q", p.Title, p.Component)
			}
		}
	}

	return nil
}

// PromptCount returns the number of prompts across all categories.
func (d *Dataset) PromptCount() int {
	n := 0
	for _, c := range d.Categories {
		n += len(c.Prompts)
	}
	return n
}
