package openapi

import "os"

// Config holds the document metadata rendered into the info object.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// ConfigEnv names the environment variables that override Config fields.
type ConfigEnv struct {
	Title       string
	Description string
}

type field struct {
	dst      *string
	fallback string
	env      string
}

func (c *Config) fields(env *ConfigEnv) []field {
	if env == nil {
		env = &ConfigEnv{}
	}
	return []field{
		{&c.Title, "Prompt Library API", env.Title},
		{&c.Description, "Catalog and search service for reusable prompts organized by category and component.", env.Description},
	}
}

// Finalize fills empty fields with defaults, then applies env overrides.
func (c *Config) Finalize(env *ConfigEnv) error {
	for _, f := range c.fields(env) {
		if *f.dst == "" {
			*f.dst = f.fallback
		}
		if f.env == "" {
			continue
		}
		if v := os.Getenv(f.env); v != "" {
			*f.dst = v
		}
	}
	return nil
}

// Merge overwrites fields that overlay sets.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
}
