package cache

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/JaimeStill/promptlib/pkg/formatting"
)

// Config holds in-process cache settings.
type Config struct {
	Enabled bool   `toml:"enabled"`
	MaxCost string `toml:"max_cost"`
	TTL     string `toml:"ttl"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Enabled string
	MaxCost string
	TTL     string
}

// MaxCostBytes returns MaxCost as a byte count.
func (c *Config) MaxCostBytes() int64 {
	n, _ := formatting.ParseBytes(c.MaxCost)
	return n
}

// TTLDuration returns TTL as a time.Duration.
func (c *Config) TTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites fields from overlay. Enabled always applies; strings apply when non-empty.
func (c *Config) Merge(overlay *Config) {
	c.Enabled = overlay.Enabled
	if overlay.MaxCost != "" {
		c.MaxCost = overlay.MaxCost
	}
	if overlay.TTL != "" {
		c.TTL = overlay.TTL
	}
}

func (c *Config) loadDefaults() {
	if c.MaxCost == "" {
		c.MaxCost = "16MB"
	}
	if c.TTL == "" {
		c.TTL = "5m"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			if enabled, err := strconv.ParseBool(v); err == nil {
				c.Enabled = enabled
			}
		}
	}
	if env.MaxCost != "" {
		if v := os.Getenv(env.MaxCost); v != "" {
			c.MaxCost = v
		}
	}
	if env.TTL != "" {
		if v := os.Getenv(env.TTL); v != "" {
			c.TTL = v
		}
	}
}

func (c *Config) validate() error {
	n, err := formatting.ParseBytes(c.MaxCost)
	if err != nil {
		return fmt.Errorf("invalid max_cost: %w", err)
	}
	if n <= 0 {
		return fmt.Errorf("max_cost must be positive")
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return fmt.Errorf("invalid ttl: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("ttl must be positive")
	}
	return nil
}
