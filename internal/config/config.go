// Package config loads the service configuration from an optional TOML base
// file, an environment overlay, and PROMPTLIB_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/promptlib/pkg/cache"
	"github.com/JaimeStill/promptlib/pkg/database"
	"github.com/JaimeStill/promptlib/pkg/tracing"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvPromptlibEnv             = "PROMPTLIB_ENV"
	EnvPromptlibShutdownTimeout = "PROMPTLIB_SHUTDOWN_TIMEOUT"
	EnvPromptlibVersion         = "PROMPTLIB_VERSION"
	EnvPromptlibStore           = "PROMPTLIB_STORE"
	EnvPromptlibSeedEnabled     = "PROMPTLIB_SEED_ENABLED"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

var databaseEnv = &database.Env{
	Host:            "PROMPTLIB_DB_HOST",
	Port:            "PROMPTLIB_DB_PORT",
	Name:            "PROMPTLIB_DB_NAME",
	User:            "PROMPTLIB_DB_USER",
	Password:        "PROMPTLIB_DB_PASSWORD",
	SSLMode:         "PROMPTLIB_DB_SSL_MODE",
	ApplicationName: "PROMPTLIB_DB_APPLICATION_NAME",
	MaxOpenConns:    "PROMPTLIB_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "PROMPTLIB_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "PROMPTLIB_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "PROMPTLIB_DB_CONN_TIMEOUT",
}

var cacheEnv = &cache.Env{
	Enabled: "PROMPTLIB_CACHE_ENABLED",
	MaxCost: "PROMPTLIB_CACHE_MAX_COST",
	TTL:     "PROMPTLIB_CACHE_TTL",
}

var tracingEnv = &tracing.Env{
	Enabled:     "PROMPTLIB_TRACING_ENABLED",
	Endpoint:    "PROMPTLIB_TRACING_ENDPOINT",
	Insecure:    "PROMPTLIB_TRACING_INSECURE",
	ServiceName: "PROMPTLIB_TRACING_SERVICE_NAME",
	SampleRatio: "PROMPTLIB_TRACING_SAMPLE_RATIO",
}

// SeedConfig controls the startup bootstrap of an empty catalog.
// Enabled is a pointer so an overlay can switch seeding off.
type SeedConfig struct {
	Enabled *bool `toml:"enabled"`
}

// IsEnabled reports whether seeding runs at startup. Defaults to true.
func (c SeedConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Config is the root configuration for the prompt library service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Store           string          `toml:"store"`
	Database        database.Config `toml:"database"`
	Cache           cache.Config    `toml:"cache"`
	Tracing         tracing.Config  `toml:"tracing"`
	Log             LogConfig       `toml:"log"`
	API             APIConfig       `toml:"api"`
	Seed            SeedConfig      `toml:"seed"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the PROMPTLIB_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvPromptlibEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return parseDuration(c.ShutdownTimeout)
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.Store != "" {
		c.Store = overlay.Store
	}
	if overlay.Seed.Enabled != nil {
		c.Seed.Enabled = overlay.Seed.Enabled
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Cache.Merge(&overlay.Cache)
	c.Tracing.Merge(&overlay.Tracing)
	c.Log.Merge(&overlay.Log)
	c.API.Merge(&overlay.API)
}

// Finalize applies defaults, environment overrides, and validation to the
// root config and every section. Database settings are only finalized for
// the postgres store.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if c.Store == StorePostgres {
		if err := c.Database.Finalize(databaseEnv); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if err := c.Cache.Finalize(cacheEnv); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Tracing.Finalize(tracingEnv); err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	if err := c.Log.Finalize(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if c.Store == "" {
		c.Store = StorePostgres
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvPromptlibShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvPromptlibVersion); v != "" {
		c.Version = v
	}
	if v := os.Getenv(EnvPromptlibStore); v != "" {
		c.Store = v
	}
	if v := os.Getenv(EnvPromptlibSeedEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Seed.Enabled = &b
		}
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	switch c.Store {
	case StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("invalid store %q: must be %s or %s", c.Store, StorePostgres, StoreMemory)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvPromptlibEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
