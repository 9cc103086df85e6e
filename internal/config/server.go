package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvServerHost              = "PROMPTLIB_SERVER_HOST"
	EnvServerPort              = "PROMPTLIB_SERVER_PORT"
	EnvServerReadTimeout       = "PROMPTLIB_SERVER_READ_TIMEOUT"
	EnvServerReadHeaderTimeout = "PROMPTLIB_SERVER_READ_HEADER_TIMEOUT"
	EnvServerWriteTimeout      = "PROMPTLIB_SERVER_WRITE_TIMEOUT"
	EnvServerIdleTimeout       = "PROMPTLIB_SERVER_IDLE_TIMEOUT"
	EnvServerShutdownTimeout   = "PROMPTLIB_SERVER_SHUTDOWN_TIMEOUT"
)

// ServerConfig holds HTTP server parameters. Timeouts are Go duration strings.
type ServerConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	ReadTimeout       string `toml:"read_timeout"`
	ReadHeaderTimeout string `toml:"read_header_timeout"`
	WriteTimeout      string `toml:"write_timeout"`
	IdleTimeout       string `toml:"idle_timeout"`
	ShutdownTimeout   string `toml:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Duration accessors return zero for unparseable values; Finalize rejects those.
func (c *ServerConfig) ReadTimeoutDuration() time.Duration { return parseDuration(c.ReadTimeout) }
func (c *ServerConfig) ReadHeaderTimeoutDuration() time.Duration { return parseDuration(c.ReadHeaderTimeout) }
func (c *ServerConfig) WriteTimeoutDuration() time.Duration { return parseDuration(c.WriteTimeout) }
func (c *ServerConfig) IdleTimeoutDuration() time.Duration { return parseDuration(c.IdleTimeout) }
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration { return parseDuration(c.ShutdownTimeout) }

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	for _, d := range c.durations() {
		if v := *d.overlayOf(overlay); v != "" {
			*d.value = v
		}
	}
}

type serverDuration struct {
	key       string
	env       string
	fallback  string
	value     *string
	overlayOf func(*ServerConfig) *string
}

func (c *ServerConfig) durations() []serverDuration {
	return []serverDuration{
		{"read_timeout", EnvServerReadTimeout, "30s", &c.ReadTimeout,
			func(o *ServerConfig) *string { return &o.ReadTimeout }},
		{"read_header_timeout", EnvServerReadHeaderTimeout, "10s", &c.ReadHeaderTimeout,
			func(o *ServerConfig) *string { return &o.ReadHeaderTimeout }},
		{"write_timeout", EnvServerWriteTimeout, "30s", &c.WriteTimeout,
			func(o *ServerConfig) *string { return &o.WriteTimeout }},
		{"idle_timeout", EnvServerIdleTimeout, "2m", &c.IdleTimeout,
			func(o *ServerConfig) *string { return &o.IdleTimeout }},
		{"shutdown_timeout", EnvServerShutdownTimeout, "30s", &c.ShutdownTimeout,
			func(o *ServerConfig) *string { return &o.ShutdownTimeout }},
	}
}

func (c *ServerConfig) loadDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	for _, d := range c.durations() {
		if *d.value == "" {
			*d.value = d.fallback
		}
	}
}

func (c *ServerConfig) loadEnv() {
	if v := os.Getenv(EnvServerHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	for _, d := range c.durations() {
		if v := os.Getenv(d.env); v != "" {
			*d.value = v
		}
	}
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	for _, d := range c.durations() {
		if _, err := time.ParseDuration(*d.value); err != nil {
			return fmt.Errorf("invalid %s: %w", d.key, err)
		}
	}
	return nil
}

func parseDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
