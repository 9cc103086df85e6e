package infrastructure_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/JaimeStill/promptlib/internal/config"
	"github.com/JaimeStill/promptlib/internal/infrastructure"
	"github.com/JaimeStill/promptlib/pkg/cache"
	"github.com/JaimeStill/promptlib/pkg/database"
)

func validConfig() *config.Config {
	return &config.Config{
		Store: config.StorePostgres,
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "promptlib",
			User:            "promptlib",
			Password:        "promptlib",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Cache: cache.Config{
			Enabled: true,
			MaxCost: "1MB",
			TTL:     "1m",
		},
		Log:     config.LogConfig{Level: "info", Format: "text"},
		Version: "0.1.0",
	}
}

func TestNew(t *testing.T) {
	infra, err := infrastructure.NewWithWriter(validConfig(), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if infra.Lifecycle == nil {
		t.Error("Lifecycle is nil")
	}
	if infra.Logger == nil {
		t.Error("Logger is nil")
	}
	if infra.Database == nil {
		t.Error("Database is nil")
	}
	if infra.Cache == nil {
		t.Error("Cache is nil")
	}
	if infra.Tracing == nil {
		t.Error("Tracing is nil")
	}

	conn := infra.Database.Connection()
	if conn == nil {
		t.Fatal("Database.Connection() returned nil")
	}
	conn.Close()
}

func TestNewMemoryStore(t *testing.T) {
	cfg := validConfig()
	cfg.Store = config.StoreMemory

	infra, err := infrastructure.NewWithWriter(cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if infra.Database != nil {
		t.Error("Database should be nil for the memory store")
	}
	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := infrastructure.NewLogger(&config.LogConfig{Level: "info", Format: "json"}, &buf)
		logger.Info("hello", "k", "v")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
		}
		if entry["msg"] != "hello" || entry["k"] != "v" {
			t.Errorf("entry = %v", entry)
		}
	})

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := infrastructure.NewLogger(&config.LogConfig{Level: "info", Format: "text"}, &buf)
		logger.Info("hello")

		if !strings.Contains(buf.String(), "msg=hello") {
			t.Errorf("output = %q, want text handler output", buf.String())
		}
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := infrastructure.NewLogger(&config.LogConfig{Level: "warn", Format: "text"}, &buf)
		logger.Info("hidden")
		logger.Warn("shown")

		if strings.Contains(buf.String(), "hidden") {
			t.Error("info record should be filtered at warn level")
		}
		if !strings.Contains(buf.String(), "shown") {
			t.Error("warn record should be written")
		}
	})
}
