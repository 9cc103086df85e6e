// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/promptlib/internal/config"
	"github.com/JaimeStill/promptlib/internal/seed"
	"github.com/JaimeStill/promptlib/pkg/formatting"
	"github.com/JaimeStill/promptlib/pkg/middleware"
	"github.com/JaimeStill/promptlib/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// Request ids are assigned before logging so every log line carries one.
func NewModule(cfg *config.Config, runtime *Runtime, domain *Domain) (*module.Module, error) {
	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(
		middleware.RequestID(),
		middleware.Logger(runtime.Logger),
		runtime.Tracing.Middleware("api"),
		middleware.CORS(&cfg.API.CORS),
	)

	runtime.Logger.Info("api module ready",
		"base_path", cfg.API.BasePath,
		"max_body_size", formatting.FormatBytes(runtime.MaxBodySize, 1),
		"store", cfg.Store,
	)

	return m, nil
}

// NewSeeder creates the catalog seeder and registers it as a readiness check.
// It returns nil when seeding is disabled.
func NewSeeder(cfg *config.Config, runtime *Runtime, domain *Domain) (*seed.Seeder, error) {
	if !cfg.Seed.IsEnabled() {
		runtime.Logger.Info("seeding disabled")
		return nil, nil
	}

	dataset, err := seed.Default()
	if err != nil {
		return nil, err
	}

	s := seed.New(dataset, domain.Components, domain.Categories, domain.Prompts, runtime.Logger)
	runtime.Lifecycle.Check("seed", s)
	return s, nil
}
