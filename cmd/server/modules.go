package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/promptlib/internal/api"
	"github.com/JaimeStill/promptlib/internal/config"
	"github.com/JaimeStill/promptlib/internal/infrastructure"
	"github.com/JaimeStill/promptlib/internal/seed"
	"github.com/JaimeStill/promptlib/pkg/middleware"
	"github.com/JaimeStill/promptlib/pkg/module"
	"github.com/JaimeStill/promptlib/web/scalar"
)

// Modules holds the mounted HTTP modules and the startup seeder.
// Seeder is nil when seeding is disabled.
type Modules struct {
	API    *module.Module
	Scalar *module.Module
	Seeder *seed.Seeder
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	runtime := api.NewRuntime(cfg, infra)
	domain := api.NewDomain(runtime)

	apiModule, err := api.NewModule(cfg, runtime, domain)
	if err != nil {
		return nil, err
	}

	seeder, err := api.NewSeeder(cfg, runtime, domain)
	if err != nil {
		return nil, err
	}

	scalarModule := scalar.NewModule("/scalar", cfg.API.BasePath+"/openapi.json")
	scalarModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:    apiModule,
		Scalar: scalarModule,
		Seeder: seeder,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if pending := infra.Lifecycle.Pending(); len(pending) > 0 {
			writeStatus(w, http.StatusServiceUnavailable, map[string]any{
				"status":  "not ready",
				"pending": pending,
			})
			return
		}
		if infra.Database != nil {
			if err := infra.Database.Ping(r.Context()); err != nil {
				infra.Logger.Warn("readiness ping failed", "error", err)
				writeStatus(w, http.StatusServiceUnavailable, map[string]any{"status": "database unavailable"})
				return
			}
		}
		writeStatus(w, http.StatusOK, map[string]any{"status": "ready"})
	})

	return router
}

func writeStatus(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
