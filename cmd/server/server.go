package main

import (
	"time"

	"github.com/JaimeStill/promptlib/internal/config"
	"github.com/JaimeStill/promptlib/internal/infrastructure"
)

type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"env", cfg.Env(),
		"store", cfg.Store,
	)

	return &Server{
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start launches infrastructure and the HTTP listener. Seeding runs once
// startup hooks finish so the database has been reached before the
// empty-catalog check.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
		s.seed()
	}()

	return nil
}

// seed bootstraps an empty catalog. A failure leaves the seed readiness
// check pending so /readyz keeps reporting it; the API keeps serving.
func (s *Server) seed() {
	if s.modules.Seeder == nil {
		return
	}

	seeded, err := s.modules.Seeder.Run(s.infra.Lifecycle.Context())
	if err != nil {
		s.infra.Logger.Error("catalog seed failed", "error", err)
		return
	}
	if seeded {
		s.infra.Logger.Info("catalog seeded")
	}
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
