package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/promptlib/internal/config"
	"github.com/JaimeStill/promptlib/pkg/openapi"
	"github.com/JaimeStill/promptlib/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, cfg *config.Config) error {
	groups := []routes.Group{
		domain.Components.Handler().Routes(),
		domain.Categories.Handler().Routes(),
		domain.Prompts.Handler().Routes(),
	}

	routes.Register(mux, groups...)

	spec, err := buildSpec(cfg, groups)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	return nil
}

func buildSpec(cfg *config.Config, groups []routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer("/")
	spec.AddTag("Components", "Functional areas a prompt can target")
	spec.AddTag("Categories", "Business domains that group prompts")
	spec.AddTag("Prompts", "Reusable prompt text: browse, search, create and copy")

	routes.Describe(spec, cfg.API.BasePath, groups...)

	data, err := spec.Encode()
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}
	return data, nil
}
