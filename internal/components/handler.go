package components

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/promptlib/pkg/handlers"
	"github.com/JaimeStill/promptlib/pkg/openapi"
	"github.com/JaimeStill/promptlib/pkg/routes"
)

// Handler provides HTTP endpoints for component operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "components"),
	}
}

// Routes returns the route group definition for component endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/components",
		Tags:   []string{"Components"},
		Schemas: map[string]*openapi.Schema{
			"Component": {
				Type:     "object",
				Required: []string{"id", "name"},
				Properties: map[string]*openapi.Schema{
					"id":   {Type: "integer", Format: "int64"},
					"name": {Type: "string", Example: "Email"},
				},
			},
		},
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "",
				Handler: h.List,
				OpenAPI: &openapi.Operation{
					Summary: "List components",
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSONArray("All components", "Component"),
						500: openapi.ResponseRef("InternalError"),
					},
				},
			},
			{
				Method:  "GET",
				Pattern: "/{id}",
				Handler: h.Find,
				OpenAPI: &openapi.Operation{
					Summary:    "Get a component",
					Parameters: []*openapi.Parameter{openapi.PathParam("id", "Component ID")},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("The component", "Component"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
		},
	}
}

// List returns every component.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Find returns a single component by its id path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return
	}

	c, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, c)
}
