package categories

import (
	"log/slog"
	"maps"
	"net/http"

	"github.com/JaimeStill/promptlib/pkg/handlers"
	"github.com/JaimeStill/promptlib/pkg/openapi"
	"github.com/JaimeStill/promptlib/pkg/routes"
)

// Handler provides HTTP endpoints for category operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "categories"),
	}
}

// Routes returns the route group definition for category endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/categories",
		Tags:    []string{"Categories"},
		Schemas: Schemas(),
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "",
				Handler: h.List,
				OpenAPI: &openapi.Operation{
					Summary: "List categories",
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSONArray("All categories", "Category"),
						500: openapi.ResponseRef("InternalError"),
					},
				},
			},
			{
				Method:  "GET",
				Pattern: "/{id}",
				Handler: h.Find,
				OpenAPI: &openapi.Operation{
					Summary:    "Get a category with its prompts",
					Parameters: []*openapi.Parameter{openapi.PathParam("id", "Category ID")},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("The category and its prompts", "CategoryWithPrompts"),
						404: openapi.ResponseRef("NotFound"),
						500: openapi.ResponseRef("InternalError"),
					},
				},
			},
			{
				Method:  "GET",
				Pattern: "/slug/{slug}",
				Handler: h.FindBySlug,
				OpenAPI: &openapi.Operation{
					Summary:    "Get a category by slug",
					Parameters: []*openapi.Parameter{openapi.StringPathParam("slug", "Category slug")},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("The category", "Category"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
		},
	}
}

// Schemas returns the OpenAPI schemas for category payloads.
func Schemas() map[string]*openapi.Schema {
	category := map[string]*openapi.Schema{
		"id":          {Type: "integer", Format: "int64"},
		"name":        {Type: "string", Example: "Email Management"},
		"slug":        {Type: "string", Example: "emails"},
		"description": {Type: "string"},
		"icon":        {Type: "string", Example: "Mail"},
		"color":       {Type: "string", Example: "bg-blue-500"},
	}
	required := []string{"id", "name", "slug", "description", "icon", "color"}

	withPrompts := maps.Clone(category)
	withPrompts["prompts"] = &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Prompt")}

	return map[string]*openapi.Schema{
		"Category": {
			Type:       "object",
			Required:   required,
			Properties: category,
		},
		"CategoryWithPrompts": {
			Type:       "object",
			Required:   append(required, "prompts"),
			Properties: withPrompts,
		},
	}
}

// List returns every category.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Find returns a category and all of its prompts.
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

// FindBySlug returns the category with the given slug.
func (h *Handler) FindBySlug(w http.ResponseWriter, r *http.Request) {
	c, err := h.sys.FindBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, c)
}
