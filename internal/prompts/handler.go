package prompts

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/promptlib/pkg/handlers"
	"github.com/JaimeStill/promptlib/pkg/openapi"
	"github.com/JaimeStill/promptlib/pkg/routes"
)

// Handler provides HTTP endpoints for prompt operations.
type Handler struct {
	sys         System
	logger      *slog.Logger
	maxBodySize int64
}

// NewHandler creates a Handler with the given system, logger, and create body limit.
func NewHandler(sys System, logger *slog.Logger, maxBodySize int64) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "prompts"),
		maxBodySize: maxBodySize,
	}
}

// Routes returns the route group definition for prompt endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/prompts",
		Tags:    []string{"Prompts"},
		Schemas: Schemas(),
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "",
				Handler: h.List,
				OpenAPI: &openapi.Operation{
					Summary:     "List prompts",
					Description: "Returns prompts ordered by id with their category and component resolved. Filters are ANDed.",
					Parameters: []*openapi.Parameter{
						openapi.QueryParam("search", "string", "Case-insensitive substring of title, description, or content", false),
						openapi.QueryParam("categoryId", "integer", "Restrict to a single category", false),
					},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSONArray("Matching prompts", "PromptResponse"),
						500: openapi.ResponseRef("InternalError"),
					},
				},
			},
			{
				Method:  "GET",
				Pattern: "/{id}",
				Handler: h.Find,
				OpenAPI: &openapi.Operation{
					Summary:    "Get a prompt",
					Parameters: []*openapi.Parameter{openapi.PathParam("id", "Prompt ID")},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("The prompt with resolved relations", "PromptResponse"),
						404: openapi.ResponseRef("NotFound"),
						500: openapi.ResponseRef("InternalError"),
					},
				},
			},
			{
				Method:  "POST",
				Pattern: "",
				Handler: h.Create,
				OpenAPI: &openapi.Operation{
					Summary:     "Create a prompt",
					RequestBody: openapi.RequestBodyJSON("CreatePrompt", true),
					Responses: map[int]*openapi.Response{
						201: openapi.ResponseJSON("The created prompt", "Prompt"),
						400: openapi.ResponseRef("BadRequest"),
						413: openapi.ResponseRef("PayloadTooLarge"),
						500: openapi.ResponseRef("InternalError"),
					},
				},
			},
			{
				Method:  "POST",
				Pattern: "/{id}/copy",
				Handler: h.Copy,
				OpenAPI: &openapi.Operation{
					Summary:    "Record a prompt copy",
					Parameters: []*openapi.Parameter{openapi.StringPathParam("id", "Prompt ID")},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Copy acknowledged", "CopyResult"),
					},
				},
			},
		},
	}
}

// List returns prompts matching the search and categoryId query parameters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := FiltersFromQuery(r.URL.Query())

	items, err := h.sys.List(r.Context(), filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Find returns a single prompt with its resolved relations.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(r, "id")
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return
	}

	p, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// Create validates the request body and stores a new prompt.
// Nothing is written when validation fails.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	cmd, err := DecodeCreateCommand(r.Body)
	if err != nil {
		h.respondCreateError(w, err)
		return
	}

	p, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		h.respondCreateError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, p)
}

// Copy acknowledges that a prompt was copied to the clipboard.
// It does not check that the prompt exists and stores nothing.
func (h *Handler) Copy(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("prompt copied", "id", r.PathValue("id"))
	handlers.RespondJSON(w, http.StatusOK, CopyResult{Success: true})
}

func (h *Handler) respondCreateError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		handlers.RespondFieldError(w, h.logger, http.StatusBadRequest, verr, verr.Field)
		return
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, errors.New("request body too large"))
		return
	}

	handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
}

// Schemas returns the OpenAPI schemas for prompt payloads.
func Schemas() map[string]*openapi.Schema {
	prompt := func() map[string]*openapi.Schema {
		return map[string]*openapi.Schema{
			"id":          {Type: "integer", Format: "int64"},
			"categoryId":  {Type: "integer", Format: "int64"},
			"componentId": openapi.Nullable(&openapi.Schema{Type: "integer", Format: "int64", Description: "null when the prompt has no component"}),
			"title":       {Type: "string", Example: "Meeting Request"},
			"description": {Type: "string"},
			"content":     {Type: "string"},
			"isFavorite":  {Type: "boolean", Default: false},
			"metadata":    openapi.Nullable(&openapi.Schema{Type: "string", Description: "Optional free-form data, null when unset"}),
		}
	}
	required := []string{"id", "categoryId", "componentId", "title", "description", "content", "isFavorite", "metadata"}

	response := prompt()
	response["category"] = openapi.SchemaRef("Category")
	response["component"] = openapi.SchemaRef("Component")

	create := prompt()
	delete(create, "id")
	create["componentId"] = &openapi.Schema{
		Description: "Integer or numeric string; null, 0, or empty means no component",
	}
	minID, nonEmpty := 1.0, 1
	create["categoryId"] = &openapi.Schema{Type: "integer", Format: "int64", Minimum: &minID}
	for _, field := range []string{"title", "description", "content"} {
		s := *create[field]
		s.MinLength = &nonEmpty
		create[field] = &s
	}

	return map[string]*openapi.Schema{
		"Prompt": {
			Type:       "object",
			Required:   required,
			Properties: prompt(),
		},
		"PromptResponse": {
			Type:        "object",
			Description: "A prompt with resolved relations. A relation that does not resolve is omitted.",
			Required:    required,
			Properties:  response,
		},
		"CreatePrompt": {
			Type:       "object",
			Required:   []string{"categoryId", "title", "description", "content"},
			Properties: create,
		},
		"CopyResult": {
			Type:       "object",
			Required:   []string{"success"},
			Properties: map[string]*openapi.Schema{"success": {Type: "boolean", Example: true}},
		},
	}
}
