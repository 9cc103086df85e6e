// Package memory provides in-process implementations of the component,
// category, and prompt Systems over one shared Store. It backs the
// "memory" store mode and end-to-end tests that run without PostgreSQL.
package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/JaimeStill/promptlib/internal/categories"
	"github.com/JaimeStill/promptlib/internal/components"
	"github.com/JaimeStill/promptlib/internal/prompts"
	"github.com/JaimeStill/promptlib/internal/schema"
)

// Store holds every catalog row. Identifiers are assigned sequentially per
// table starting at 1, and reads return rows in id order.
type Store struct {
	mu         sync.RWMutex
	components []schema.Component
	categories []schema.Category
	prompts    []schema.Prompt
	nextID     struct{ component, category, prompt int64 }
	logger     *slog.Logger
}

// New creates an empty Store.
func New(logger *slog.Logger) *Store {
	return &Store{logger: logger.With("system", "memory")}
}

// Components returns the component System view of the store.
func (s *Store) Components() components.System {
	return &componentSystem{store: s, logger: s.logger.With("domain", "components")}
}

// Categories returns the category System view of the store.
func (s *Store) Categories() categories.System {
	return &categorySystem{store: s, logger: s.logger.With("domain", "categories")}
}

// Prompts returns the prompt System view of the store.
func (s *Store) Prompts(maxBodySize int64) prompts.System {
	return &promptSystem{store: s, logger: s.logger.With("domain", "prompts"), maxBodySize: maxBodySize}
}

type componentSystem struct {
	store  *Store
	logger *slog.Logger
}

func (c *componentSystem) Handler() *components.Handler {
	return components.NewHandler(c, c.logger)
}

func (c *componentSystem) List(context.Context) ([]schema.Component, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	return slices.Clone(c.store.components), nil
}

func (c *componentSystem) Find(_ context.Context, id int64) (*schema.Component, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	if item, ok := c.store.component(id); ok {
		return &item, nil
	}
	return nil, components.ErrNotFound
}

func (c *componentSystem) Create(_ context.Context, cmd components.CreateCommand) (*schema.Component, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for _, existing := range c.store.components {
		if existing.Name == cmd.Name {
			return nil, components.ErrDuplicate
		}
	}

	c.store.nextID.component++
	item := schema.Component{ID: c.store.nextID.component, Name: cmd.Name}
	c.store.components = append(c.store.components, item)

	c.logger.Info("component created", "id", item.ID, "name", item.Name)
	return &item, nil
}

type categorySystem struct {
	store  *Store
	logger *slog.Logger
}

func (c *categorySystem) Handler() *categories.Handler {
	return categories.NewHandler(c, c.logger)
}

func (c *categorySystem) List(context.Context) ([]schema.Category, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	return slices.Clone(c.store.categories), nil
}

func (c *categorySystem) Count(context.Context) (int, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	return len(c.store.categories), nil
}

func (c *categorySystem) Find(_ context.Context, id int64) (*schema.CategoryResponse, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	cat, ok := c.store.category(id)
	if !ok {
		return nil, categories.ErrNotFound
	}

	resp := &schema.CategoryResponse{Category: cat, Prompts: make([]schema.Prompt, 0)}
	for _, p := range c.store.prompts {
		if p.CategoryID == id {
			resp.Prompts = append(resp.Prompts, p)
		}
	}
	return resp, nil
}

func (c *categorySystem) FindBySlug(_ context.Context, slug string) (*schema.Category, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	for _, cat := range c.store.categories {
		if cat.Slug == slug {
			return &cat, nil
		}
	}
	return nil, categories.ErrNotFound
}

func (c *categorySystem) Create(_ context.Context, cmd categories.CreateCommand) (*schema.Category, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for _, existing := range c.store.categories {
		if existing.Slug == cmd.Slug {
			return nil, categories.ErrDuplicate
		}
	}

	c.store.nextID.category++
	cat := schema.Category{
		ID:          c.store.nextID.category,
		Name:        cmd.Name,
		Slug:        cmd.Slug,
		Description: cmd.Description,
		Icon:        cmd.Icon,
		Color:       cmd.Color,
	}
	c.store.categories = append(c.store.categories, cat)

	c.logger.Info("category created", "id", cat.ID, "slug", cat.Slug)
	return &cat, nil
}

type promptSystem struct {
	store       *Store
	logger      *slog.Logger
	maxBodySize int64
}

func (p *promptSystem) Handler() *prompts.Handler {
	return prompts.NewHandler(p, p.logger, p.maxBodySize)
}

func (p *promptSystem) List(_ context.Context, filters prompts.Filters) ([]schema.PromptResponse, error) {
	p.store.mu.RLock()
	defer p.store.mu.RUnlock()

	items := make([]schema.PromptResponse, 0)
	for _, row := range p.store.prompts {
		if filters.Matches(row) {
			items = append(items, p.store.resolve(row))
		}
	}
	return items, nil
}

func (p *promptSystem) Find(_ context.Context, id int64) (*schema.PromptResponse, error) {
	p.store.mu.RLock()
	defer p.store.mu.RUnlock()

	for _, row := range p.store.prompts {
		if row.ID == id {
			resp := p.store.resolve(row)
			return &resp, nil
		}
	}
	return nil, prompts.ErrNotFound
}

func (p *promptSystem) Create(_ context.Context, cmd prompts.CreateCommand) (*schema.Prompt, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p.store.mu.Lock()
	defer p.store.mu.Unlock()

	if _, ok := p.store.category(cmd.CategoryID); !ok {
		return nil, prompts.InvalidReference("categoryId")
	}
	if cmd.ComponentID != nil {
		if _, ok := p.store.component(*cmd.ComponentID); !ok {
			return nil, prompts.InvalidReference("componentId")
		}
	}

	p.store.nextID.prompt++
	row := schema.Prompt{
		ID:          p.store.nextID.prompt,
		CategoryID:  cmd.CategoryID,
		ComponentID: cmd.ComponentID,
		Title:       cmd.Title,
		Description: cmd.Description,
		Content:     cmd.Content,
		IsFavorite:  cmd.IsFavorite,
		Metadata:    cmd.Metadata,
	}
	p.store.prompts = append(p.store.prompts, row)

	p.logger.Info("prompt created", "id", row.ID, "category_id", row.CategoryID, "title", row.Title)
	return &row, nil
}

// resolve attaches the prompt's category and component. Callers hold mu.
func (s *Store) resolve(p schema.Prompt) schema.PromptResponse {
	resp := schema.PromptResponse{Prompt: p}

	if cat, ok := s.category(p.CategoryID); ok {
		resp.Category = &cat
	}
	if p.ComponentID != nil {
		if comp, ok := s.component(*p.ComponentID); ok {
			resp.Component = &comp
		}
	}
	return resp
}

func (s *Store) category(id int64) (schema.Category, bool) {
	i := slices.IndexFunc(s.categories, func(c schema.Category) bool { return c.ID == id })
	if i < 0 {
		return schema.Category{}, false
	}
	return s.categories[i], true
}

func (s *Store) component(id int64) (schema.Component, bool) {
	i := slices.IndexFunc(s.components, func(c schema.Component) bool { return c.ID == id })
	if i < 0 {
		return schema.Component{}, false
	}
	return s.components[i], true
}
