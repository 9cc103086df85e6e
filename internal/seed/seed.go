package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/JaimeStill/promptlib/internal/categories"
	"github.com/JaimeStill/promptlib/internal/components"
	"github.com/JaimeStill/promptlib/internal/prompts"
)

// Seeder loads a Dataset into the catalog when no categories exist.
// It satisfies lifecycle.ReadinessChecker and reports ready once Run has
// either seeded or found existing data.
type Seeder struct {
	components components.System
	categories categories.System
	prompts    prompts.System
	dataset    *Dataset
	logger     *slog.Logger
	done       atomic.Bool
}

// New creates a Seeder for the given dataset and domain systems.
func New(
	dataset *Dataset,
	comps components.System,
	cats categories.System,
	prs prompts.System,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		components: comps,
		categories: cats,
		prompts:    prs,
		dataset:    dataset,
		logger:     logger.With("system", "seed"),
	}
}

// Ready reports whether Run has completed successfully.
func (s *Seeder) Ready() bool {
	return s.done.Load()
}

// Run seeds the catalog if it has zero categories. It reports whether any
// data was written. Running it again after a successful seed is a no-op.
func (s *Seeder) Run(ctx context.Context) (bool, error) {
	n, err := s.categories.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count categories: %w", err)
	}
	if n > 0 {
		s.logger.Info("catalog already populated, skipping seed", "categories", n)
		s.done.Store(true)
		return false, nil
	}

	s.logger.Info("seeding catalog",
		"components", len(s.dataset.Components),
		"categories", len(s.dataset.Categories),
		"prompts", s.dataset.PromptCount(),
	)

	componentIDs, err := s.seedComponents(ctx)
	if err != nil {
		return false, err
	}

	for _, c := range s.dataset.Categories {
		cat, err := s.categories.Create(ctx, c.CreateCommand)
		if err != nil {
			return true, fmt.Errorf("seed category %q: %w", c.Slug, err)
		}

		for _, p := range c.Prompts {
			cmd := prompts.CreateCommand{
				CategoryID:  cat.ID,
				Title:       strings.TrimSpace(p.Title),
				Description: strings.TrimSpace(p.Description),
				Content:     strings.TrimSpace(p.Content),
				IsFavorite:  p.IsFavorite,
			}
			if id, ok := componentIDs[p.Component]; ok {
				cmd.ComponentID = &id
			}

			if _, err := s.prompts.Create(ctx, cmd); err != nil {
				return true, fmt.Errorf("seed prompt %q: %w", p.Title, err)
			}
		}
	}

	s.logger.Info("seeding complete")
	s.done.Store(true)
	return true, nil
}

// seedComponents creates any dataset component that does not exist yet and
// returns every dataset component id keyed by name.
func (s *Seeder) seedComponents(ctx context.Context) (map[string]int64, error) {
	existing, err := s.components.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}

	ids := make(map[string]int64, len(s.dataset.Components))
	for _, c := range existing {
		ids[c.Name] = c.ID
	}

	for _, name := range s.dataset.Components {
		if _, ok := ids[name]; ok {
			continue
		}
		c, err := s.components.Create(ctx, components.CreateCommand{Name: name})
		if err != nil {
			return nil, fmt.Errorf("seed component %q: %w", name, err)
		}
		ids[name] = c.ID
	}

	return ids, nil
}
