package categories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/promptlib/internal/schema"
	"github.com/JaimeStill/promptlib/pkg/cache"
	"github.com/JaimeStill/promptlib/pkg/query"
	"github.com/JaimeStill/promptlib/pkg/repository"
)

type repo struct {
	db     *sql.DB
	list   *cache.Entry[[]schema.Category]
	logger *slog.Logger
}

// New creates a PostgreSQL-backed category repository implementing the System interface.
// The full category list is cached and invalidated on Create.
func New(db *sql.DB, c cache.System, logger *slog.Logger) System {
	return &repo{
		db:     db,
		list:   cache.NewEntry[[]schema.Category](c, listCacheKey),
		logger: logger.With("system", "categories"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) List(ctx context.Context) ([]schema.Category, error) {
	return r.list.Load(ctx, func(ctx context.Context) ([]schema.Category, error) {
		q, args := query.NewBuilder(projection, defaultSort).Build()
		items, err := repository.QueryMany(ctx, r.db, q, args, scanCategory)
		if err != nil {
			return nil, fmt.Errorf("query categories: %w", err)
		}
		return items, nil
	})
}

func (r *repo) Count(ctx context.Context) (int, error) {
	q, args := query.NewBuilder(projection).BuildCount()

	n, err := repository.QueryCount(ctx, r.db, q, args)
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*schema.CategoryResponse, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCategory)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	pb := query.NewBuilder(promptProjection, defaultSort)
	pb.WhereEquals("CategoryID", c.ID)
	pq, pargs := pb.Build()

	prompts, err := repository.QueryMany(ctx, r.db, pq, pargs, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query category prompts: %w", err)
	}

	return &schema.CategoryResponse{Category: c, Prompts: prompts}, nil
}

func (r *repo) FindBySlug(ctx context.Context, slug string) (*schema.Category, error) {
	q, args := query.NewBuilder(projection).BuildSingle("Slug", slug)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCategory)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*schema.Category, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO categories(name, slug, description, icon, color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, slug, description, icon, color`

	args := []any{cmd.Name, cmd.Slug, cmd.Description, cmd.Icon, cmd.Color}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (schema.Category, error) {
		return repository.QueryOne(ctx, tx, q, args, scanCategory)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.list.Invalidate(ctx)
	r.logger.Info("category created", "id", c.ID, "slug", c.Slug)
	return &c, nil
}
