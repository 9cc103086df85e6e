package components

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
	list   *cache.Entry[[]schema.Component]
	logger *slog.Logger
}

// New creates a PostgreSQL-backed component repository implementing the System interface.
// The full component list is cached and invalidated on Create.
func New(db *sql.DB, c cache.System, logger *slog.Logger) System {
	return &repo{
		db:     db,
		list:   cache.NewEntry[[]schema.Component](c, listCacheKey),
		logger: logger.With("system", "components"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) List(ctx context.Context) ([]schema.Component, error) {
	return r.list.Load(ctx, func(ctx context.Context) ([]schema.Component, error) {
		q, args := query.NewBuilder(projection, defaultSort).Build()
		items, err := repository.QueryMany(ctx, r.db, q, args, scanComponent)
		if err != nil {
			return nil, fmt.Errorf("query components: %w", err)
		}
		return items, nil
	})
}

func (r *repo) Find(ctx context.Context, id int64) (*schema.Component, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanComponent)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*schema.Component, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO components(name)
		VALUES ($1)
		RETURNING id, name`

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (schema.Component, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Name}, scanComponent)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.list.Invalidate(ctx)
	r.logger.Info("component created", "id", c.ID, "name", c.Name)
	return &c, nil
}
