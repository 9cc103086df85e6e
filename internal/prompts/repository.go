package prompts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/JaimeStill/promptlib/internal/schema"
	"github.com/JaimeStill/promptlib/pkg/query"
	"github.com/JaimeStill/promptlib/pkg/repository"
)

const tracerName = "github.com/JaimeStill/promptlib/internal/prompts"

type repo struct {
	db          *sql.DB
	logger      *slog.Logger
	maxBodySize int64
}

// New creates a PostgreSQL-backed prompt repository implementing the System interface.
// maxBodySize bounds the create request body accepted by the handler.
func New(db *sql.DB, logger *slog.Logger, maxBodySize int64) System {
	return &repo{
		db:          db,
		logger:      logger.With("system", "prompts"),
		maxBodySize: maxBodySize,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.maxBodySize)
}

func (r *repo) List(ctx context.Context, filters Filters) ([]schema.PromptResponse, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "prompts.List")
	defer span.End()

	if filters.CategoryID != nil {
		span.SetAttributes(attribute.Int64("prompts.filter.category_id", *filters.CategoryID))
	}
	span.SetAttributes(attribute.Bool("prompts.filter.search", filters.Search != nil))

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	q, args := qb.Build()
	items, err := repository.QueryMany(ctx, r.db, q, args, scanPromptResponse)
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("query prompts: %w", err)
	}

	span.SetAttributes(attribute.Int("prompts.count", len(items)))
	return items, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*schema.PromptResponse, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "prompts.Find",
		trace.WithAttributes(attribute.Int64("prompts.id", id)))
	defer span.End()

	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPromptResponse)
	if err != nil {
		err = repository.MapError(err, ErrNotFound, ErrDuplicate)
		recordError(span, err)
		return nil, err
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*schema.Prompt, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "prompts.Create")
	defer span.End()

	if err := cmd.Validate(); err != nil {
		recordError(span, err)
		return nil, err
	}

	args := []any{
		cmd.CategoryID, cmd.ComponentID,
		cmd.Title, cmd.Description, cmd.Content,
		cmd.IsFavorite, cmd.Metadata,
	}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (schema.Prompt, error) {
		return repository.QueryOne(ctx, tx, insertPrompt, args, scanPrompt)
	})
	if err != nil {
		if constraint, ok := repository.ForeignKeyViolation(err); ok {
			err = foreignKeyError(constraint)
		} else {
			err = repository.MapError(err, ErrNotFound, ErrDuplicate)
		}
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("prompts.id", p.ID))
	r.logger.Info("prompt created", "id", p.ID, "category_id", p.CategoryID, "title", p.Title)
	return &p, nil
}

func foreignKeyError(constraint string) error {
	if constraint == "prompts_component_id_fkey" {
		return InvalidReference("componentId")
	}
	return InvalidReference("categoryId")
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
