package categories

import (
	"context"

	"github.com/JaimeStill/promptlib/internal/schema"
)

// System defines the public contract for category domain operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context) ([]schema.Category, error)
	Count(ctx context.Context) (int, error)
	Find(ctx context.Context, id int64) (*schema.CategoryResponse, error)
	FindBySlug(ctx context.Context, slug string) (*schema.Category, error)
	Create(ctx context.Context, cmd CreateCommand) (*schema.Category, error)
}
