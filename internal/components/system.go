package components

import (
	"context"

	"github.com/JaimeStill/promptlib/internal/schema"
)

// System defines the public contract for component domain operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context) ([]schema.Component, error)
	Find(ctx context.Context, id int64) (*schema.Component, error)
	Create(ctx context.Context, cmd CreateCommand) (*schema.Component, error)
}
