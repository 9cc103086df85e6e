package prompts

import (
	"context"

	"github.com/JaimeStill/promptlib/internal/schema"
)

// System defines the public contract for prompt domain operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, filters Filters) ([]schema.PromptResponse, error)
	Find(ctx context.Context, id int64) (*schema.PromptResponse, error)
	Create(ctx context.Context, cmd CreateCommand) (*schema.Prompt, error)
}
