package api

import (
	"github.com/JaimeStill/promptlib/internal/categories"
	"github.com/JaimeStill/promptlib/internal/components"
	"github.com/JaimeStill/promptlib/internal/memory"
	"github.com/JaimeStill/promptlib/internal/prompts"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Components components.System
	Categories categories.System
	Prompts    prompts.System
}

// NewDomain creates all domain systems from the API runtime. Without a
// database the systems share one in-memory store.
func NewDomain(runtime *Runtime) *Domain {
	if runtime.Database == nil {
		runtime.Logger.Warn("no database configured, using in-memory store")
		store := memory.New(runtime.Logger)
		return &Domain{
			Components: store.Components(),
			Categories: store.Categories(),
			Prompts:    store.Prompts(runtime.MaxBodySize),
		}
	}

	db := runtime.Database.Connection()

	return &Domain{
		Components: components.New(db, runtime.Cache, runtime.Logger),
		Categories: categories.New(db, runtime.Cache, runtime.Logger),
		Prompts:    prompts.New(db, runtime.Logger, runtime.MaxBodySize),
	}
}
