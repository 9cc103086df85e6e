// Package module mounts prefix-scoped HTTP modules, each with its own
// middleware stack, under a single router.
package module

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/promptlib/pkg/middleware"
)

// Module is an HTTP handler that strips its prefix and delegates to an inner router
// with its own middleware stack.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System
	handler    http.Handler
}

// New creates a Module with the given single-level prefix (e.g. "/api").
// Panics if the prefix is empty, missing a leading slash, or multi-level.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
		handler:    router,
	}
}

// Handler returns the inner router wrapped with the module's middleware stack.
func (m *Module) Handler() http.Handler {
	return m.handler
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Serve dispatches req to the inner handler with the module prefix removed
// from its path. The caller's request is left untouched.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	inner := *req
	u := *req.URL
	u.Path = strings.TrimPrefix(u.Path, m.prefix)
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawPath = ""
	inner.URL = &u
	m.handler.ServeHTTP(w, &inner)
}

// Use appends middleware to the module's stack and recomposes the handler.
// The first registered middleware is the outermost. Call Use before the
// module starts serving.
func (m *Module) Use(mws ...func(http.Handler) http.Handler) {
	m.middleware.Use(mws...)
	m.handler = m.middleware.Apply(m.router)
}

func validatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("module prefix cannot be empty")
	case prefix[0] != '/':
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	case strings.Count(prefix, "/") != 1:
		return fmt.Errorf("module prefix must be single-level sub-path: %s", prefix)
	}
	return nil
}
