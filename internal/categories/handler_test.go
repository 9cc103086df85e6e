package categories_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/promptlib/internal/categories"
	"github.com/JaimeStill/promptlib/internal/schema"
	"github.com/JaimeStill/promptlib/pkg/handlers"
)

type mockSystem struct {
	listFn       func(ctx context.Context) ([]schema.Category, error)
	countFn      func(ctx context.Context) (int, error)
	findFn       func(ctx context.Context, id int64) (*schema.CategoryResponse, error)
	findBySlugFn func(ctx context.Context, slug string) (*schema.Category, error)
	createFn     func(ctx context.Context, cmd categories.CreateCommand) (*schema.Category, error)
}

func (m *mockSystem) Handler() *categories.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) List(ctx context.Context) ([]schema.Category, error) {
	return m.listFn(ctx)
}

func (m *mockSystem) Count(ctx context.Context) (int, error) {
	return m.countFn(ctx)
}

func (m *mockSystem) Find(ctx context.Context, id int64) (*schema.CategoryResponse, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) FindBySlug(ctx context.Context, slug string) (*schema.Category, error) {
	return m.findBySlugFn(ctx, slug)
}

func (m *mockSystem) Create(ctx context.Context, cmd categories.CreateCommand) (*schema.Category, error) {
	return m.createFn(ctx, cmd)
}

func newTestHandler(sys *mockSystem) *categories.Handler {
	return categories.NewHandler(sys, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupMux(h *categories.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func sampleCategory() schema.Category {
	return schema.Category{
		ID:          1,
		Name:        "Email Management",
		Slug:        "emails",
		Description: "Professional email templates",
		Icon:        "Mail",
		Color:       "bg-blue-500",
	}
}

func TestHandlerList(t *testing.T) {
	sys := &mockSystem{
		listFn: func(context.Context) ([]schema.Category, error) {
			return []schema.Category{sampleCategory()}, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/categories", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []schema.Category
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "emails" {
		t.Errorf("categories = %+v", got)
	}
}

func TestHandlerFind(t *testing.T) {
	var captured int64
	sys := &mockSystem{
		findFn: func(_ context.Context, id int64) (*schema.CategoryResponse, error) {
			captured = id
			if id != 1 {
				return nil, categories.ErrNotFound
			}
			return &schema.CategoryResponse{
				Category: sampleCategory(),
				Prompts:  []schema.Prompt{{ID: 10, CategoryID: 1, Title: "Meeting Request"}},
			}, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	t.Run("returns category with prompts", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/categories/1", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if captured != 1 {
			t.Errorf("id = %d, want 1", captured)
		}

		var got schema.CategoryResponse
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Slug != "emails" || len(got.Prompts) != 1 {
			t.Errorf("response = %+v", got)
		}
	})

	t.Run("unknown id is 404 with message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/categories/42", nil))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}

		var body handlers.ErrorResponse
		json.NewDecoder(rec.Body).Decode(&body)
		if body.Message != categories.ErrNotFound.Error() {
			t.Errorf("message = %q, want %q", body.Message, categories.ErrNotFound.Error())
		}
	})

	t.Run("non-numeric id is 404", func(t *testing.T) {
		captured = 0
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/categories/emails", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
		if captured != 0 {
			t.Error("system should not be called for an invalid id")
		}
	})

	t.Run("store failure is 500", func(t *testing.T) {
		sys.findFn = func(context.Context, int64) (*schema.CategoryResponse, error) {
			return nil, errors.New("connection reset")
		}
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/categories/1", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}

func TestHandlerFindBySlug(t *testing.T) {
	sys := &mockSystem{
		findBySlugFn: func(_ context.Context, slug string) (*schema.Category, error) {
			if slug == "emails" {
				c := sampleCategory()
				return &c, nil
			}
			return nil, categories.ErrNotFound
		},
	}
	mux := setupMux(newTestHandler(sys))

	tests := []struct {
		name string
		path string
		want int
	}{
		{"known slug", "/categories/slug/emails", http.StatusOK},
		{"unknown slug", "/categories/slug/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
