package prompts_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/JaimeStill/promptlib/internal/prompts"
	"github.com/JaimeStill/promptlib/internal/schema"
	"github.com/JaimeStill/promptlib/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", prompts.ErrNotFound, http.StatusNotFound},
		{"duplicate", prompts.ErrDuplicate, http.StatusConflict},
		{"validation sentinel", prompts.ErrValidation, http.StatusBadRequest},
		{"validation error", &prompts.ValidationError{Field: "title", Message: "title is required"}, http.StatusBadRequest},
		{"body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find: %w", prompts.ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prompts.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestInvalidReference(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"categoryId", "categoryId does not reference an existing category"},
		{"componentId", "componentId does not reference an existing component"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			err := prompts.InvalidReference(tt.field)

			var verr *prompts.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error = %T, want *ValidationError", err)
			}
			if verr.Field != tt.field || verr.Message != tt.want {
				t.Errorf("got {%q %q}, want {%q %q}", verr.Field, verr.Message, tt.field, tt.want)
			}
			if !errors.Is(err, prompts.ErrValidation) {
				t.Error("InvalidReference should unwrap to ErrValidation")
			}
		})
	}
}

func TestDecodeCreateCommand(t *testing.T) {
	t.Run("full body", func(t *testing.T) {
		body := `{"categoryId":2,"componentId":3,"title":"T","description":"D","content":"C","isFavorite":true,"metadata":"{\"tags\":[]}"}`

		cmd, err := prompts.DecodeCreateCommand(strings.NewReader(body))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if cmd.CategoryID != 2 {
			t.Errorf("CategoryID = %d, want 2", cmd.CategoryID)
		}
		if cmd.ComponentID == nil || *cmd.ComponentID != 3 {
			t.Errorf("ComponentID = %v, want 3", cmd.ComponentID)
		}
		if !cmd.IsFavorite {
			t.Error("IsFavorite = false, want true")
		}
		if cmd.Metadata == nil || *cmd.Metadata != `{"tags":[]}` {
			t.Errorf("Metadata = %v", cmd.Metadata)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		body := `{"categoryId":1,"title":"T","description":"D","content":"C","extra":"ignored"}`

		cmd, err := prompts.DecodeCreateCommand(strings.NewReader(body))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if cmd.ComponentID != nil {
			t.Errorf("ComponentID = %v, want nil", *cmd.ComponentID)
		}
		if cmd.IsFavorite {
			t.Error("IsFavorite should default to false")
		}
		if cmd.Metadata != nil {
			t.Errorf("Metadata = %v, want nil", *cmd.Metadata)
		}
	})
}

func TestDecodeCreateCommandComponentID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    *int64
		wantErr bool
	}{
		{"absent", "", nil, false},
		{"null", `null`, nil, false},
		{"zero", `0`, nil, false},
		{"empty string", `""`, nil, false},
		{"false", `false`, nil, false},
		{"integer", `4`, ptr(int64(4)), false},
		{"integral float", `4.0`, ptr(int64(4)), false},
		{"numeric string", `"7"`, ptr(int64(7)), false},
		{"zero string", `"0"`, nil, false},
		{"non-numeric string", `"abc"`, nil, true},
		{"fractional", `1.5`, nil, true},
		{"negative", `-2`, nil, true},
		{"true", `true`, nil, true},
		{"array", `[1]`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"categoryId":1,"title":"T","description":"D","content":"C"`
			if tt.value != "" {
				body += `,"componentId":` + tt.value
			}
			body += "}"

			cmd, err := prompts.DecodeCreateCommand(strings.NewReader(body))

			if tt.wantErr {
				var verr *prompts.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("error = %v, want *ValidationError", err)
				}
				if verr.Field != "componentId" {
					t.Errorf("field = %q, want componentId", verr.Field)
				}
				return
			}

			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			switch {
			case tt.want == nil && cmd.ComponentID != nil:
				t.Errorf("ComponentID = %d, want nil", *cmd.ComponentID)
			case tt.want != nil && (cmd.ComponentID == nil || *cmd.ComponentID != *tt.want):
				t.Errorf("ComponentID = %v, want %d", cmd.ComponentID, *tt.want)
			}
		})
	}
}

func TestDecodeCreateCommandRejects(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"not json", `nope`, ""},
		{"array body", `[]`, ""},
		{"null body", `null`, ""},
		{"missing categoryId", `{"title":"T","description":"D","content":"C"}`, "categoryId"},
		{"string categoryId", `{"categoryId":"1","title":"T","description":"D","content":"C"}`, "categoryId"},
		{"zero categoryId", `{"categoryId":0,"title":"T","description":"D","content":"C"}`, "categoryId"},
		{"missing title", `{"categoryId":1,"description":"D","content":"C"}`, "title"},
		{"blank title", `{"categoryId":1,"title":"  ","description":"D","content":"C"}`, "title"},
		{"numeric title", `{"categoryId":1,"title":5,"description":"D","content":"C"}`, "title"},
		{"missing description", `{"categoryId":1,"title":"T","content":"C"}`, "description"},
		{"missing content", `{"categoryId":1,"title":"T","description":"D"}`, "content"},
		{"string isFavorite", `{"categoryId":1,"title":"T","description":"D","content":"C","isFavorite":"yes"}`, "isFavorite"},
		{"object metadata", `{"categoryId":1,"title":"T","description":"D","content":"C","metadata":{}}`, "metadata"},
		{"first failure wins", `{"title":"","description":"","content":""}`, "categoryId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := prompts.DecodeCreateCommand(strings.NewReader(tt.body))

			var verr *prompts.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestCreateCommandValidate(t *testing.T) {
	valid := prompts.CreateCommand{CategoryID: 1, Title: "T", Description: "D", Content: "C"}

	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name      string
		mutate    func(*prompts.CreateCommand)
		wantField string
	}{
		{"zero category", func(c *prompts.CreateCommand) { c.CategoryID = 0 }, "categoryId"},
		{"negative component", func(c *prompts.CreateCommand) { c.ComponentID = ptr(int64(-1)) }, "componentId"},
		{"empty content", func(c *prompts.CreateCommand) { c.Content = "" }, "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := valid
			tt.mutate(&cmd)

			var verr *prompts.ValidationError
			if !errors.As(cmd.Validate(), &verr) {
				t.Fatal("expected *ValidationError")
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantCategory *int64
		wantSearch   *string
	}{
		{"empty", "", nil, nil},
		{"category", "categoryId=3", ptr(int64(3)), nil},
		{"non-numeric category ignored", "categoryId=abc", nil, nil},
		{"zero category ignored", "categoryId=0", nil, nil},
		{"negative category ignored", "categoryId=-1", nil, nil},
		{"search", "search=email", nil, ptr("email")},
		{"empty search ignored", "search=", nil, nil},
		{"both", "search=report&categoryId=2", ptr(int64(2)), ptr("report")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			f := prompts.FiltersFromQuery(values)

			if (f.CategoryID == nil) != (tt.wantCategory == nil) ||
				(f.CategoryID != nil && *f.CategoryID != *tt.wantCategory) {
				t.Errorf("CategoryID = %v, want %v", f.CategoryID, tt.wantCategory)
			}
			if (f.Search == nil) != (tt.wantSearch == nil) ||
				(f.Search != nil && *f.Search != *tt.wantSearch) {
				t.Errorf("Search = %v, want %v", f.Search, tt.wantSearch)
			}
		})
	}
}

func TestFiltersApply(t *testing.T) {
	projection := query.NewProjectionMap("public", "prompts", "p").
		Project("id", "ID").
		Project("category_id", "CategoryID").
		Project("title", "Title").
		Project("description", "Description").
		Project("content", "Content")

	t.Run("no filters", func(t *testing.T) {
		b := query.NewBuilder(projection)
		prompts.Filters{}.Apply(b)
		sql, args := b.Build()

		if strings.Contains(sql, "WHERE") {
			t.Errorf("sql = %q, want no WHERE", sql)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("category and search form one compound clause", func(t *testing.T) {
		b := query.NewBuilder(projection)
		prompts.Filters{CategoryID: ptr(int64(2)), Search: ptr("email")}.Apply(b)
		sql, args := b.Build()

		want := " WHERE p.category_id = $1 AND (p.title ILIKE $2 OR p.description ILIKE $3 OR p.content ILIKE $4)"
		if !strings.HasSuffix(sql, want) {
			t.Errorf("sql = %q, want suffix %q", sql, want)
		}
		if len(args) != 4 || args[0] != int64(2) || args[1] != "%email%" {
			t.Errorf("args = %v", args)
		}
	})

	t.Run("category alone binds the id by value", func(t *testing.T) {
		b := query.NewBuilder(projection)
		prompts.Filters{CategoryID: ptr(int64(5))}.Apply(b)
		sql, args := b.Build()

		if !strings.HasSuffix(sql, " WHERE p.category_id = $1") {
			t.Errorf("sql = %q", sql)
		}
		if len(args) != 1 {
			t.Fatalf("args = %v, want one", args)
		}
		if id, ok := args[0].(int64); !ok || id != 5 {
			t.Errorf("args[0] = %#v, want int64(5)", args[0])
		}
	})
}

func TestFiltersMatches(t *testing.T) {
	p := schema.Prompt{
		CategoryID:  1,
		Title:       "Meeting Request",
		Description: "Request a meeting",
		Content:     "Please find a time on the CALENDAR.",
	}

	tests := []struct {
		name    string
		filters prompts.Filters
		want    bool
	}{
		{"no filters", prompts.Filters{}, true},
		{"same category", prompts.Filters{CategoryID: ptr(int64(1))}, true},
		{"other category", prompts.Filters{CategoryID: ptr(int64(2))}, false},
		{"title substring any case", prompts.Filters{Search: ptr("meeting")}, true},
		{"content substring", prompts.Filters{Search: ptr("calendar")}, true},
		{"no match", prompts.Filters{Search: ptr("invoice")}, false},
		{"empty search", prompts.Filters{Search: ptr("")}, true},
		{"category and search intersect", prompts.Filters{CategoryID: ptr(int64(2)), Search: ptr("meeting")}, false},
		{"percent is literal", prompts.Filters{Search: ptr("%")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filters.Matches(p); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
