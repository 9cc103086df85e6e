package query_test

import (
	"testing"

	"github.com/JaimeStill/promptlib/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "prompts", "p").
		Project("id", "ID").
		Project("title", "Title").
		Project("category_id", "CategoryID")
}

func joinedProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "prompts", "p").
		Project("id", "ID").
		Project("title", "Title").
		Join("public", "categories", "c", "LEFT JOIN", "p.category_id = c.id").
		Project("id", "Category.ID").
		Project("name", "Category.Name")
}

func ptr(s string) *string { return &s }

func TestProjectionMapColumns(t *testing.T) {
	p := testProjection()
	want := "p.id, p.title, p.category_id"
	if got := p.Columns(); got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumnLookup(t *testing.T) {
	p := joinedProjection()

	tests := []struct {
		name     string
		viewName string
		want     string
	}{
		{"root column", "Title", "p.title"},
		{"joined column", "Category.Name", "c.name"},
		{"joined id keeps alias", "Category.ID", "c.id"},
		{"unmapped passthrough", "unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Column(tt.viewName); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.viewName, got, tt.want)
			}
		})
	}
}

func TestProjectionMapFrom(t *testing.T) {
	t.Run("no joins", func(t *testing.T) {
		if got, want := testProjection().From(), "public.prompts p"; got != want {
			t.Errorf("From() = %q, want %q", got, want)
		}
	})

	t.Run("multiple joins", func(t *testing.T) {
		p := joinedProjection().
			Join("public", "components", "m", "LEFT JOIN", "p.component_id = m.id").
			Project("name", "Component.Name")

		want := "public.prompts p" +
			" LEFT JOIN public.categories c ON p.category_id = c.id" +
			" LEFT JOIN public.components m ON p.component_id = m.id"
		if got := p.From(); got != want {
			t.Errorf("From() = %q, want %q", got, want)
		}
	})
}

func TestBuilderBuild(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).Build()

	wantSQL := "SELECT p.id, p.title, p.category_id FROM public.prompts p"
	if sql != wantSQL {
		t.Errorf("Build() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("Build() args = %v, want empty", args)
	}
}

func TestBuilderBuildCount(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereEquals("CategoryID", int64(3))
	sql, args := b.BuildCount()

	wantSQL := "SELECT COUNT(*) FROM public.prompts p WHERE p.category_id = $1"
	if sql != wantSQL {
		t.Errorf("BuildCount() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != int64(3) {
		t.Errorf("BuildCount() args = %v, want [3]", args)
	}
}

func TestBuilderBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(joinedProjection()).BuildSingle("ID", int64(7))

	wantSQL := "SELECT p.id, p.title, c.id, c.name FROM public.prompts p" +
		" LEFT JOIN public.categories c ON p.category_id = c.id WHERE p.id = $1"
	if sql != wantSQL {
		t.Errorf("BuildSingle() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != int64(7) {
		t.Errorf("BuildSingle() args = %v, want [7]", args)
	}
}

func TestBuilderWhereEqualsNilSkipped(t *testing.T) {
	var id *int64
	b := query.NewBuilder(testProjection())
	b.WhereEquals("CategoryID", id)
	sql, args := b.Build()

	if sql != "SELECT p.id, p.title, p.category_id FROM public.prompts p" {
		t.Errorf("sql = %q, want no WHERE", sql)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderWhereSearch(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereSearch(ptr("email"), "Title", "CategoryID")
	sql, args := b.Build()

	wantSQL := "SELECT p.id, p.title, p.category_id FROM public.prompts p WHERE (p.title ILIKE $1 OR p.category_id ILIKE $2)"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 2 || args[0] != "%email%" || args[1] != "%email%" {
		t.Errorf("args = %v, want [%%email%% %%email%%]", args)
	}
}

func TestBuilderWhereSearchEscapesWildcards(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   string
	}{
		{"percent", "100%", `%100\%%`},
		{"underscore", "snake_case", `%snake\_case%`},
		{"backslash", `a\b`, `%a\\b%`},
		{"plain", "plain", "%plain%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := query.NewBuilder(testProjection())
			b.WhereSearch(ptr(tt.search), "Title")
			_, args := b.Build()

			if len(args) != 1 || args[0] != tt.want {
				t.Errorf("args = %v, want [%s]", args, tt.want)
			}
		})
	}
}

func TestBuilderWhereSearchSkipped(t *testing.T) {
	tests := []struct {
		name   string
		search *string
		fields []string
	}{
		{"nil search", nil, []string{"Title"}},
		{"empty search", ptr(""), []string{"Title"}},
		{"no fields", ptr("x"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := query.NewBuilder(testProjection())
			b.WhereSearch(tt.search, tt.fields...)
			_, args := b.Build()
			if len(args) != 0 {
				t.Errorf("args = %v, want empty", args)
			}
		})
	}
}

func TestBuilderCombinedConditions(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "ID"})
	b.WhereEquals("CategoryID", int64(2))
	b.WhereSearch(ptr("report"), "Title", "ID")
	sql, args := b.Build()

	wantSQL := "SELECT p.id, p.title, p.category_id FROM public.prompts p" +
		" WHERE p.category_id = $1 AND (p.title ILIKE $2 OR p.id ILIKE $3) ORDER BY p.id ASC"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 3 {
		t.Fatalf("args length = %d, want 3", len(args))
	}
	if args[0] != int64(2) {
		t.Errorf("args[0] = %v, want 2", args[0])
	}
}

func TestBuilderDefaultSort(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "ID", Descending: true})
	sql, _ := b.Build()

	wantSQL := "SELECT p.id, p.title, p.category_id FROM public.prompts p ORDER BY p.id DESC"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
}
