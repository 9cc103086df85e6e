package prompts

import (
	"database/sql"
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/promptlib/internal/schema"
	"github.com/JaimeStill/promptlib/pkg/query"
	"github.com/JaimeStill/promptlib/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "ID").
	Project("category_id", "CategoryID").
	Project("component_id", "ComponentID").
	Project("title", "Title").
	Project("description", "Description").
	Project("content", "Content").
	Project("is_favorite", "IsFavorite").
	Project("metadata", "Metadata").
	Join("public", "categories", "c", "LEFT JOIN", "p.category_id = c.id").
	Project("id", "Category.ID").
	Project("name", "Category.Name").
	Project("slug", "Category.Slug").
	Project("description", "Category.Description").
	Project("icon", "Category.Icon").
	Project("color", "Category.Color").
	Join("public", "components", "m", "LEFT JOIN", "p.component_id = m.id").
	Project("id", "Component.ID").
	Project("name", "Component.Name")

var defaultSort = query.SortField{Field: "ID"}

const insertPrompt = `
	INSERT INTO prompts(category_id, component_id, title, description, content, is_favorite, metadata)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, category_id, component_id, title, description, content, is_favorite, metadata`

// Filters contains optional filtering criteria for prompt listing.
// Nil fields are ignored; set fields are ANDed.
// CategoryID is an exact match. Search is a case-insensitive substring
// match against title, description, or content.
type Filters struct {
	CategoryID *int64  `json:"categoryId,omitempty"`
	Search     *string `json:"search,omitempty"`
}

// Apply adds filter conditions to a query builder. The category id is bound
// by value so the argument list holds plain integers.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.CategoryID != nil {
		b.WhereEquals("CategoryID", *f.CategoryID)
	}
	return b.WhereSearch(f.Search, "Title", "Description", "Content")
}

// Matches reports whether p satisfies the filters.
// It mirrors Apply for stores that filter in process.
func (f Filters) Matches(p schema.Prompt) bool {
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if f.Search == nil || *f.Search == "" {
		return true
	}

	needle := strings.ToLower(*f.Search)
	for _, field := range []string{p.Title, p.Description, p.Content} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// FiltersFromQuery extracts filter values from URL query parameters.
// A categoryId that is not a positive integer and an empty search are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("categoryId"); c != "" {
		if id, err := strconv.ParseInt(c, 10, 64); err == nil && id > 0 {
			f.CategoryID = &id
		}
	}

	if s := values.Get("search"); s != "" {
		f.Search = &s
	}

	return f
}

func scanPrompt(s repository.Scanner) (schema.Prompt, error) {
	var (
		p           schema.Prompt
		componentID sql.NullInt64
		metadata    sql.NullString
	)

	err := s.Scan(
		&p.ID, &p.CategoryID, &componentID,
		&p.Title, &p.Description, &p.Content,
		&p.IsFavorite, &metadata,
	)
	if err != nil {
		return p, err
	}

	p.ComponentID = nullableInt(componentID)
	p.Metadata = nullableString(metadata)
	return p, nil
}

// scanPromptResponse scans a row of the joined projection. Relations whose
// join produced no row stay nil.
func scanPromptResponse(s repository.Scanner) (schema.PromptResponse, error) {
	var (
		r           schema.PromptResponse
		componentID sql.NullInt64
		metadata    sql.NullString

		catID                                      sql.NullInt64
		catName, catSlug, catDesc, catIcon, catClr sql.NullString

		compID   sql.NullInt64
		compName sql.NullString
	)

	err := s.Scan(
		&r.ID, &r.CategoryID, &componentID,
		&r.Title, &r.Description, &r.Content,
		&r.IsFavorite, &metadata,
		&catID, &catName, &catSlug, &catDesc, &catIcon, &catClr,
		&compID, &compName,
	)
	if err != nil {
		return r, err
	}

	r.ComponentID = nullableInt(componentID)
	r.Metadata = nullableString(metadata)

	if catID.Valid {
		r.Category = &schema.Category{
			ID:          catID.Int64,
			Name:        catName.String,
			Slug:        catSlug.String,
			Description: catDesc.String,
			Icon:        catIcon.String,
			Color:       catClr.String,
		}
	}

	if compID.Valid {
		r.Component = &schema.Component{
			ID:   compID.Int64,
			Name: compName.String,
		}
	}

	return r, nil
}

func nullableInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
