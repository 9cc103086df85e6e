package categories

import (
	"database/sql"

	"github.com/JaimeStill/promptlib/internal/schema"
	"github.com/JaimeStill/promptlib/pkg/query"
	"github.com/JaimeStill/promptlib/pkg/repository"
)

const listCacheKey = "categories:list"

var projection = query.
	NewProjectionMap("public", "categories", "c").
	Project("id", "ID").
	Project("name", "Name").
	Project("slug", "Slug").
	Project("description", "Description").
	Project("icon", "Icon").
	Project("color", "Color")

var promptProjection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "ID").
	Project("category_id", "CategoryID").
	Project("component_id", "ComponentID").
	Project("title", "Title").
	Project("description", "Description").
	Project("content", "Content").
	Project("is_favorite", "IsFavorite").
	Project("metadata", "Metadata")

var defaultSort = query.SortField{Field: "ID"}

func scanCategory(s repository.Scanner) (schema.Category, error) {
	var c schema.Category
	err := s.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Icon, &c.Color)
	return c, err
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

	if componentID.Valid {
		p.ComponentID = &componentID.Int64
	}
	if metadata.Valid {
		p.Metadata = &metadata.String
	}
	return p, nil
}
