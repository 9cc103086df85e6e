package components

import (
	"github.com/JaimeStill/promptlib/internal/schema"
	"github.com/JaimeStill/promptlib/pkg/query"
	"github.com/JaimeStill/promptlib/pkg/repository"
)

const listCacheKey = "components:list"

var projection = query.
	NewProjectionMap("public", "components", "m").
	Project("id", "ID").
	Project("name", "Name")

var defaultSort = query.SortField{Field: "ID"}

func scanComponent(s repository.Scanner) (schema.Component, error) {
	var c schema.Component
	err := s.Scan(&c.ID, &c.Name)
	return c, err
}
