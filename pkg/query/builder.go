package query

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// SortField is one ORDER BY term. Field is a view name resolved through the
// ProjectionMap.
type SortField struct {
	Field      string
	Descending bool
}

// params collects positional arguments and hands out their placeholders.
type params struct {
	args []any
}

func (p *params) bind(v any) string {
	p.args = append(p.args, v)
	return "$" + strconv.Itoa(len(p.args))
}

// Builder assembles SELECT statements over a ProjectionMap. Conditions are
// ANDed; placeholders are numbered when the statement is built.
type Builder struct {
	projection *ProjectionMap
	conditions []func(*params) string
	sort       []SortField
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// NewBuilder creates a Builder over projection, ordered by sort when given.
func NewBuilder(projection *ProjectionMap, sort ...SortField) *Builder {
	return &Builder{projection: projection, sort: sort}
}

// Build returns the SELECT statement and its arguments.
func (b *Builder) Build() (string, []any) {
	var p params
	sql := "SELECT " + b.projection.Columns() + " FROM " + b.projection.From() + b.where(&p) + b.orderBy()
	return sql, p.args
}

// BuildCount returns a COUNT(*) over the same FROM and WHERE.
func (b *Builder) BuildCount() (string, []any) {
	var p params
	return "SELECT COUNT(*) FROM " + b.projection.From() + b.where(&p), p.args
}

// BuildSingle selects the row whose field equals value. Builder conditions
// are not applied.
func (b *Builder) BuildSingle(field string, value any) (string, []any) {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		b.projection.Columns(), b.projection.From(), b.projection.Column(field))
	return sql, []any{value}
}

// WhereEquals adds field = value. Nil values, including typed nil pointers,
// add nothing.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	col := b.projection.Column(field)
	b.conditions = append(b.conditions, func(p *params) string {
		return col + " = " + p.bind(value)
	})
	return b
}

// WhereSearch adds a case-insensitive substring match against any of fields.
// The term is matched literally: LIKE wildcards in it are escaped. A nil or
// empty term adds nothing.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	pattern := "%" + likeEscaper.Replace(*search) + "%"
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = b.projection.Column(f)
	}

	b.conditions = append(b.conditions, func(p *params) string {
		terms := make([]string, len(cols))
		for i, col := range cols {
			terms[i] = col + " ILIKE " + p.bind(pattern)
		}
		return "(" + strings.Join(terms, " OR ") + ")"
	})
	return b
}

func (b *Builder) where(p *params) string {
	if len(b.conditions) == 0 {
		return ""
	}
	clauses := make([]string, len(b.conditions))
	for i, render := range b.conditions {
		clauses[i] = render(p)
	}
	return " WHERE " + strings.Join(clauses, " AND ")
}

func (b *Builder) orderBy() string {
	if len(b.sort) == 0 {
		return ""
	}
	terms := make([]string, len(b.sort))
	for i, s := range b.sort {
		dir := " ASC"
		if s.Descending {
			dir = " DESC"
		}
		terms[i] = b.projection.Column(s.Field) + dir
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}
