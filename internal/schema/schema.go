// Package schema defines the catalog entities shared by the domain packages,
// their API response shapes, and the embedded SQL migrations that create them.
package schema

// Component is a functional area a prompt can be tied to (e.g. Email, Spreadsheet).
type Component struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Category groups prompts by business domain. Categories are immutable after creation.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// Prompt is a reusable text snippet. ComponentID and Metadata are optional and
// serialize as null when unset.
type Prompt struct {
	ID          int64   `json:"id"`
	CategoryID  int64   `json:"categoryId"`
	ComponentID *int64  `json:"componentId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Content     string  `json:"content"`
	IsFavorite  bool    `json:"isFavorite"`
	Metadata    *string `json:"metadata"`
}

// PromptResponse is a prompt with its resolved relations. A relation that
// does not resolve is nil and omitted from the JSON body.
type PromptResponse struct {
	Prompt
	Category  *Category  `json:"category,omitempty"`
	Component *Component `json:"component,omitempty"`
}

// CategoryResponse is a category with all of its prompts as plain rows.
type CategoryResponse struct {
	Category
	Prompts []Prompt `json:"prompts"`
}
