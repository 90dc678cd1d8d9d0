package model

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// SimpleMeetingCategory is the special category that never carries a
// subcategory.
const SimpleMeetingCategory = "Simple Meeting"

//go:embed categories.json
var categoriesJSON []byte

// CategoryCatalog is the static category -> subcategory-list mapping.
// It is decoded once at startup and immutable afterwards.
type CategoryCatalog struct {
	names         []string            // canonical casing, sorted
	subcategories map[string][]string // keyed by lowercase category name
	canonical     map[string]string   // lowercase -> canonical name
}

// LoadCategoryCatalog decodes the bundled category configuration.
func LoadCategoryCatalog() (*CategoryCatalog, error) {
	var raw map[string][]string
	if err := json.Unmarshal(categoriesJSON, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode category catalog: %w", err)
	}
	return NewCategoryCatalog(raw), nil
}

// NewCategoryCatalog builds a catalog from an explicit mapping (used by tests).
func NewCategoryCatalog(raw map[string][]string) *CategoryCatalog {
	c := &CategoryCatalog{
		subcategories: make(map[string][]string, len(raw)),
		canonical:     make(map[string]string, len(raw)),
	}
	for name, subs := range raw {
		key := strings.ToLower(name)
		c.names = append(c.names, name)
		c.canonical[key] = name
		c.subcategories[key] = append([]string(nil), subs...)
	}
	sort.Strings(c.names)
	return c
}

// Categories returns all category names in canonical casing.
func (c *CategoryCatalog) Categories() []string {
	return append([]string(nil), c.names...)
}

// Subcategories returns the configured subcategories of a category, or nil
// if the category is unknown.
func (c *CategoryCatalog) Subcategories(category string) []string {
	subs, ok := c.subcategories[strings.ToLower(category)]
	if !ok {
		return nil
	}
	return append([]string(nil), subs...)
}

// ValidateCategory checks raw against the catalog case-insensitively and
// returns the canonical category name.
func (c *CategoryCatalog) ValidateCategory(raw string) (string, *FieldError) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", &FieldError{Field: "category", Message: "category is blank"}
	}
	canonical, ok := c.canonical[strings.ToLower(trimmed)]
	if !ok {
		return "", &FieldError{Field: "category", Message: fmt.Sprintf("invalid category %q", trimmed)}
	}
	return canonical, nil
}

// ValidateSubcategory checks raw against the category's configured list.
// The Simple Meeting category always yields an empty subcategory, as does
// blank input for any category.
func (c *CategoryCatalog) ValidateSubcategory(category, raw string) (string, *FieldError) {
	if strings.EqualFold(category, SimpleMeetingCategory) {
		return "", nil
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}
	for _, sub := range c.subcategories[strings.ToLower(category)] {
		if strings.EqualFold(sub, trimmed) {
			return sub, nil
		}
	}
	return "", &FieldError{
		Field:   "subcategory",
		Message: fmt.Sprintf("invalid subcategory %q for category %q", trimmed, category),
	}
}
