// Package registry holds the static category table and its lookup rules.
package registry

import (
	"fmt"
	"strings"

	"github.com/arigatoexpress/DesktopOrganizer/internal/model"
)

// Registry is an immutable, deterministically ordered collection of
// categories fixed at process start. Exactly one fallback category always
// exists. Lookup methods scan in declaration order; the first match wins.
type Registry struct {
	byID       map[string]int
	categories []model.Category
	fallbackID string
}

// New builds a registry from the given categories. The fallback ID must name
// one of them. Category paths must be unique.
func New(categories []model.Category, fallbackID string) (*Registry, error) {
	r := &Registry{
		categories: make([]model.Category, len(categories)),
		byID:       make(map[string]int, len(categories)),
		fallbackID: fallbackID,
	}
	copy(r.categories, categories)

	paths := make(map[string]string, len(categories))
	for i, cat := range r.categories {
		if cat.ID == "" {
			return nil, fmt.Errorf("category %q has no ID", cat.Name)
		}
		if _, dup := r.byID[cat.ID]; dup {
			return nil, fmt.Errorf("duplicate category ID %q", cat.ID)
		}
		if prev, dup := paths[cat.Path]; dup {
			return nil, fmt.Errorf("categories %q and %q share path %q", prev, cat.ID, cat.Path)
		}
		r.byID[cat.ID] = i
		paths[cat.Path] = cat.ID
	}

	if _, ok := r.byID[fallbackID]; !ok {
		return nil, fmt.Errorf("fallback category %q not in registry", fallbackID)
	}
	return r, nil
}

// All returns the categories in declaration order. The returned slice is a
// copy; mutating it does not affect the registry.
func (r *Registry) All() []model.Category {
	out := make([]model.Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// Len returns the number of categories.
func (r *Registry) Len() int {
	return len(r.categories)
}

// ByExtension returns the first category whose extension set contains ext
// (case-insensitive exact match, leading dot expected).
func (r *Registry) ByExtension(ext string) (model.Category, bool) {
	ext = strings.ToLower(ext)
	if ext == "" {
		return model.Category{}, false
	}
	for _, cat := range r.categories {
		for _, e := range cat.Extensions {
			if e == ext {
				return cat, true
			}
		}
	}
	return model.Category{}, false
}

// ByKeyword returns the first category with a keyword appearing as a
// case-insensitive substring of name, along with the keyword that matched.
func (r *Registry) ByKeyword(name string) (model.Category, string, bool) {
	name = strings.ToLower(name)
	for _, cat := range r.categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(name, kw) {
				return cat, kw, true
			}
		}
	}
	return model.Category{}, "", false
}

// ByID returns the category with the given ID (case-insensitive).
func (r *Registry) ByID(id string) (model.Category, bool) {
	idx, ok := r.byID[strings.ToLower(id)]
	if !ok {
		return model.Category{}, false
	}
	return r.categories[idx], true
}

// Resolve maps a backend-reported category name onto a registry entry. Exact
// (case-insensitive) ID match is tried first, then containment in either
// direction. Returns false when nothing plausible matches.
func (r *Registry) Resolve(reported string) (model.Category, bool) {
	reported = strings.ToLower(strings.TrimSpace(reported))
	if reported == "" {
		return model.Category{}, false
	}
	if cat, ok := r.ByID(reported); ok {
		return cat, true
	}
	for _, cat := range r.categories {
		if strings.Contains(reported, cat.ID) || strings.Contains(cat.ID, reported) {
			return cat, true
		}
	}
	return model.Category{}, false
}

// Fallback returns the designated catch-all category.
func (r *Registry) Fallback() model.Category {
	return r.categories[r.byID[r.fallbackID]]
}

// Manifest renders the category list for backend prompts, one line per
// category with its ID, description and target path.
func (r *Registry) Manifest() string {
	var b strings.Builder
	for _, cat := range r.categories {
		fmt.Fprintf(&b, "- %s: %s (path: %s)\n", cat.ID, cat.Description, cat.Path)
	}
	return strings.TrimRight(b.String(), "\n")
}
