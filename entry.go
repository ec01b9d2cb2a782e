package docidx

import (
	"context"
	"strings"
)

// Category classifies an entry as a page, a section, or an API symbol.
type Category string

// Categories emitted by Documenter. Other non-empty values are accepted.
const (
	CategoryPage     Category = "page"
	CategorySection  Category = "section"
	CategoryMacro    Category = "macro"
	CategoryFunction Category = "function"
	CategoryType     Category = "type"
	CategoryModule   Category = "module"
	CategoryConstant Category = "constant"
)

// Known reports whether c is one of the categories declared above.
func (c Category) Known() bool {
	switch c {
	case CategoryPage, CategorySection, CategoryMacro, CategoryFunction,
		CategoryType, CategoryModule, CategoryConstant:
		return true
	}
	return false
}

// SearchEntry is one indexed record of a documentation search index.
type SearchEntry struct {
	Location string   `json:"location"`
	Page     string   `json:"page"`
	Title    string   `json:"title"`
	Text     string   `json:"text"`
	Category Category `json:"category"`

	// Set when the entry is stored for a site. Not part of the wire format.
	SiteID   string `json:"-"`
	Position int    `json:"-"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *SearchEntry) Validate() error {
	if e.Location == "" {
		return Errorf(EINVALID, "entry location required")
	}
	if !strings.Contains(e.Location, "#") {
		return Errorf(EINVALID, "entry location %q has no fragment separator", e.Location)
	}
	return nil
}

// PagePath returns the part of the location before the fragment separator.
func (e *SearchEntry) PagePath() string {
	path, _, _ := strings.Cut(e.Location, "#")
	return path
}

// Anchor returns the part of the location after the fragment separator.
// Page-level entries have an empty anchor.
func (e *SearchEntry) Anchor() string {
	_, anchor, _ := strings.Cut(e.Location, "#")
	return anchor
}

// Match reports whether the entry matches keyword under opts.
// The keyword is matched as a substring of the selected fields.
func (e *SearchEntry) Match(keyword string, opts LookupOptions) bool {
	if keyword == "" {
		return false
	}
	if len(opts.Categories) > 0 && !containsCategory(opts.Categories, e.Category) {
		return false
	}

	contains := func(s string) bool {
		if opts.CaseSensitive {
			return strings.Contains(s, keyword)
		}
		return strings.Contains(strings.ToLower(s), strings.ToLower(keyword))
	}

	switch opts.Field {
	case FieldTitle:
		return contains(e.Title)
	case FieldText:
		return contains(e.Text)
	default:
		return contains(e.Title) || contains(e.Text)
	}
}

func containsCategory(categories []Category, c Category) bool {
	for _, want := range categories {
		if want == c {
			return true
		}
	}
	return false
}

// EntryService represents a service for managing stored entries.
type EntryService interface {
	// ReplaceEntries atomically replaces all entries of a site.
	// Positions are assigned from the slice order.
	ReplaceEntries(ctx context.Context, siteID string, entries []*SearchEntry) error

	// FindEntries retrieves entries matching the filter, ordered by position.
	FindEntries(ctx context.Context, filter EntryFilter) ([]*SearchEntry, error)
}

// EntryFilter represents a filter for FindEntries.
type EntryFilter struct {
	SiteID   *string `json:"siteId"`
	Location *string `json:"location"`

	// Keyword restricts results to entries matching it under the lookup
	// options below. Empty means no keyword restriction.
	Keyword       string     `json:"keyword"`
	Field         Field      `json:"field"`
	Categories    []Category `json:"categories"`
	CaseSensitive bool       `json:"caseSensitive"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// LookupOptions returns the lookup options encoded in the filter.
func (f EntryFilter) LookupOptions() LookupOptions {
	return LookupOptions{
		Field:         f.Field,
		Categories:    f.Categories,
		CaseSensitive: f.CaseSensitive,
	}
}
