package docidx

import "context"

// SearchService provides ranked full-text search over stored entries.
type SearchService interface {
	// Search returns entries ordered by relevance to the query.
	// Returns EINVALID for a blank query.
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}

// Indexer maintains the full-text index behind a SearchService.
type Indexer interface {
	// IndexEntries replaces the indexed entries of a site.
	IndexEntries(ctx context.Context, siteID string, entries []*SearchEntry) error

	// RemoveSite drops every indexed entry of a site.
	RemoveSite(ctx context.Context, siteID string) error
}

// SearchOptions configures search behavior.
type SearchOptions struct {
	// Filter results to specific site(s)
	SiteIDs []string `json:"siteIds,omitempty"`

	// Filter results to specific categories
	Categories []Category `json:"categories,omitempty"`

	// Maximum number of results to return
	Limit int `json:"limit,omitempty"`
}

// SearchResult represents a search match.
type SearchResult struct {
	Entry *SearchEntry `json:"entry"`
	Score float64      `json:"score"`
}
