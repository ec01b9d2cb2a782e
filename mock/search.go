package mock

import (
	"context"

	"github.com/fwojciec/docidx"
)

var (
	_ docidx.SearchService = (*SearchService)(nil)
	_ docidx.Indexer       = (*Indexer)(nil)
)

// SearchService is a mock implementation of docidx.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, opts docidx.SearchOptions) ([]docidx.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, opts docidx.SearchOptions) ([]docidx.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}

// Indexer is a mock implementation of docidx.Indexer.
type Indexer struct {
	IndexEntriesFn func(ctx context.Context, siteID string, entries []*docidx.SearchEntry) error
	RemoveSiteFn   func(ctx context.Context, siteID string) error
}

func (i *Indexer) IndexEntries(ctx context.Context, siteID string, entries []*docidx.SearchEntry) error {
	return i.IndexEntriesFn(ctx, siteID, entries)
}

func (i *Indexer) RemoveSite(ctx context.Context, siteID string) error {
	return i.RemoveSiteFn(ctx, siteID)
}
