package mock

import (
	"context"

	"github.com/fwojciec/docidx"
)

var _ docidx.EntryService = (*EntryService)(nil)

// EntryService is a mock implementation of docidx.EntryService.
type EntryService struct {
	ReplaceEntriesFn func(ctx context.Context, siteID string, entries []*docidx.SearchEntry) error
	FindEntriesFn    func(ctx context.Context, filter docidx.EntryFilter) ([]*docidx.SearchEntry, error)
}

func (s *EntryService) ReplaceEntries(ctx context.Context, siteID string, entries []*docidx.SearchEntry) error {
	return s.ReplaceEntriesFn(ctx, siteID, entries)
}

func (s *EntryService) FindEntries(ctx context.Context, filter docidx.EntryFilter) ([]*docidx.SearchEntry, error) {
	return s.FindEntriesFn(ctx, filter)
}
