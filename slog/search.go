package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docidx"
)

// Ensure LoggingSearchService implements docidx.SearchService.
var _ docidx.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with debug logging.
type LoggingSearchService struct {
	next   docidx.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next docidx.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the operation.
func (s *LoggingSearchService) Search(ctx context.Context, query string, opts docidx.SearchOptions) (results []docidx.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"query", query,
			"sites", len(opts.SiteIDs),
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, opts)
}

// Ensure LoggingIndexer implements docidx.Indexer.
var _ docidx.Indexer = (*LoggingIndexer)(nil)

// LoggingIndexer wraps an Indexer with debug logging.
type LoggingIndexer struct {
	next   docidx.Indexer
	logger *slog.Logger
}

// NewLoggingIndexer creates a new LoggingIndexer.
func NewLoggingIndexer(next docidx.Indexer, logger *slog.Logger) *LoggingIndexer {
	return &LoggingIndexer{next: next, logger: logger}
}

// IndexEntries delegates to the wrapped indexer and logs the operation.
func (i *LoggingIndexer) IndexEntries(ctx context.Context, siteID string, entries []*docidx.SearchEntry) (err error) {
	defer func(begin time.Time) {
		i.logger.Info("index entries",
			"site", siteID,
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.IndexEntries(ctx, siteID, entries)
}

// RemoveSite delegates to the wrapped indexer and logs the operation.
func (i *LoggingIndexer) RemoveSite(ctx context.Context, siteID string) (err error) {
	defer func(begin time.Time) {
		i.logger.Info("remove site",
			"site", siteID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.RemoveSite(ctx, siteID)
}
