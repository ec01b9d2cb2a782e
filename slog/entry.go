package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docidx"
)

// Ensure LoggingEntryService implements docidx.EntryService.
var _ docidx.EntryService = (*LoggingEntryService)(nil)

// LoggingEntryService wraps an EntryService with debug logging.
type LoggingEntryService struct {
	next   docidx.EntryService
	logger *slog.Logger
}

// NewLoggingEntryService creates a new LoggingEntryService.
func NewLoggingEntryService(next docidx.EntryService, logger *slog.Logger) *LoggingEntryService {
	return &LoggingEntryService{next: next, logger: logger}
}

// ReplaceEntries delegates to the wrapped service and logs the operation.
func (s *LoggingEntryService) ReplaceEntries(ctx context.Context, siteID string, entries []*docidx.SearchEntry) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("replace entries",
			"site", siteID,
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReplaceEntries(ctx, siteID, entries)
}

// FindEntries delegates to the wrapped service and logs the operation.
func (s *LoggingEntryService) FindEntries(ctx context.Context, filter docidx.EntryFilter) (entries []*docidx.SearchEntry, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find entries",
			"keyword", filter.Keyword,
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindEntries(ctx, filter)
}
