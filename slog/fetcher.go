// Package slog provides log/slog decorators for docidx services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docidx"
)

// Ensure LoggingFetcher implements docidx.Fetcher.
var _ docidx.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   docidx.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docidx.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (content string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingIndexLocator implements docidx.IndexLocator.
var _ docidx.IndexLocator = (*LoggingIndexLocator)(nil)

// LoggingIndexLocator wraps an IndexLocator with debug logging.
type LoggingIndexLocator struct {
	next   docidx.IndexLocator
	logger *slog.Logger
}

// NewLoggingIndexLocator creates a new LoggingIndexLocator.
func NewLoggingIndexLocator(next docidx.IndexLocator, logger *slog.Logger) *LoggingIndexLocator {
	return &LoggingIndexLocator{next: next, logger: logger}
}

// Locate delegates to the wrapped locator and logs the operation.
func (l *LoggingIndexLocator) Locate(ctx context.Context, sourceURL string) (indexURL string, err error) {
	defer func(begin time.Time) {
		l.logger.Info("locate index",
			"source", sourceURL,
			"index", indexURL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Locate(ctx, sourceURL)
}
