// Package refresh keeps stored search indexes in sync with their sources.
// It coordinates index location, fetching, decoding, storage and
// full-text indexing for one site or many.
package refresh

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/docidx"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of sites refreshed at once.
const DefaultConcurrency = 4

// Refresher refreshes the stored entries of documentation sites.
type Refresher struct {
	Sites   docidx.SiteService
	Entries docidx.EntryService
	Locator docidx.IndexLocator
	Fetcher docidx.Fetcher
	Codec   docidx.Codec

	// Indexer, if set, receives each site's new entries for full-text search.
	Indexer docidx.Indexer

	// RateLimiter, if set, bounds index fetches per domain.
	RateLimiter docidx.DomainLimiter

	Concurrency int
	RetryDelays []time.Duration

	// Now returns the refresh timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Result holds the outcome of refreshing one site.
type Result struct {
	Site     *docidx.Site
	IndexURL string
	Hash     string
	Entries  int

	// Skipped is true when the index was unchanged and nothing was stored.
	Skipped bool
}

// Summary holds the outcome of refreshing many sites.
type Summary struct {
	Refreshed int
	Skipped   int
	Failed    int

	// Results is in the order of the input sites. Failed sites have a nil
	// Result and a non-nil Err.
	Results []SiteResult
}

// SiteResult pairs a site with its refresh outcome.
type SiteResult struct {
	Site   *docidx.Site
	Result *Result
	Err    error
}

// ProgressEvent reports progress during RefreshAll.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Site      string
	Result    *Result
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting refresh progress.
type ProgressFunc func(event ProgressEvent)

// Refresh locates, fetches and stores the index of site. Unless force is
// set, an index whose content hash matches the last refresh is skipped.
//
// Entries are committed before the search index is updated. If indexing
// fails the stored entries are already new while the search index and the
// site record are not; the site's hash is left unchanged, so the next
// refresh redoes both.
func (r *Refresher) Refresh(ctx context.Context, site *docidx.Site, force bool) (*Result, error) {
	indexURL, err := r.Locator.Locate(ctx, site.SourceURL)
	if err != nil {
		return nil, fmt.Errorf("locate index: %w", err)
	}

	raw, err := r.fetch(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}

	result := &Result{
		Site:     site,
		IndexURL: indexURL,
		Hash:     HashContent(raw),
	}

	if !force && result.Hash == site.ContentHash && indexURL == site.IndexURL {
		result.Skipped = true
		result.Entries = site.EntryCount
		return result, nil
	}

	idx, err := r.Codec.Decode(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", indexURL, err)
	}
	result.Entries = idx.Len()

	if err := r.Entries.ReplaceEntries(ctx, site.ID, idx.Entries); err != nil {
		return nil, fmt.Errorf("store entries: %w", err)
	}

	if r.Indexer != nil {
		if err := r.Indexer.IndexEntries(ctx, site.ID, idx.Entries); err != nil {
			return nil, fmt.Errorf("index entries (stored entries updated, search index stale until next refresh): %w", err)
		}
	}

	now := r.now()
	updated, err := r.Sites.UpdateSite(ctx, site.ID, docidx.SiteUpdate{
		IndexURL:    &indexURL,
		ContentHash: &result.Hash,
		EntryCount:  &result.Entries,
		RefreshedAt: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("update site: %w", err)
	}
	result.Site = updated

	return result, nil
}

// RefreshAll refreshes sites concurrently. A failing site is reported in
// the summary and through progress; it does not stop the others. An error
// is returned only if ctx is canceled.
func (r *Refresher) RefreshAll(ctx context.Context, sites []*docidx.Site, force bool, progress ProgressFunc) (*Summary, error) {
	// Set up concurrency
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	type indexedResult struct {
		position int
		SiteResult
	}
	resultCh := make(chan indexedResult, len(sites))

	var completed atomic.Int64
	total := len(sites)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, site := range sites {
			g.Go(func() error {
				res, err := r.Refresh(gctx, site, force)
				resultCh <- indexedResult{position: i, SiteResult: SiteResult{Site: site, Result: res, Err: err}}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	summary := &Summary{Results: make([]SiteResult, len(sites))}
	for res := range resultCh {
		completed.Add(1)
		summary.Results[res.position] = res.SiteResult

		event := ProgressEvent{
			Completed: int(completed.Load()),
			Total:     total,
			Site:      res.Site.Name,
			Result:    res.Result,
			Error:     res.Err,
		}
		switch {
		case res.Err != nil:
			summary.Failed++
			event.Type = ProgressFailed
		case res.Result.Skipped:
			summary.Skipped++
			event.Type = ProgressCompleted
		default:
			summary.Refreshed++
			event.Type = ProgressCompleted
		}
		if progress != nil {
			progress(event)
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

func (r *Refresher) fetch(ctx context.Context, url string) (string, error) {
	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetch := r.Fetcher.Fetch
	if r.RateLimiter != nil {
		fetch = NewLimitedFetcher(r.Fetcher, r.RateLimiter).Fetch
	}
	return FetchWithRetryDelays(ctx, url, fetch, delays)
}

func (r *Refresher) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
