package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/docidx"
	main "github.com/fwojciec/docidx/cmd/docidx"
	"github.com/fwojciec/docidx/mock"
)

// testContext returns a background context for tests.
func testContext() context.Context {
	return context.Background()
}

// newDeps returns dependencies writing to fresh buffers.
func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    testContext(),
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

// siteService returns a SiteService whose FindSites filters sites by name.
func siteService(sites ...*docidx.Site) *mock.SiteService {
	return &mock.SiteService{
		FindSitesFn: func(_ context.Context, filter docidx.SiteFilter) ([]*docidx.Site, error) {
			if filter.Name == nil {
				return sites, nil
			}
			for _, s := range sites {
				if s.Name == *filter.Name {
					return []*docidx.Site{s}, nil
				}
			}
			return nil, nil
		},
	}
}

func testSite() *docidx.Site {
	return &docidx.Site{
		ID:         "site-1",
		Name:       "optionalargchecks",
		SourceURL:  "https://example.com/dev/",
		IndexURL:   "https://example.com/dev/search_index.js",
		EntryCount: 4,
	}
}

func testEntries() []*docidx.SearchEntry {
	return []*docidx.SearchEntry{
		{SiteID: "site-1", Position: 0, Location: "index.html#", Page: "Home", Title: "Home", Text: "Provides two macros, @mark and @skip", Category: docidx.CategoryPage},
		{SiteID: "site-1", Position: 1, Location: "index.html#API-1", Page: "Home", Title: "API", Category: docidx.CategorySection},
		{SiteID: "site-1", Position: 2, Location: "index.html#OptionalArgChecks.@mark-Tuple{Any,Any}", Page: "Home", Title: "OptionalArgChecks.@mark", Text: "@mark label ex", Category: docidx.CategoryMacro},
		{SiteID: "site-1", Position: 3, Location: "index.html#OptionalArgChecks.@skip", Page: "Home", Title: "OptionalArgChecks.@skip", Text: "@skip ex", Category: docidx.CategoryMacro},
	}
}

func entryService(t *testing.T, entries []*docidx.SearchEntry) *mock.EntryService {
	t.Helper()
	return &mock.EntryService{
		FindEntriesFn: func(_ context.Context, filter docidx.EntryFilter) ([]*docidx.SearchEntry, error) {
			var out []*docidx.SearchEntry
			for _, e := range entries {
				if filter.SiteID != nil && e.SiteID != *filter.SiteID {
					continue
				}
				if filter.Location != nil && e.Location != *filter.Location {
					continue
				}
				out = append(out, e)
			}
			return out, nil
		},
	}
}
