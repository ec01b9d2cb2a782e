package main

import (
	"fmt"

	"github.com/fwojciec/docidx"
)

const searchSnippetLength = 100

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	opts := docidx.SearchOptions{
		Categories: parseCategories(c.Category),
		Limit:      c.Limit,
	}

	names := make(map[string]string)
	for _, name := range c.Site {
		site, err := findSite(deps, name)
		if err != nil {
			return err
		}
		opts.SiteIDs = append(opts.SiteIDs, site.ID)
		names[site.ID] = site.Name
	}

	if len(names) == 0 {
		sites, err := deps.Sites.FindSites(deps.Ctx, docidx.SiteFilter{})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
			return err
		}
		for _, s := range sites {
			names[s.ID] = s.Name
		}
	}

	results, err := deps.Search.Search(deps.Ctx, c.Query, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No results for %q.\n", c.Query)
		return nil
	}

	for i, r := range results {
		e := r.Entry
		title := e.Title
		if title == "" {
			title = e.Location
		}
		fmt.Fprintf(deps.Stdout, "%d. %s [%s] (%s, %.2f)\n   %s\n", i+1, title, e.Category, names[e.SiteID], r.Score, e.Location)
		if snippet := docidx.Snippet(e.Text, searchSnippetLength); snippet != "" {
			fmt.Fprintf(deps.Stdout, "   %s\n", snippet)
		}
	}
	return nil
}
