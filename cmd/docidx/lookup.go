package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/docidx"
	"github.com/fwojciec/docidx/bloom"
)

// Run executes the lookup command. The site's entries are loaded once and
// every keyword is checked against a trigram prefilter before scanning.
func (c *LookupCmd) Run(deps *Dependencies) error {
	field, err := docidx.ParseField(c.Field)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	site, err := findSite(deps, c.Name)
	if err != nil {
		return err
	}

	entries, err := deps.Entries.FindEntries(deps.Ctx, docidx.EntryFilter{SiteID: &site.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	idx := bloom.NewIndex(entries)
	opts := docidx.LookupOptions{
		Field:         field,
		Categories:    parseCategories(c.Category),
		CaseSensitive: c.CaseSensitive,
		Limit:         c.Limit,
	}

	for _, keyword := range c.Keywords {
		found := idx.Lookup(keyword, opts)
		if len(c.Keywords) > 1 {
			fmt.Fprintf(deps.Stdout, "%s:\n", keyword)
		}
		printMatches(deps.Stdout, found, c.Entries, len(c.Keywords) > 1)
	}
	return nil
}

func printMatches(w io.Writer, found []*docidx.SearchEntry, showEntries, indent bool) {
	prefix := ""
	if indent {
		prefix = "  "
	}
	if showEntries {
		for _, e := range found {
			fmt.Fprintf(w, "%s%s\t%s\t%s\n", prefix, e.Location, e.Category, e.Title)
		}
		return
	}
	for _, loc := range docidx.Locations(found) {
		fmt.Fprintf(w, "%s%s\n", prefix, loc)
	}
}
