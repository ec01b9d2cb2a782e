package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docidx"
)

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	indexURL, err := deps.Locator.Locate(deps.Ctx, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	raw, err := deps.Fetcher.Fetch(deps.Ctx, indexURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	idx, err := deps.Codec.Decode(strings.NewReader(raw))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	if c.Keyword == "" {
		fmt.Fprintf(deps.Stdout, "%s\n", indexURL)
		fmt.Fprintf(deps.Stdout, "  %s\n", idx.Summary())
		if pages := idx.Pages(); len(pages) > 0 {
			fmt.Fprintf(deps.Stdout, "  pages: %s\n", strings.Join(pages, ", "))
		}
		return nil
	}

	field, err := docidx.ParseField(c.Field)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	for _, loc := range idx.Lookup(c.Keyword, docidx.LookupOptions{Field: field, CaseSensitive: c.CaseSensitive}) {
		fmt.Fprintln(deps.Stdout, loc)
	}
	return nil
}
