package main

import (
	"fmt"

	"github.com/fwojciec/docidx"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	site, err := findSite(deps, c.Name)
	if err != nil {
		return err
	}

	entries, err := deps.Entries.FindEntries(deps.Ctx, docidx.EntryFilter{SiteID: &site.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	if err := deps.Writer.WriteIndex(deps.Ctx, c.Output, &docidx.Index{Entries: entries}); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d entries to %s\n", len(entries), c.Output)
	return nil
}
