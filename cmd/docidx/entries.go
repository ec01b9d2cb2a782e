package main

import (
	"fmt"

	"github.com/fwojciec/docidx"
)

// Run executes the entries command.
func (c *EntriesCmd) Run(deps *Dependencies) error {
	site, err := findSite(deps, c.Name)
	if err != nil {
		return err
	}

	filter := docidx.EntryFilter{
		SiteID:     &site.ID,
		Categories: parseCategories(c.Category),
		Offset:     c.Offset,
		Limit:      c.Limit,
	}
	if c.Location != "" {
		filter.Location = &c.Location
	}

	entries, err := deps.Entries.FindEntries(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		if site.RefreshedAt.IsZero() {
			fmt.Fprintf(deps.Stderr, "error: site %q has not been loaded. Run 'docidx refresh %s'.\n", c.Name, c.Name)
			return docidx.Errorf(docidx.ENOTFOUND, "site %q has no entries", c.Name)
		}
		fmt.Fprintln(deps.Stdout, "No entries match.")
		return nil
	}

	if c.Full {
		fmt.Fprintln(deps.Stdout, docidx.FormatEntries(entries))
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Entries for %s (%d shown, %d total):\n\n", c.Name, len(entries), site.EntryCount)
	for _, e := range entries {
		title := e.Title
		if title == "" {
			title = e.Location
		}
		fmt.Fprintf(deps.Stdout, "  %d. [%s] %s\n     %s\n", e.Position+1, e.Category, title, e.Location)
	}

	return nil
}
