package main

import (
	"fmt"

	"github.com/fwojciec/docidx"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	sites, err := deps.Sites.FindSites(deps.Ctx, docidx.SiteFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	if len(sites) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites found. Use 'docidx add' to register one.")
		return nil
	}

	for _, s := range sites {
		refreshed := "never"
		if !s.RefreshedAt.IsZero() {
			refreshed = s.RefreshedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %d entries  %s  (refreshed %s)\n", s.ID, s.Name, s.EntryCount, s.SourceURL, refreshed)
	}

	return nil
}
