package main

import (
	"fmt"

	"github.com/fwojciec/docidx"
	"github.com/fwojciec/docidx/refresh"
)

// Run executes the refresh command.
func (c *RefreshCmd) Run(deps *Dependencies) error {
	var sites []*docidx.Site
	if len(c.Names) == 0 {
		all, err := deps.Sites.FindSites(deps.Ctx, docidx.SiteFilter{})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
			return err
		}
		sites = all
	} else {
		for _, name := range c.Names {
			site, err := findSite(deps, name)
			if err != nil {
				return err
			}
			sites = append(sites, site)
		}
	}

	if len(sites) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites found. Use 'docidx add' to register one.")
		return nil
	}

	if c.Concurrency > 0 {
		deps.Refresher.Concurrency = c.Concurrency
	}

	progress := func(event refresh.ProgressEvent) {
		switch event.Type {
		case refresh.ProgressCompleted:
			status := ""
			if event.Result.Skipped {
				status = " (unchanged)"
			}
			fmt.Fprintf(deps.Stdout, "  %s: %d entries%s\n", event.Site, event.Result.Entries, status)
		case refresh.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %s\n", event.Site, docidx.ErrorMessage(event.Error))
		}
	}

	summary, err := deps.Refresher.RefreshAll(deps.Ctx, sites, c.Force, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Refreshed %d, unchanged %d, failed %d\n", summary.Refreshed, summary.Skipped, summary.Failed)
	if summary.Failed > 0 {
		return docidx.Errorf(docidx.EINTERNAL, "%d of %d sites failed to refresh", summary.Failed, len(sites))
	}
	return nil
}
