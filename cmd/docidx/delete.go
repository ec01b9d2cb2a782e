package main

import (
	"fmt"

	"github.com/fwojciec/docidx"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return docidx.Errorf(docidx.EINVALID, "use --force to confirm deletion")
	}

	site, err := findSite(deps, c.Name)
	if err != nil {
		return err
	}

	if err := deleteSite(deps, site); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted site %q\n", site.Name)
	return nil
}

// deleteSite removes a site, its stored entries, and its search documents.
func deleteSite(deps *Dependencies, site *docidx.Site) error {
	if deps.Indexer != nil {
		if err := deps.Indexer.RemoveSite(deps.Ctx, site.ID); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
			return err
		}
	}
	if err := deps.Sites.DeleteSite(deps.Ctx, site.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}
	return nil
}
