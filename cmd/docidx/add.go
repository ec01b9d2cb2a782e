package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docidx"
	"github.com/fwojciec/docidx/fs"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	source := c.Source
	if fs.IsLocal(source) && !strings.HasPrefix(source, "file://") {
		abs, err := filepath.Abs(source)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: invalid path %q: %v\n", source, err)
			return err
		}
		source = abs
	}

	// Force mode: delete existing site first
	if c.Force {
		existing, err := deps.Sites.FindSites(deps.Ctx, docidx.SiteFilter{Name: &c.Name})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
			return err
		}
		if len(existing) > 0 {
			if err := deleteSite(deps, existing[0]); err != nil {
				return err
			}
		}
	}

	site := &docidx.Site{
		Name:      c.Name,
		SourceURL: source,
	}

	if err := deps.Sites.CreateSite(deps.Ctx, site); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		if docidx.ErrorCode(err) == docidx.ECONFLICT {
			fmt.Fprintf(deps.Stderr, "Hint: use --force to replace it, or 'docidx refresh %s' to reload it\n", c.Name)
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added site %q (%s)\n", c.Name, site.ID)

	if c.NoRefresh || deps.Refresher == nil {
		return nil
	}

	result, err := deps.Refresher.Refresh(deps.Ctx, site, true)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		fmt.Fprintf(deps.Stderr, "Hint: fix the source and run 'docidx refresh %s'\n", c.Name)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Loaded %d entries from %s\n", result.Entries, result.IndexURL)
	return nil
}
