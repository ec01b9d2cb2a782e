package main

import (
	"fmt"

	"github.com/fwojciec/docidx"
)

// findSite resolves a site by name, reporting failures on stderr.
func findSite(deps *Dependencies, name string) (*docidx.Site, error) {
	site, err := docidx.FindSiteByName(deps.Ctx, deps.Sites, name)
	if err == nil {
		return site, nil
	}
	if docidx.ErrorCode(err) == docidx.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: site %q not found. Use 'docidx list' to see available sites.\n", name)
		return nil, err
	}
	fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
	return nil, err
}

func parseCategories(names []string) []docidx.Category {
	if len(names) == 0 {
		return nil
	}
	cats := make([]docidx.Category, len(names))
	for i, n := range names {
		cats[i] = docidx.Category(n)
	}
	return cats
}
