package main

import (
	"fmt"

	"github.com/fwojciec/docidx"
	"github.com/fwojciec/docidx/goquery"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	site, err := findSite(deps, c.Name)
	if err != nil {
		return err
	}

	if site.IndexURL == "" {
		fmt.Fprintf(deps.Stderr, "error: site %q has not been loaded. Run 'docidx refresh %s'.\n", c.Name, c.Name)
		return docidx.Errorf(docidx.ENOTFOUND, "site %q has no index", c.Name)
	}

	entries, err := deps.Entries.FindEntries(deps.Ctx, docidx.EntryFilter{
		SiteID:   &site.ID,
		Location: &c.Location,
		Limit:    1,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no entry at %q. Use 'docidx lookup %s <keyword>' to find locations.\n", c.Location, c.Name)
		return docidx.Errorf(docidx.ENOTFOUND, "no entry at %q", c.Location)
	}
	entry := entries[0]

	pageURL, err := goquery.PageURL(site.IndexURL, entry.Location)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	html, err := deps.Fetcher.Fetch(deps.Ctx, pageURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	section, err := deps.Extractor.ExtractSection(html, entry.Anchor())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	if c.HTML {
		fmt.Fprintln(deps.Stdout, section.HTML)
		return nil
	}

	markdown, err := deps.Converter.Convert(section.HTML)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	title := section.Title
	if title == "" {
		title = entry.Title
	}
	fmt.Fprintf(deps.Stdout, "%s\n%s\n\n%s\n", title, pageURL, markdown)
	return nil
}
