package main

import (
	"fmt"

	"github.com/fwojciec/docidx"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	site, err := findSite(deps, c.Name)
	if err != nil {
		return err
	}

	answer, err := deps.Asker.Ask(deps.Ctx, site.ID, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
