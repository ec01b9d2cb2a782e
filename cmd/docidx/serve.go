package main

import (
	"errors"
	"fmt"

	"github.com/fwojciec/docidx"
)

// Run executes the serve command. Diagnostics go to stderr because stdout
// carries the protocol.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if deps.MCP == nil {
		fmt.Fprintln(deps.Stderr, "error: MCP server not configured")
		return docidx.Errorf(docidx.EINTERNAL, "MCP server not configured")
	}

	err := deps.MCP.Run(deps.Ctx)
	if err != nil && !errors.Is(err, deps.Ctx.Err()) {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
