package docidx

import "context"

// Asker provides natural language question answering over documentation.
type Asker interface {
	// Ask answers a natural language question about a site's documentation.
	// Returns ENOTFOUND if the site has no entries relevant to the question.
	Ask(ctx context.Context, siteID string, question string) (string, error)
}
