package mock

import (
	"context"

	"github.com/fwojciec/docidx"
)

var _ docidx.Asker = (*Asker)(nil)

// Asker is a mock implementation of docidx.Asker.
type Asker struct {
	AskFn func(ctx context.Context, siteID, question string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, siteID, question string) (string, error) {
	return a.AskFn(ctx, siteID, question)
}
