package docidx

import "context"

// TokenCounter counts model tokens, used to keep prompts within budget.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
