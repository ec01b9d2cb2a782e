package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docidx"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ docidx.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens with the local Gemini tokenizer. Counts are
// memoized by text hash: the same entries are counted for every question
// asked about a site.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer

	mu     sync.Mutex
	counts map[uint64]int
}

// NewTokenCounter creates a TokenCounter for model.
// Returns EINVALID if the local tokenizer does not support the model.
// Other failures, such as downloading the tokenizer model, are wrapped.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, tokenizerError(model, err)
	}
	return &TokenCounter{tok: tok, counts: make(map[uint64]int)}, nil
}

// tokenizerError classifies a tokenizer construction failure. The tokenizer
// package reports unknown models only as an unwrapped "is not supported"
// error, raised before it loads anything.
func tokenizerError(model string, err error) error {
	if errors.Unwrap(err) == nil && strings.Contains(err.Error(), "is not supported") {
		return docidx.Errorf(docidx.EINVALID, "no local tokenizer for %s", model)
	}
	return fmt.Errorf("load tokenizer for %s: %w", model, err)
}

// CountTokens returns the number of tokens in text.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	key := xxhash.Sum64String(text)
	tc.mu.Lock()
	n, ok := tc.counts[key]
	tc.mu.Unlock()
	if ok {
		return n, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, fmt.Errorf("count tokens: %w", err)
	}
	n = int(result.TotalTokens)

	tc.mu.Lock()
	tc.counts[key] = n
	tc.mu.Unlock()
	return n, nil
}
