// Package gemini answers questions about documentation with Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/docidx"
	"google.golang.org/genai"
)

// Model is the Gemini model used for answers and token counting.
const Model = "gemini-2.5-flash"

// DefaultMaxEntries bounds how many entries are sent as context.
const DefaultMaxEntries = 20

// Ensure Asker implements docidx.Asker at compile time.
var _ docidx.Asker = (*Asker)(nil)

// Asker implements docidx.Asker using Google Gemini. Context entries come
// from full-text search when a SearchService is configured, falling back
// to the site's entries in index order.
type Asker struct {
	client  *genai.Client
	entries docidx.EntryService

	search     docidx.SearchService
	tokens     docidx.TokenCounter
	maxTokens  int
	maxEntries int
}

// Option configures an Asker.
type Option func(*Asker)

// WithSearch ranks context entries with s.
func WithSearch(s docidx.SearchService) Option {
	return func(a *Asker) {
		a.search = s
	}
}

// WithTokenBudget stops adding context entries once their combined token
// count would exceed max.
func WithTokenBudget(tc docidx.TokenCounter, max int) Option {
	return func(a *Asker) {
		a.tokens = tc
		a.maxTokens = max
	}
}

// WithMaxEntries bounds the number of context entries.
func WithMaxEntries(n int) Option {
	return func(a *Asker) {
		a.maxEntries = n
	}
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, entries docidx.EntryService, opts ...Option) *Asker {
	a := &Asker{
		client:     client,
		entries:    entries,
		maxEntries: DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ask answers a natural language question about a site's documentation.
func (a *Asker) Ask(ctx context.Context, siteID, question string) (string, error) {
	if siteID == "" {
		return "", docidx.Errorf(docidx.EINVALID, "site ID required")
	}
	if strings.TrimSpace(question) == "" {
		return "", docidx.Errorf(docidx.EINVALID, "question required")
	}

	entries, err := a.ContextEntries(ctx, siteID, question)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", docidx.Errorf(docidx.ENOTFOUND, "no entries found for site %q", siteID)
	}

	prompt := BuildUserPrompt(entries, question)
	config := BuildConfig()

	result, err := a.client.Models.GenerateContent(ctx, Model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", docidx.Errorf(docidx.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// ContextEntries returns the entries Ask sends to the model for question.
// Returns EINVALID if the best candidate alone exceeds the token budget.
func (a *Asker) ContextEntries(ctx context.Context, siteID, question string) ([]*docidx.SearchEntry, error) {
	var candidates []*docidx.SearchEntry

	if a.search != nil {
		results, err := a.search.Search(ctx, question, docidx.SearchOptions{
			SiteIDs: []string{siteID},
			Limit:   a.maxEntries,
		})
		if err != nil {
			return nil, err
		}
		for _, r := range results {
			candidates = append(candidates, r.Entry)
		}
	}

	if len(candidates) == 0 {
		found, err := a.entries.FindEntries(ctx, docidx.EntryFilter{SiteID: &siteID, Limit: a.maxEntries})
		if err != nil {
			return nil, err
		}
		candidates = found
	}

	if a.tokens == nil || a.maxTokens <= 0 {
		return candidates, nil
	}

	var selected []*docidx.SearchEntry
	used := 0
	for _, e := range candidates {
		n, err := a.tokens.CountTokens(ctx, e.Title+"\n"+e.Text)
		if err != nil {
			return nil, err
		}
		if used+n > a.maxTokens {
			if len(selected) == 0 {
				return nil, docidx.Errorf(docidx.EINVALID, "entry %s needs %d tokens, over the context budget of %d", e.Location, n, a.maxTokens)
			}
			break
		}
		used += n
		selected = append(selected, e)
	}
	return selected, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about software library documentation. Answer based only on the documentation entries provided, and cite entry locations. If the answer is not in the entries, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing entries and question.
func BuildUserPrompt(entries []*docidx.SearchEntry, question string) string {
	var sb strings.Builder
	sb.WriteString("<entries>\n")
	for i, e := range entries {
		title := e.Title
		if title == "" {
			title = e.Location
		}
		sb.WriteString("<entry>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<title>%s</title>\n", title)
		fmt.Fprintf(&sb, "<location>%s</location>\n", e.Location)
		if e.Category != "" {
			fmt.Fprintf(&sb, "<category>%s</category>\n", e.Category)
		}
		fmt.Fprintf(&sb, "<content>%s</content>\n", e.Text)
		sb.WriteString("</entry>\n")
	}
	sb.WriteString("</entries>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
