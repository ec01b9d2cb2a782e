// Package mcp exposes docidx lookups and searches as Model Context Protocol tools.
package mcp

import (
	"context"
	"strings"

	"github.com/fwojciec/docidx"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names.
const (
	ToolListSites = "list_sites"
	ToolLookup    = "lookup_documentation"
	ToolSearch    = "search_documentation"
)

const (
	serverName = "docidx"

	// DefaultLimit caps results when a tool call does not specify a limit.
	DefaultLimit = 20
	maxLimit     = 100
)

// Server answers MCP tool calls against stored documentation sites.
type Server struct {
	sites   docidx.SiteService
	entries docidx.EntryService
	search  docidx.SearchService
	version string
}

// Option configures a Server.
type Option func(*Server)

// WithSearch enables the search_documentation tool.
func WithSearch(s docidx.SearchService) Option {
	return func(srv *Server) {
		srv.search = s
	}
}

// WithVersion sets the version reported to clients.
func WithVersion(v string) Option {
	return func(srv *Server) {
		srv.version = v
	}
}

// NewServer creates a new Server.
func NewServer(sites docidx.SiteService, entries docidx.EntryService, opts ...Option) *Server {
	s := &Server{
		sites:   sites,
		entries: entries,
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MCPServer builds an MCP server with the tools registered.
// search_documentation is only registered when a SearchService is configured.
func (s *Server) MCPServer() *gomcp.Server {
	server := gomcp.NewServer(&gomcp.Implementation{
		Name:    serverName,
		Version: s.version,
	}, nil)

	gomcp.AddTool(server, &gomcp.Tool{
		Name:        ToolListSites,
		Description: "List the documentation sites whose search indexes are available.",
	}, s.ListSites)

	gomcp.AddTool(server, &gomcp.Tool{
		Name:        ToolLookup,
		Description: "Find documentation locations whose title or text contains a keyword (substring match).",
	}, s.Lookup)

	if s.search != nil {
		gomcp.AddTool(server, &gomcp.Tool{
			Name:        ToolSearch,
			Description: "Ranked full-text search over documentation entries.",
		}, s.Search)
	}

	return server
}

// Run serves the tools over stdio until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.MCPServer().Run(ctx, &gomcp.StdioTransport{})
}

// SiteInfo describes a site in tool output.
type SiteInfo struct {
	Name       string `json:"name"`
	SourceURL  string `json:"source_url"`
	EntryCount int    `json:"entry_count"`
}

// ListSitesInput defines input for list_sites.
type ListSitesInput struct{}

// ListSitesOutput defines output for list_sites.
type ListSitesOutput struct {
	Sites []SiteInfo `json:"sites"`
}

// ListSites handles list_sites.
func (s *Server) ListSites(ctx context.Context, req *gomcp.CallToolRequest, input ListSitesInput) (*gomcp.CallToolResult, ListSitesOutput, error) {
	sites, err := s.sites.FindSites(ctx, docidx.SiteFilter{})
	if err != nil {
		return nil, ListSitesOutput{}, err
	}
	out := ListSitesOutput{Sites: make([]SiteInfo, 0, len(sites))}
	for _, site := range sites {
		out.Sites = append(out.Sites, SiteInfo{
			Name:       site.Name,
			SourceURL:  site.SourceURL,
			EntryCount: site.EntryCount,
		})
	}
	return nil, out, nil
}

// Entry is an entry in tool output.
type Entry struct {
	Location string  `json:"location"`
	Page     string  `json:"page,omitempty"`
	Title    string  `json:"title,omitempty"`
	Category string  `json:"category,omitempty"`
	Snippet  string  `json:"snippet,omitempty"`
	Score    float64 `json:"score,omitempty"`
}

const snippetLength = 200

func toEntry(e *docidx.SearchEntry) Entry {
	return Entry{
		Location: e.Location,
		Page:     e.Page,
		Title:    e.Title,
		Category: string(e.Category),
		Snippet:  docidx.Snippet(e.Text, snippetLength),
	}
}

// LookupInput defines input for lookup_documentation.
type LookupInput struct {
	Site          string   `json:"site" jsonschema:"name of the documentation site"`
	Keyword       string   `json:"keyword" jsonschema:"substring to look for"`
	Field         string   `json:"field,omitempty" jsonschema:"field to match: any, title or text (default any)"`
	Categories    []string `json:"categories,omitempty" jsonschema:"restrict to categories such as page, section, macro"`
	CaseSensitive bool     `json:"case_sensitive,omitempty" jsonschema:"match case exactly"`
	Limit         int      `json:"limit,omitempty" jsonschema:"maximum number of entries (default 20)"`
}

// LookupOutput defines output for lookup_documentation.
type LookupOutput struct {
	Site      string   `json:"site"`
	Keyword   string   `json:"keyword"`
	Locations []string `json:"locations"`
	Entries   []Entry  `json:"entries"`
}

// Lookup handles lookup_documentation. An absent keyword yields empty
// locations rather than an error.
func (s *Server) Lookup(ctx context.Context, req *gomcp.CallToolRequest, input LookupInput) (*gomcp.CallToolResult, LookupOutput, error) {
	out := LookupOutput{Site: input.Site, Keyword: input.Keyword, Locations: []string{}, Entries: []Entry{}}

	if strings.TrimSpace(input.Site) == "" {
		return nil, out, docidx.Errorf(docidx.EINVALID, "site required")
	}
	field, err := docidx.ParseField(input.Field)
	if err != nil {
		return nil, out, err
	}
	site, err := docidx.FindSiteByName(ctx, s.sites, input.Site)
	if err != nil {
		return nil, out, err
	}
	if strings.TrimSpace(input.Keyword) == "" {
		return nil, out, nil
	}

	entries, err := s.entries.FindEntries(ctx, docidx.EntryFilter{
		SiteID:        &site.ID,
		Keyword:       input.Keyword,
		Field:         field,
		Categories:    categories(input.Categories),
		CaseSensitive: input.CaseSensitive,
		Limit:         clampLimit(input.Limit),
	})
	if err != nil {
		return nil, out, err
	}

	out.Locations = docidx.Locations(entries)
	for _, e := range entries {
		out.Entries = append(out.Entries, toEntry(e))
	}
	return nil, out, nil
}

// SearchInput defines input for search_documentation.
type SearchInput struct {
	Query      string   `json:"query" jsonschema:"full-text search query"`
	Sites      []string `json:"sites,omitempty" jsonschema:"restrict to these site names (default all)"`
	Categories []string `json:"categories,omitempty" jsonschema:"restrict to categories such as page, section, macro"`
	Limit      int      `json:"limit,omitempty" jsonschema:"maximum number of results (default 20)"`
}

// SearchOutput defines output for search_documentation.
type SearchOutput struct {
	Query   string  `json:"query"`
	Results []Entry `json:"results"`
}

// Search handles search_documentation.
func (s *Server) Search(ctx context.Context, req *gomcp.CallToolRequest, input SearchInput) (*gomcp.CallToolResult, SearchOutput, error) {
	out := SearchOutput{Query: input.Query, Results: []Entry{}}
	if s.search == nil {
		return nil, out, docidx.Errorf(docidx.EINVALID, "search index not configured")
	}

	opts := docidx.SearchOptions{
		Categories: categories(input.Categories),
		Limit:      clampLimit(input.Limit),
	}
	for _, name := range input.Sites {
		site, err := docidx.FindSiteByName(ctx, s.sites, name)
		if err != nil {
			return nil, out, err
		}
		opts.SiteIDs = append(opts.SiteIDs, site.ID)
	}

	results, err := s.search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, out, err
	}
	for _, r := range results {
		e := toEntry(r.Entry)
		e.Score = r.Score
		out.Results = append(out.Results, e)
	}
	return nil, out, nil
}

func categories(names []string) []docidx.Category {
	if len(names) == 0 {
		return nil
	}
	cats := make([]docidx.Category, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			cats = append(cats, docidx.Category(n))
		}
	}
	return cats
}

func clampLimit(n int) int {
	if n <= 0 {
		return DefaultLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}
