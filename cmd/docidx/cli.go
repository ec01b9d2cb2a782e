package main

import (
	"context"
	"io"

	"github.com/fwojciec/docidx"
	docidxmcp "github.com/fwojciec/docidx/mcp"
	"github.com/fwojciec/docidx/refresh"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Sites   docidx.SiteService
	Entries docidx.EntryService

	// Search and Indexer are nil unless the full-text index is open.
	Search  docidx.SearchService
	Indexer docidx.Indexer

	Refresher *refresh.Refresher
	Locator   docidx.IndexLocator
	Fetcher   docidx.Fetcher
	Codec     docidx.Codec
	Extractor docidx.SectionExtractor
	Converter docidx.Converter
	Writer    docidx.IndexWriter
	Asker     docidx.Asker
	MCP       *docidxmcp.Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"DOCIDX_DB" help:"SQLite database path"`
	Index   string `name:"index" env:"DOCIDX_INDEX" help:"Full-text search index path"`
	Verbose bool   `short:"v" help:"Log service calls to stderr"`

	Add     AddCmd     `cmd:"" help:"Register a documentation site and load its search index"`
	List    ListCmd    `cmd:"" help:"List registered sites"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a site and its entries"`
	Refresh RefreshCmd `cmd:"" help:"Reload the search index of sites"`
	Entries EntriesCmd `cmd:"" help:"List stored entries of a site"`
	Lookup  LookupCmd  `cmd:"" help:"Find locations whose title or text contains a keyword"`
	Inspect InspectCmd `cmd:"" help:"Load a search index file or URL without storing it"`
	Search  SearchCmd  `cmd:"" help:"Ranked full-text search across sites"`
	Show    ShowCmd    `cmd:"" help:"Show the documentation section behind a location"`
	Export  ExportCmd  `cmd:"" help:"Write a site's entries as a search index file"`
	Ask     AskCmd     `cmd:"" help:"Ask a question about a site's documentation"`
	Serve   ServeCmd   `cmd:"" help:"Serve lookup and search as MCP tools over stdio"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name      string `arg:"" help:"Site name"`
	Source    string `arg:"" help:"Index file, index URL, or documentation page URL"`
	Force     bool   `short:"f" help:"Replace an existing site with the same name"`
	NoRefresh bool   `help:"Register the site without loading its index"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Site name"`
	Force bool   `help:"Confirm deletion"`
}

// RefreshCmd is the "refresh" subcommand.
type RefreshCmd struct {
	Names       []string `arg:"" optional:"" help:"Site names (default all)"`
	Force       bool     `short:"f" help:"Reload even if the index is unchanged"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent site limit"`
}

// EntriesCmd is the "entries" subcommand.
type EntriesCmd struct {
	Name     string   `arg:"" help:"Site name"`
	Category []string `short:"C" help:"Filter by category (repeatable)"`
	Location string   `short:"l" help:"Filter by exact location"`
	Offset   int      `help:"Skip this many entries"`
	Limit    int      `short:"n" help:"Maximum number of entries (0 for all)"`
	Full     bool     `help:"Show entry text"`
}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	Name          string   `arg:"" help:"Site name"`
	Keywords      []string `arg:"" help:"Substrings to look for"`
	Field         string   `short:"F" default:"any" enum:"any,title,text" help:"Field to match (any, title, text)"`
	Category      []string `short:"C" help:"Filter by category (repeatable)"`
	CaseSensitive bool     `short:"s" help:"Match case exactly"`
	Limit         int      `short:"n" help:"Maximum number of entries (0 for all)"`
	Entries       bool     `short:"e" help:"Show matching entries instead of locations"`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	Source        string `arg:"" help:"Index file, index URL, or documentation page URL"`
	Keyword       string `arg:"" optional:"" help:"Keyword to look up in the loaded index"`
	Field         string `short:"F" default:"any" enum:"any,title,text" help:"Field to match (any, title, text)"`
	CaseSensitive bool   `short:"s" help:"Match case exactly"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query    string   `arg:"" help:"Search query"`
	Site     []string `short:"S" help:"Restrict to site (repeatable)"`
	Category []string `short:"C" help:"Filter by category (repeatable)"`
	Limit    int      `short:"n" default:"10" help:"Maximum number of results"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Name     string `arg:"" help:"Site name"`
	Location string `arg:"" help:"Entry location (page#anchor)"`
	HTML     bool   `name:"html" help:"Print the section HTML instead of Markdown"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Name   string `arg:"" help:"Site name"`
	Output string `arg:"" type:"path" help:"Output file"`
	JSON   bool   `name:"json" help:"Write plain JSON instead of search_index.js"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Name     string `arg:"" help:"Site name"`
	Question string `arg:"" help:"Question to ask about the documentation"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}
