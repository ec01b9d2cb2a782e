package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docidx"
	"github.com/fwojciec/docidx/bleve"
	"github.com/fwojciec/docidx/documenter"
	"github.com/fwojciec/docidx/fs"
	"github.com/fwojciec/docidx/gemini"
	"github.com/fwojciec/docidx/goquery"
	"github.com/fwojciec/docidx/htmltomarkdown"
	docidxhttp "github.com/fwojciec/docidx/http"
	docidxmcp "github.com/fwojciec/docidx/mcp"
	"github.com/fwojciec/docidx/refresh"
	docidxslog "github.com/fwojciec/docidx/slog"
	"github.com/fwojciec/docidx/sqlite"
	"github.com/fwojciec/docidx/trafilatura"
	"google.golang.org/genai"
)

// version is set at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database and search index paths. Set before calling Run().
	// Flags and environment variables take precedence.
	DBPath    string
	IndexPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Full-text index, opened only for commands that use it.
	SearchIndex *bleve.Index

	Fetcher docidx.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:    defaultPath("docidx.db"),
		IndexPath: defaultPath("search.bleve"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	if m.Fetcher != nil {
		if err := m.Fetcher.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if m.SearchIndex != nil {
		if err := m.SearchIndex.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docidx"),
		kong.Description("Load, store and query documentation search indexes."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docidx --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Command()
	defer m.Close()

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	if cli.Index != "" {
		m.IndexPath = cli.Index
	}

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Fetching and decoding are needed by most commands, including inspect
	// which runs without a database.
	var fetcher docidx.Fetcher = fs.NewFetcher(fs.WithRemote(docidxhttp.NewFetcher()))
	m.Fetcher = fetcher
	if logger != nil {
		fetcher = docidxslog.NewLoggingFetcher(fetcher, logger)
	}
	limiter := refresh.NewDomainLimiter(refresh.DefaultRequestsPerSecond)

	var locator docidx.IndexLocator = goquery.NewIndexLocator(refresh.NewLimitedFetcher(fetcher, limiter))
	if logger != nil {
		locator = docidxslog.NewLoggingIndexLocator(locator, logger)
	}

	codec := documenter.NewCodec()
	deps.Fetcher = fetcher
	deps.Locator = locator
	deps.Codec = codec

	if isCommand(cmd, "inspect") {
		return kongCtx.Run(deps)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCIDX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}

	var sites docidx.SiteService = sqlite.NewSiteService(m.DB)
	var entries docidx.EntryService = sqlite.NewEntryService(m.DB)
	if logger != nil {
		entries = docidxslog.NewLoggingEntryService(entries, logger)
	}
	deps.Sites = sites
	deps.Entries = entries

	if needsSearchIndex(cmd) {
		idx, err := bleve.Open(m.IndexPath)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Set DOCIDX_INDEX to use a different search index path\n")
			return fmt.Errorf("failed to open search index at %q: %w", m.IndexPath, err)
		}
		m.SearchIndex = idx

		var search docidx.SearchService = idx
		var indexer docidx.Indexer = idx
		if logger != nil {
			search = docidxslog.NewLoggingSearchService(search, logger)
			indexer = docidxslog.NewLoggingIndexer(indexer, logger)
		}
		deps.Search = search
		deps.Indexer = indexer
	}

	deps.Refresher = &refresh.Refresher{
		Sites:       sites,
		Entries:     entries,
		Locator:     locator,
		Fetcher:     fetcher,
		Codec:       codec,
		Indexer:     deps.Indexer,
		RateLimiter: limiter,
		Concurrency: refresh.DefaultConcurrency,
	}

	switch {
	case isCommand(cmd, "show"):
		deps.Extractor = trafilatura.NewExtractor(goquery.NewSectionExtractor())
		deps.Converter = htmltomarkdown.NewConverter()
	case isCommand(cmd, "export"):
		if cli.Export.JSON {
			deps.Writer = fs.NewIndexWriter(documenter.NewCodec(documenter.WithVariable("")))
		} else {
			deps.Writer = fs.NewIndexWriter(codec)
		}
	case isCommand(cmd, "ask"):
		asker, err := newAsker(ctx, deps, stderr)
		if err != nil {
			return err
		}
		deps.Asker = asker
	case isCommand(cmd, "serve"):
		deps.MCP = docidxmcp.NewServer(sites, entries,
			docidxmcp.WithSearch(deps.Search),
			docidxmcp.WithVersion(version),
		)
	}

	return kongCtx.Run(deps)
}

// askTokenBudget bounds the context sent with a question.
const askTokenBudget = 200_000

func newAsker(ctx context.Context, deps *Dependencies, stderr io.Writer) (docidx.Asker, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	tokenCounter, err := gemini.NewTokenCounter(gemini.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create token counter: %w", err)
	}

	return gemini.NewAsker(client, deps.Entries,
		gemini.WithSearch(deps.Search),
		gemini.WithTokenBudget(tokenCounter, askTokenBudget),
	), nil
}

// needsSearchIndex reports whether cmd reads or maintains the full-text index.
func needsSearchIndex(cmd string) bool {
	for _, name := range []string{"add", "delete", "refresh", "search", "ask", "serve"} {
		if isCommand(cmd, name) {
			return true
		}
	}
	return false
}

// isCommand reports whether the kong command path cmd selects name.
func isCommand(cmd, name string) bool {
	return cmd == name || len(cmd) > len(name) && cmd[:len(name)+1] == name+" "
}

func defaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	dir := filepath.Join(home, ".docidx")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, name)
}
