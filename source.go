package docidx

import (
	"context"
	"io"
)

// Fetcher retrieves raw content from a URL or path.
type Fetcher interface {
	// Fetch returns the content at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// IndexLocator resolves where a site's search index lives.
type IndexLocator interface {
	// Locate returns the URL of the search index for sourceURL.
	// Returns ENOTFOUND if the source does not reference an index.
	Locate(ctx context.Context, sourceURL string) (string, error)
}

// Codec reads and writes the search index wire format.
type Codec interface {
	// Decode parses an index. Malformed input is reported as EPARSE.
	Decode(r io.Reader) (*Index, error)

	// Encode writes idx in the wire format.
	Encode(w io.Writer, idx *Index) error
}

// IndexWriter persists an index outside of the database.
type IndexWriter interface {
	WriteIndex(ctx context.Context, path string, idx *Index) error
}
