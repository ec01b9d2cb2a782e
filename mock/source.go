package mock

import (
	"context"
	"io"

	"github.com/fwojciec/docidx"
)

var (
	_ docidx.Fetcher      = (*Fetcher)(nil)
	_ docidx.IndexLocator = (*IndexLocator)(nil)
	_ docidx.Codec        = (*Codec)(nil)
	_ docidx.IndexWriter  = (*IndexWriter)(nil)
)

// Fetcher is a mock implementation of docidx.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// IndexLocator is a mock implementation of docidx.IndexLocator.
type IndexLocator struct {
	LocateFn func(ctx context.Context, sourceURL string) (string, error)
}

func (l *IndexLocator) Locate(ctx context.Context, sourceURL string) (string, error) {
	return l.LocateFn(ctx, sourceURL)
}

// Codec is a mock implementation of docidx.Codec.
type Codec struct {
	DecodeFn func(r io.Reader) (*docidx.Index, error)
	EncodeFn func(w io.Writer, idx *docidx.Index) error
}

func (c *Codec) Decode(r io.Reader) (*docidx.Index, error) {
	return c.DecodeFn(r)
}

func (c *Codec) Encode(w io.Writer, idx *docidx.Index) error {
	return c.EncodeFn(w, idx)
}

// IndexWriter is a mock implementation of docidx.IndexWriter.
type IndexWriter struct {
	WriteIndexFn func(ctx context.Context, path string, idx *docidx.Index) error
}

func (w *IndexWriter) WriteIndex(ctx context.Context, path string, idx *docidx.Index) error {
	return w.WriteIndexFn(ctx, path, idx)
}
