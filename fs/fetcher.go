// Package fs provides local file access for search indexes: a Fetcher for
// paths and file:// URLs, and an atomic index writer.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docidx"
)

// Ensure Fetcher implements docidx.Fetcher at compile time.
var _ docidx.Fetcher = (*Fetcher)(nil)

// Fetcher reads content from the local filesystem. Sources that are not
// local are delegated to the remote fetcher when one is configured.
type Fetcher struct {
	remote docidx.Fetcher
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithRemote sets the fetcher used for non-local sources.
func WithRemote(f docidx.Fetcher) Option {
	return func(fs *Fetcher) {
		fs.remote = f
	}
}

// NewFetcher creates a new local Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the content of the file named by source.
func (f *Fetcher) Fetch(ctx context.Context, source string) (string, error) {
	if !IsLocal(source) {
		if f.remote == nil {
			return "", docidx.Errorf(docidx.EINVALID, "not a local path: %s", source)
		}
		return f.remote.Fetch(ctx, source)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := LocalPath(source)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", docidx.Errorf(docidx.ENOTFOUND, "file not found: %s", path)
	} else if err != nil {
		return "", err
	}
	return string(data), nil
}

// Close closes the remote fetcher, if any.
func (f *Fetcher) Close() error {
	if f.remote != nil {
		return f.remote.Close()
	}
	return nil
}

// IsLocal reports whether source names a local path or a file:// URL.
func IsLocal(source string) bool {
	if strings.HasPrefix(source, "file://") {
		return true
	}
	u, err := url.Parse(source)
	if err != nil {
		return true
	}
	// Single-letter schemes are Windows drive letters.
	return u.Scheme == "" || len(u.Scheme) == 1
}

// LocalPath converts a path or file:// URL to a cleaned filesystem path.
func LocalPath(source string) (string, error) {
	if !strings.HasPrefix(source, "file://") {
		return filepath.Clean(source), nil
	}
	u, err := url.Parse(source)
	if err != nil {
		return "", docidx.Errorf(docidx.EINVALID, "invalid file URL: %s", source)
	}
	if u.Path == "" {
		return "", docidx.Errorf(docidx.EINVALID, "file URL has no path: %s", source)
	}
	return filepath.FromSlash(u.Path), nil
}
