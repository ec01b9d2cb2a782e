package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/docidx"
)

// Ensure IndexWriter implements docidx.IndexWriter at compile time.
var _ docidx.IndexWriter = (*IndexWriter)(nil)

// IndexWriter writes indexes to disk with atomic replacement semantics.
// The index is encoded to a temporary file in the target directory, then
// renamed over the destination, so readers never observe a partial file.
type IndexWriter struct {
	codec docidx.Codec
}

// NewIndexWriter creates a new IndexWriter encoding with codec.
func NewIndexWriter(codec docidx.Codec) *IndexWriter {
	return &IndexWriter{codec: codec}
}

// WriteIndex encodes idx to path.
func (w *IndexWriter) WriteIndex(ctx context.Context, path string, idx *docidx.Index) error {
	if path == "" {
		return docidx.Errorf(docidx.EINVALID, "output path required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := w.codec.Encode(tmp, idx); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("encode index: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
