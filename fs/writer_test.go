package fs_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docidx"
	"github.com/fwojciec/docidx/documenter"
	"github.com/fwojciec/docidx/fs"
	"github.com/fwojciec/docidx/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexWriter_WriteIndex(t *testing.T) {
	t.Parallel()

	idx := &docidx.Index{Entries: []*docidx.SearchEntry{
		{Location: "index.html#", Page: "Home", Title: "Home", Category: docidx.CategoryPage},
		{Location: "index.html#API-1", Page: "Home", Title: "API", Category: docidx.CategorySection},
	}}

	t.Run("writes the encoded index", func(t *testing.T) {
		t.Parallel()

		// Given a writer using the documenter codec
		path := filepath.Join(t.TempDir(), "out", "search_index.js")
		w := fs.NewIndexWriter(documenter.NewCodec())

		// When I write the index
		err := w.WriteIndex(context.Background(), path, idx)
		require.NoError(t, err)

		// Then the file decodes back to the same entries
		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()

		got, err := documenter.NewCodec().Decode(f)
		require.NoError(t, err)
		assert.Equal(t, idx.Entries, got.Entries)
	})

	t.Run("replaces an existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "search_index.js")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		err := fs.NewIndexWriter(documenter.NewCodec()).WriteIndex(context.Background(), path, idx)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("var documenterSearchIndex = ")))
	})

	t.Run("leaves existing file untouched on encode failure", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "search_index.js")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		codec := &mock.Codec{
			EncodeFn: func(w io.Writer, idx *docidx.Index) error {
				_, _ = w.Write([]byte("partial"))
				return errors.New("disk full")
			},
		}

		err := fs.NewIndexWriter(codec).WriteIndex(context.Background(), path, idx)
		require.Error(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "old", string(data))

		// And no temp files are left behind
		matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("empty path is invalid", func(t *testing.T) {
		t.Parallel()

		err := fs.NewIndexWriter(documenter.NewCodec()).WriteIndex(context.Background(), "", idx)

		require.Error(t, err)
		assert.Equal(t, docidx.EINVALID, docidx.ErrorCode(err))
	})
}
