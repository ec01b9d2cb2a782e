package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	db := NewDB(MemoryPath)
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	insert := `INSERT INTO sites (id, name, source_url, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	const ts = "2026-01-02T03:04:05Z"

	_, err := db.ExecContext(ctx, insert, "site-1", "docs", "https://example.com/", ts, ts)
	require.NoError(t, err)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := db.ExecContext(ctx, insert, "site-2", "docs", "https://example.com/", ts, ts)
		require.Error(t, err)
		assert.True(t, isUniqueViolation(err))
	})

	t.Run("other constraint failures", func(t *testing.T) {
		_, err := db.ExecContext(ctx, insert, "site-3", nil, "https://example.com/", ts, ts)
		require.Error(t, err)
		assert.False(t, isUniqueViolation(err))
	})

	t.Run("plain errors", func(t *testing.T) {
		assert.False(t, isUniqueViolation(nil))
		assert.False(t, isUniqueViolation(errors.New("UNIQUE constraint failed: sites.name")))
	})
}
