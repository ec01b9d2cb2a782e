package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/docidx"
	"github.com/fwojciec/docidx/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSite(t *testing.T, db *sqlite.DB, name string) *docidx.Site {
	t.Helper()
	site := &docidx.Site{
		Name:      name,
		SourceURL: "https://example.com/" + name + "/",
	}
	require.NoError(t, sqlite.NewSiteService(db).CreateSite(context.Background(), site))
	return site
}

func TestSiteService_CreateSite(t *testing.T) {
	t.Parallel()

	t.Run("creates site with generated ID and timestamps", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSiteService(db)

		site := &docidx.Site{
			Name:      "optionalargchecks",
			SourceURL: "https://example.com/OptionalArgChecks.jl/dev/",
		}

		err := svc.CreateSite(context.Background(), site)
		require.NoError(t, err)

		assert.NotEmpty(t, site.ID, "ID should be generated")
		assert.False(t, site.CreatedAt.IsZero(), "CreatedAt should be set")
		assert.False(t, site.UpdatedAt.IsZero(), "UpdatedAt should be set")
		assert.True(t, site.RefreshedAt.IsZero(), "RefreshedAt should be unset")
	})

	t.Run("returns error for invalid site", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSiteService(db)

		err := svc.CreateSite(context.Background(), &docidx.Site{Name: "no-source"})
		require.Error(t, err)
		assert.Equal(t, docidx.EINVALID, docidx.ErrorCode(err))
	})

	t.Run("returns conflict for duplicate name", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		createTestSite(t, db, "dup")

		err := sqlite.NewSiteService(db).CreateSite(context.Background(), &docidx.Site{
			Name:      "dup",
			SourceURL: "https://other.example.com/",
		})
		require.Error(t, err)
		assert.Equal(t, docidx.ECONFLICT, docidx.ErrorCode(err))
	})
}

func TestSiteService_FindSiteByID(t *testing.T) {
	t.Parallel()

	t.Run("returns site", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		created := createTestSite(t, db, "home")

		found, err := sqlite.NewSiteService(db).FindSiteByID(context.Background(), created.ID)
		require.NoError(t, err)

		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "home", found.Name)
		assert.Equal(t, created.SourceURL, found.SourceURL)
		assert.WithinDuration(t, created.CreatedAt, found.CreatedAt, time.Second)
		assert.True(t, found.RefreshedAt.IsZero())
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		_, err := sqlite.NewSiteService(db).FindSiteByID(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, docidx.ENOTFOUND, docidx.ErrorCode(err))
	})
}

func TestSiteService_FindSites(t *testing.T) {
	t.Parallel()

	t.Run("returns sites ordered by name", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		createTestSite(t, db, "zeta")
		createTestSite(t, db, "alpha")
		createTestSite(t, db, "mid")

		sites, err := sqlite.NewSiteService(db).FindSites(context.Background(), docidx.SiteFilter{})
		require.NoError(t, err)
		require.Len(t, sites, 3)
		assert.Equal(t, "alpha", sites[0].Name)
		assert.Equal(t, "mid", sites[1].Name)
		assert.Equal(t, "zeta", sites[2].Name)
	})

	t.Run("filters by name", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		createTestSite(t, db, "alpha")
		createTestSite(t, db, "beta")

		name := "beta"
		sites, err := sqlite.NewSiteService(db).FindSites(context.Background(), docidx.SiteFilter{Name: &name})
		require.NoError(t, err)
		require.Len(t, sites, 1)
		assert.Equal(t, "beta", sites[0].Name)
	})

	t.Run("applies offset without limit", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		createTestSite(t, db, "a")
		createTestSite(t, db, "b")
		createTestSite(t, db, "c")

		sites, err := sqlite.NewSiteService(db).FindSites(context.Background(), docidx.SiteFilter{Offset: 1})
		require.NoError(t, err)
		require.Len(t, sites, 2)
		assert.Equal(t, "b", sites[0].Name)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		createTestSite(t, db, "a")
		createTestSite(t, db, "b")
		createTestSite(t, db, "c")

		sites, err := sqlite.NewSiteService(db).FindSites(context.Background(), docidx.SiteFilter{Offset: 1, Limit: 1})
		require.NoError(t, err)
		require.Len(t, sites, 1)
		assert.Equal(t, "b", sites[0].Name)
	})
}

func TestSiteService_UpdateSite(t *testing.T) {
	t.Parallel()

	t.Run("updates refresh fields", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		site := createTestSite(t, db, "home")
		svc := sqlite.NewSiteService(db)

		indexURL := "https://example.com/home/search_index.js"
		hash := "0123456789abcdef"
		count := 10
		refreshed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

		updated, err := svc.UpdateSite(context.Background(), site.ID, docidx.SiteUpdate{
			IndexURL:    &indexURL,
			ContentHash: &hash,
			EntryCount:  &count,
			RefreshedAt: &refreshed,
		})
		require.NoError(t, err)
		assert.Equal(t, indexURL, updated.IndexURL)

		found, err := svc.FindSiteByID(context.Background(), site.ID)
		require.NoError(t, err)
		assert.Equal(t, indexURL, found.IndexURL)
		assert.Equal(t, hash, found.ContentHash)
		assert.Equal(t, 10, found.EntryCount)
		assert.True(t, refreshed.Equal(found.RefreshedAt))
		assert.Equal(t, "home", found.Name, "unset fields are preserved")
	})

	t.Run("rejects invalid update", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		site := createTestSite(t, db, "home")

		empty := ""
		_, err := sqlite.NewSiteService(db).UpdateSite(context.Background(), site.ID, docidx.SiteUpdate{Name: &empty})
		require.Error(t, err)
		assert.Equal(t, docidx.EINVALID, docidx.ErrorCode(err))
	})

	t.Run("rename to existing name conflicts", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		createTestSite(t, db, "taken")
		site := createTestSite(t, db, "home")

		name := "taken"
		_, err := sqlite.NewSiteService(db).UpdateSite(context.Background(), site.ID, docidx.SiteUpdate{Name: &name})
		require.Error(t, err)
		assert.Equal(t, docidx.ECONFLICT, docidx.ErrorCode(err))
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		_, err := sqlite.NewSiteService(db).UpdateSite(context.Background(), "missing", docidx.SiteUpdate{})
		require.Error(t, err)
		assert.Equal(t, docidx.ENOTFOUND, docidx.ErrorCode(err))
	})
}

func TestSiteService_DeleteSite(t *testing.T) {
	t.Parallel()

	t.Run("deletes site and cascades to entries", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		site := createTestSite(t, db, "home")
		entries := sqlite.NewEntryService(db)
		require.NoError(t, entries.ReplaceEntries(context.Background(), site.ID, sampleEntries()))

		err := sqlite.NewSiteService(db).DeleteSite(context.Background(), site.ID)
		require.NoError(t, err)

		_, err = sqlite.NewSiteService(db).FindSiteByID(context.Background(), site.ID)
		assert.Equal(t, docidx.ENOTFOUND, docidx.ErrorCode(err))

		var count int
		require.NoError(t, db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM entries").Scan(&count))
		assert.Equal(t, 0, count)
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		err := sqlite.NewSiteService(db).DeleteSite(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, docidx.ENOTFOUND, docidx.ErrorCode(err))
	})
}

func TestFindSiteByName(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	created := createTestSite(t, db, "home")
	svc := sqlite.NewSiteService(db)

	found, err := docidx.FindSiteByName(context.Background(), svc, "home")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = docidx.FindSiteByName(context.Background(), svc, "other")
	require.Error(t, err)
	assert.Equal(t, docidx.ENOTFOUND, docidx.ErrorCode(err))
	assert.Equal(t, `site "other" not found`, docidx.ErrorMessage(err))
}
