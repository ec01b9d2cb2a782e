package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docidx"
	"github.com/fwojciec/docidx/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []*docidx.SearchEntry {
	return []*docidx.SearchEntry{
		{Location: "index.html#", Page: "Home", Title: "Home", Text: "Provides two macros, @mark and @skip.", Category: docidx.CategoryPage},
		{Location: "index.html#API-1", Page: "Home", Title: "API", Category: docidx.CategorySection},
		{Location: "index.html#OptionalArgChecks.@mark-Tuple{Any,Any}", Page: "Home", Title: "OptionalArgChecks.@mark", Text: "Marks ex as an optional argument check.", Category: docidx.CategoryMacro},
		{Location: "index.html#OptionalArgChecks.@skip-Tuple{Any,Any}", Page: "Home", Title: "OptionalArgChecks.@skip", Text: "Elides code marked with @mark.", Category: docidx.CategoryMacro},
		{Location: "index.html#", Page: "Home", Title: "Home", Text: "", Category: docidx.CategoryPage},
	}
}

func locations(entries []*docidx.SearchEntry) []string {
	locs := make([]string, len(entries))
	for i, e := range entries {
		locs[i] = e.Location
	}
	return locs
}

func TestEntryService_ReplaceEntries(t *testing.T) {
	t.Parallel()

	t.Run("stores entries with positions", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		site := createTestSite(t, db, "home")
		svc := sqlite.NewEntryService(db)
		ctx := context.Background()

		require.NoError(t, svc.ReplaceEntries(ctx, site.ID, sampleEntries()))

		entries, err := svc.FindEntries(ctx, docidx.EntryFilter{SiteID: &site.ID})
		require.NoError(t, err)
		require.Len(t, entries, 5)
		for i, e := range entries {
			assert.Equal(t, i, e.Position)
			assert.Equal(t, site.ID, e.SiteID)
		}
		assert.Equal(t, docidx.CategoryMacro, entries[2].Category)
		assert.Equal(t, "Marks ex as an optional argument check.", entries[2].Text)
	})

	t.Run("replaces previous entries wholesale", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		site := createTestSite(t, db, "home")
		svc := sqlite.NewEntryService(db)
		ctx := context.Background()

		require.NoError(t, svc.ReplaceEntries(ctx, site.ID, sampleEntries()))
		replacement := []*docidx.SearchEntry{
			{Location: "new.html#", Page: "New", Title: "New", Category: docidx.CategoryPage},
		}
		require.NoError(t, svc.ReplaceEntries(ctx, site.ID, replacement))

		entries, err := svc.FindEntries(ctx, docidx.EntryFilter{SiteID: &site.ID})
		require.NoError(t, err)
		assert.Equal(t, []string{"new.html#"}, locations(entries))
	})

	t.Run("does not touch other sites", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		a := createTestSite(t, db, "a")
		b := createTestSite(t, db, "b")
		svc := sqlite.NewEntryService(db)
		ctx := context.Background()

		require.NoError(t, svc.ReplaceEntries(ctx, a.ID, sampleEntries()))
		require.NoError(t, svc.ReplaceEntries(ctx, b.ID, sampleEntries()[:1]))
		require.NoError(t, svc.ReplaceEntries(ctx, b.ID, nil))

		entries, err := svc.FindEntries(ctx, docidx.EntryFilter{SiteID: &a.ID})
		require.NoError(t, err)
		assert.Len(t, entries, 5)

		entries, err = svc.FindEntries(ctx, docidx.EntryFilter{SiteID: &b.ID})
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("invalid entry leaves previous entries intact", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		site := createTestSite(t, db, "home")
		svc := sqlite.NewEntryService(db)
		ctx := context.Background()

		require.NoError(t, svc.ReplaceEntries(ctx, site.ID, sampleEntries()))

		err := svc.ReplaceEntries(ctx, site.ID, []*docidx.SearchEntry{
			{Location: "index.html#ok"},
			{Location: "no-fragment"},
		})
		require.Error(t, err)
		assert.Equal(t, docidx.EINVALID, docidx.ErrorCode(err))
		assert.Contains(t, docidx.ErrorMessage(err), "entry 1")

		entries, err := svc.FindEntries(ctx, docidx.EntryFilter{SiteID: &site.ID})
		require.NoError(t, err)
		assert.Len(t, entries, 5)
	})

	t.Run("unknown site is not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		err := sqlite.NewEntryService(db).ReplaceEntries(context.Background(), "missing", sampleEntries())
		require.Error(t, err)
		assert.Equal(t, docidx.ENOTFOUND, docidx.ErrorCode(err))
	})
}

func TestEntryService_FindEntries(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (*sqlite.EntryService, *docidx.Site) {
		t.Helper()
		db := setupTestDB(t)
		site := createTestSite(t, db, "home")
		svc := sqlite.NewEntryService(db)
		require.NoError(t, svc.ReplaceEntries(context.Background(), site.ID, sampleEntries()))
		return svc, site
	}

	t.Run("keyword matches like docidx.Find", func(t *testing.T) {
		t.Parallel()

		svc, site := setup(t)

		entries, err := svc.FindEntries(context.Background(), docidx.EntryFilter{
			SiteID:  &site.ID,
			Keyword: "mark",
			Field:   docidx.FieldTitle,
		})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "OptionalArgChecks.@mark", entries[0].Title)

		want := docidx.Find(sampleEntries(), "@mark", docidx.LookupOptions{})
		got, err := svc.FindEntries(context.Background(), docidx.EntryFilter{SiteID: &site.ID, Keyword: "@mark"})
		require.NoError(t, err)
		assert.Equal(t, locations(want), locations(got))
	})

	t.Run("absent keyword returns empty result", func(t *testing.T) {
		t.Parallel()

		svc, site := setup(t)

		entries, err := svc.FindEntries(context.Background(), docidx.EntryFilter{SiteID: &site.ID, Keyword: "quaternion"})
		require.NoError(t, err)
		require.NotNil(t, entries)
		assert.Empty(t, entries)
	})

	t.Run("filters by category", func(t *testing.T) {
		t.Parallel()

		svc, site := setup(t)

		entries, err := svc.FindEntries(context.Background(), docidx.EntryFilter{
			SiteID:     &site.ID,
			Categories: []docidx.Category{docidx.CategoryMacro, docidx.CategorySection},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"index.html#API-1",
			"index.html#OptionalArgChecks.@mark-Tuple{Any,Any}",
			"index.html#OptionalArgChecks.@skip-Tuple{Any,Any}",
		}, locations(entries))
	})

	t.Run("filters by location", func(t *testing.T) {
		t.Parallel()

		svc, site := setup(t)

		loc := "index.html#"
		entries, err := svc.FindEntries(context.Background(), docidx.EntryFilter{SiteID: &site.ID, Location: &loc})
		require.NoError(t, err)
		assert.Len(t, entries, 2, "duplicate locations are both stored")
	})

	t.Run("paginates after keyword matching", func(t *testing.T) {
		t.Parallel()

		svc, site := setup(t)

		entries, err := svc.FindEntries(context.Background(), docidx.EntryFilter{
			SiteID:  &site.ID,
			Keyword: "mark",
			Offset:  1,
			Limit:   1,
		})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "OptionalArgChecks.@mark", entries[0].Title)
	})

	t.Run("paginates without keyword", func(t *testing.T) {
		t.Parallel()

		svc, site := setup(t)

		entries, err := svc.FindEntries(context.Background(), docidx.EntryFilter{SiteID: &site.ID, Offset: 3, Limit: 10})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, 3, entries[0].Position)
	})

	t.Run("offset past matches returns empty result", func(t *testing.T) {
		t.Parallel()

		svc, site := setup(t)

		entries, err := svc.FindEntries(context.Background(), docidx.EntryFilter{SiteID: &site.ID, Keyword: "mark", Offset: 10})
		require.NoError(t, err)
		require.NotNil(t, entries)
		assert.Empty(t, entries)
	})
}
