package main_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docidx"
	main "github.com/fwojciec/docidx/cmd/docidx"
	"github.com/fwojciec/docidx/documenter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// copySite copies the test documentation build into a temporary directory.
func copySite(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "build")
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, name := range []string{"index.html", "search_index.js"} {
		data, err := os.ReadFile(filepath.Join("testdata", "site", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}
	return dir
}

type runner struct {
	t         *testing.T
	dbPath    string
	indexPath string
}

func newRunner(t *testing.T) *runner {
	t.Helper()
	dir := t.TempDir()
	return &runner{
		t:         t,
		dbPath:    filepath.Join(dir, "docidx.db"),
		indexPath: filepath.Join(dir, "search.bleve"),
	}
}

func (r *runner) run(args ...string) (string, string, error) {
	r.t.Helper()
	m := main.NewMain()
	m.DBPath = r.dbPath
	m.IndexPath = r.indexPath

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(testContext(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_EndToEnd(t *testing.T) {
	t.Parallel()

	build := copySite(t)
	r := newRunner(t)
	const markLocation = "index.html#OptionalArgChecks.@mark-Tuple{Any,Any}"

	// The page references search_index.js, which the locator resolves.
	stdout, stderr, err := r.run("add", "optionalargchecks", filepath.Join(build, "index.html"))
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, `Added site "optionalargchecks"`)
	assert.Contains(t, stdout, "Loaded 10 entries from "+filepath.Join(build, "search_index.js"))

	stdout, stderr, err = r.run("list")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "optionalargchecks  10 entries")

	stdout, stderr, err = r.run("lookup", "optionalargchecks", "mark", "--field", "title")
	require.NoError(t, err, stderr)
	assert.Equal(t, markLocation+"\n", stdout)

	stdout, stderr, err = r.run("lookup", "optionalargchecks", "nonexistent")
	require.NoError(t, err, stderr)
	assert.Empty(t, stdout)

	stdout, stderr, err = r.run("entries", "optionalargchecks", "-C", "macro")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "OptionalArgChecks.@mark")
	assert.NotContains(t, stdout, "[page]")

	stdout, stderr, err = r.run("search", "skipping arbitrary code")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "index.html#")
	assert.Contains(t, stdout, "(optionalargchecks, ")

	stdout, stderr, err = r.run("show", "optionalargchecks", markLocation)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "@mark label ex")

	out := filepath.Join(t.TempDir(), "export", "search_index.json")
	stdout, stderr, err = r.run("export", "optionalargchecks", out, "--json")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "Wrote 10 entries")
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	exported, err := documenter.NewCodec().Decode(f)
	require.NoError(t, err)
	assert.Equal(t, []string{markLocation}, exported.Lookup("mark", docidx.LookupOptions{Field: docidx.FieldTitle}))

	stdout, stderr, err = r.run("refresh", "optionalargchecks")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "optionalargchecks: 10 entries (unchanged)")

	stdout, stderr, err = r.run("refresh", "--force")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "Refreshed 1, unchanged 0, failed 0")

	_, stderr, err = r.run("delete", "optionalargchecks", "--force")
	require.NoError(t, err, stderr)

	stdout, _, err = r.run("search", "mark")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No results")

	_, _, err = r.run("lookup", "optionalargchecks", "mark")
	assert.Equal(t, docidx.ENOTFOUND, docidx.ErrorCode(err))
}

func TestMain_Inspect(t *testing.T) {
	t.Parallel()

	build := copySite(t)
	r := newRunner(t)

	t.Run("summarizes index without a database", func(t *testing.T) {
		stdout, stderr, err := r.run("inspect", filepath.Join(build, "search_index.js"))
		require.NoError(t, err, stderr)
		assert.Contains(t, stdout, "10 entries")
		assert.Contains(t, stdout, "pages: Home")

		_, statErr := os.Stat(r.dbPath)
		assert.True(t, os.IsNotExist(statErr), "inspect should not create the database")
	})

	t.Run("looks up keyword", func(t *testing.T) {
		stdout, stderr, err := r.run("inspect", filepath.Join(build, "index.html"), "skip", "--field", "title")
		require.NoError(t, err, stderr)
		assert.Equal(t,
			"index.html#OptionalArgChecks.@skip\nindex.html#OptionalArgChecks.@skipargcheck-Tuple{Any}\n",
			stdout)
	})

	t.Run("malformed index is a parse error", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "search_index.js")
		require.NoError(t, os.WriteFile(bad, []byte(`{"doc": []}`), 0644))

		_, stderr, err := r.run("inspect", bad)
		assert.Equal(t, docidx.EPARSE, docidx.ErrorCode(err))
		assert.Contains(t, stderr, "error:")
	})

	t.Run("empty index has zero entries", func(t *testing.T) {
		empty := filepath.Join(t.TempDir(), "search_index.json")
		require.NoError(t, os.WriteFile(empty, []byte(`{"docs": []}`), 0644))

		stdout, stderr, err := r.run("inspect", empty)
		require.NoError(t, err, stderr)
		assert.Contains(t, stdout, "0 entries")
	})
}
