package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStats(t *testing.T) {
	dir := writeWorkspace(t, map[string]string{
		"good.x":      "const MAX = 10;\n",
		"broken.x":    "const = ;\n",
		"ignored.txt": "not xdr\n",
		"sub/extra.x": "const MIN = 1;\n",
	})
	ix := New(Options{})
	stats, err := ix.Build(dir)
	require.NoError(t, err)

	require.Equal(t, 3, stats.Files)
	require.Equal(t, 2, stats.Indexed)
	require.Equal(t, 1, stats.Skipped)
	require.Equal(t, 2, stats.Definitions)
	require.Equal(t, 0, stats.References)

	_, ok := ix.Definition("MAX")
	require.True(t, ok)
	_, ok = ix.Definition("MIN")
	require.True(t, ok)
}

func TestBuildExcludes(t *testing.T) {
	dir := writeWorkspace(t, map[string]string{
		"keep.x":         "const KEEP = 1;\n",
		"vendor/skip.x":  "const SKIP = 1;\n",
		"gen/deep/out.x": "const DEEP = 1;\n",
	})
	ix := New(Options{Exclude: []string{"vendor/*", "gen/**"}})
	stats, err := ix.Build(dir)
	require.NoError(t, err)

	require.Equal(t, 1, stats.Files)
	_, ok := ix.Definition("KEEP")
	require.True(t, ok)
	_, ok = ix.Definition("SKIP")
	require.False(t, ok)
	_, ok = ix.Definition("DEEP")
	require.False(t, ok)
}

func TestBuildCustomExtensions(t *testing.T) {
	dir := writeWorkspace(t, map[string]string{
		"a.x":   "const A = 1;\n",
		"b.xdr": "const B = 1;\n",
	})
	// The leading dot is optional in config.
	ix := New(Options{Extensions: []string{"xdr"}})
	stats, err := ix.Build(dir)
	require.NoError(t, err)

	require.Equal(t, 1, stats.Files)
	_, ok := ix.Definition("B")
	require.True(t, ok)
	_, ok = ix.Definition("A")
	require.False(t, ok)
}

func TestBuildErrors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		ix := New(Options{})
		_, err := ix.Build(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
	})

	t.Run("root is a file", func(t *testing.T) {
		dir := writeWorkspace(t, map[string]string{"a.x": "const A = 1;\n"})
		ix := New(Options{})
		_, err := ix.Build(filepath.Join(dir, "a.x"))
		require.ErrorIs(t, err, ErrNotDirectory)
	})

	t.Run("bad exclude glob", func(t *testing.T) {
		ix := New(Options{Exclude: []string{"[unclosed"}})
		_, err := ix.Build(t.TempDir())
		require.Error(t, err)
	})
}

func TestRebuildDropsRemovedFiles(t *testing.T) {
	dir := writeWorkspace(t, map[string]string{"a.x": "const OLD = 1;\n"})
	ix := New(Options{})
	_, err := ix.Build(dir)
	require.NoError(t, err)
	_, ok := ix.Definition("OLD")
	require.True(t, ok)

	require.NoError(t, os.Remove(filepath.Join(dir, "a.x")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.x"), []byte("const NEW = 1;\n"), 0o644))

	_, err = ix.Build(dir)
	require.NoError(t, err)
	_, ok = ix.Definition("OLD")
	require.False(t, ok)
	_, ok = ix.Definition("NEW")
	require.True(t, ok)
}
