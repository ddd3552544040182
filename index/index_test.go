package index

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func buildIndex(t *testing.T, files map[string]string) (*Index, string) {
	t.Helper()
	dir := writeWorkspace(t, files)
	ix := New(Options{})
	_, err := ix.Build(dir)
	require.NoError(t, err)
	return ix, dir
}

func TestConstDefinition(t *testing.T) {
	ix, dir := buildIndex(t, map[string]string{"a.x": "const MAX = 10;\n"})
	path := filepath.Join(dir, "a.x")

	name, ok := ix.IdentifierAt(path, Point{Line: 0, Col: 7})
	require.True(t, ok)
	require.Equal(t, "MAX", name)

	loc, ok := ix.Definition("MAX")
	require.True(t, ok)
	require.Equal(t, Location{
		Path:  path,
		Start: Point{Line: 0, Col: 6},
		End:   Point{Line: 0, Col: 9},
	}, loc)

	// A name that is only ever defined has no reference bucket, and
	// includeDecl does not create one.
	_, ok = ix.References("MAX", false)
	require.False(t, ok)
	_, ok = ix.References("MAX", true)
	require.False(t, ok)
}

func TestStructFieldsAreReferences(t *testing.T) {
	ix, dir := buildIndex(t, map[string]string{"b.x": "struct Foo { int x; };\n"})

	loc, ok := ix.Definition("Foo")
	require.True(t, ok)
	require.Equal(t, Point{Line: 0, Col: 7}, loc.Start)
	require.Equal(t, Point{Line: 0, Col: 10}, loc.End)

	refs, ok := ix.References("x", false)
	require.True(t, ok)
	require.Len(t, refs, 1)
	require.Equal(t, filepath.Join(dir, "b.x"), refs[0].Path)
	require.Equal(t, Point{Line: 0, Col: 17}, refs[0].Start)

	// Field names reference themselves; they define nothing.
	_, ok = ix.Definition("x")
	require.False(t, ok)
}

func TestIdentifierAtEdges(t *testing.T) {
	ix, dir := buildIndex(t, map[string]string{"a.x": "const MAX = 10;\n"})
	path := filepath.Join(dir, "a.x")

	// Both edges hit: stored spans are half-open but lookup treats the
	// end column as part of the identifier, so a cursor on either side
	// of the name resolves.
	for _, col := range []int{6, 7, 8, 9} {
		name, ok := ix.IdentifierAt(path, Point{Line: 0, Col: col})
		require.True(t, ok, "col %d", col)
		require.Equal(t, "MAX", name, "col %d", col)
	}

	_, ok := ix.IdentifierAt(path, Point{Line: 0, Col: 10})
	require.False(t, ok)
	_, ok = ix.IdentifierAt(path, Point{Line: 0, Col: 3})
	require.False(t, ok)
	_, ok = ix.IdentifierAt(path, Point{Line: 5, Col: 0})
	require.False(t, ok)
	_, ok = ix.IdentifierAt(filepath.Join(dir, "zzz.x"), Point{Line: 0, Col: 7})
	require.False(t, ok)
}

func TestIdentifierAtGap(t *testing.T) {
	ix, dir := buildIndex(t, map[string]string{"c.x": "struct s { int aa; int bb; };\n"})
	path := filepath.Join(dir, "c.x")

	name, ok := ix.IdentifierAt(path, Point{Line: 0, Col: 15})
	require.True(t, ok)
	require.Equal(t, "aa", name)

	// Between aa and bb sits the second "int"; keywords are not
	// identifier tokens, so the position resolves to nothing.
	_, ok = ix.IdentifierAt(path, Point{Line: 0, Col: 19})
	require.False(t, ok)
}

func TestDuplicateDefinitionLastFileWins(t *testing.T) {
	ix, dir := buildIndex(t, map[string]string{
		"a.x": "const DUP = 1;\n",
		"b.x": "const DUP = 2;\n",
	})

	// Files merge in walk order, so b.x overwrites a.x.
	loc, ok := ix.Definition("DUP")
	require.True(t, ok)
	require.Equal(t, filepath.Join(dir, "b.x"), loc.Path)
}

func TestSameNamedFieldsShareBucket(t *testing.T) {
	ix, _ := buildIndex(t, map[string]string{
		"a.x": "struct one { int id; };\nstruct two { int id; };\n",
	})

	refs, ok := ix.References("id", false)
	require.True(t, ok)
	require.Len(t, refs, 2)
}

func TestReferencesIncludeDeclaration(t *testing.T) {
	ix, _ := buildIndex(t, map[string]string{
		"a.x": "enum e { GOOD = 0 };\nstruct s { e kind; };\n",
	})

	refs, ok := ix.References("e", false)
	require.True(t, ok)
	require.Len(t, refs, 1)

	withDecl, ok := ix.References("e", true)
	require.True(t, ok)
	require.Len(t, withDecl, 2)
	require.Equal(t, refs[0], withDecl[0])
}

func TestRebuildIsIdempotent(t *testing.T) {
	dir := writeWorkspace(t, map[string]string{
		"a.x": "const MAX = 10;\ntypedef opaque blob[MAX];\n",
	})
	ix := New(Options{})

	stats1, err := ix.Build(dir)
	require.NoError(t, err)
	snap1 := ix.Snapshot()

	stats2, err := ix.Build(dir)
	require.NoError(t, err)
	snap2 := ix.Snapshot()

	require.Equal(t, stats1, stats2)
	require.Equal(t, snap1, snap2)
}

func TestSnapshotIsACopy(t *testing.T) {
	ix, _ := buildIndex(t, map[string]string{"a.x": "struct s { int id; };\n"})

	snap := ix.Snapshot()
	snap.Definitions["s"] = Location{Path: "elsewhere"}
	snap.References["id"] = nil

	loc, ok := ix.Definition("s")
	require.True(t, ok)
	require.NotEqual(t, "elsewhere", loc.Path)
	refs, ok := ix.References("id", false)
	require.True(t, ok)
	require.Len(t, refs, 1)
}

func TestConcurrentQueries(t *testing.T) {
	ix, dir := buildIndex(t, map[string]string{
		"a.x": "const MAX = 10;\ntypedef opaque blob[MAX];\n",
	})
	path := filepath.Join(dir, "a.x")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if name, ok := ix.IdentifierAt(path, Point{Line: 0, Col: 7}); ok {
				ix.Definition(name)
				ix.References(name, true)
			}
		}()
	}
	wg.Wait()
}
