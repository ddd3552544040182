package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drebelsky/xdr-ls/index"
)

func testSnapshot() index.Snapshot {
	return index.Snapshot{
		Definitions: map[string]index.Location{
			"MAX":  {Path: "a.x", Start: index.Point{Line: 0, Col: 6}, End: index.Point{Line: 0, Col: 9}},
			"blob": {Path: "a.x", Start: index.Point{Line: 1, Col: 15}, End: index.Point{Line: 1, Col: 19}},
		},
		References: map[string][]index.Location{
			"MAX": {
				{Path: "a.x", Start: index.Point{Line: 1, Col: 20}, End: index.Point{Line: 1, Col: 23}},
				{Path: "b.x", Start: index.Point{Line: 0, Col: 4}, End: index.Point{Line: 0, Col: 7}},
			},
		},
	}
}

func openStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStoreRoundTrip(t *testing.T) {
	st := openStore(t)
	require.NoError(t, st.SaveSnapshot(testSnapshot()))

	loc, ok, err := st.Definition("MAX")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a.x", loc.Path)
	require.Equal(t, index.Point{Line: 0, Col: 6}, loc.Start)

	refs, ok, err := st.References("MAX", false)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, refs, 2)
	// Rows come back ordered by path, then position.
	require.Equal(t, "a.x", refs[0].Path)
	require.Equal(t, "b.x", refs[1].Path)
}

func TestStoreAbsentName(t *testing.T) {
	st := openStore(t)
	require.NoError(t, st.SaveSnapshot(testSnapshot()))

	_, ok, err := st.Definition("nope")
	require.NoError(t, err)
	require.False(t, ok)

	// blob is defined but never referenced: no bucket, even with the
	// declaration included.
	_, ok, err = st.References("blob", true)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStoreIncludeDeclaration(t *testing.T) {
	st := openStore(t)
	require.NoError(t, st.SaveSnapshot(testSnapshot()))

	refs, ok, err := st.References("MAX", true)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, refs, 3)
}

func TestStoreSaveReplaces(t *testing.T) {
	st := openStore(t)
	require.NoError(t, st.SaveSnapshot(testSnapshot()))

	smaller := index.Snapshot{
		Definitions: map[string]index.Location{
			"ONLY": {Path: "c.x", Start: index.Point{Line: 0, Col: 6}, End: index.Point{Line: 0, Col: 10}},
		},
		References: map[string][]index.Location{},
	}
	require.NoError(t, st.SaveSnapshot(smaller))

	_, ok, err := st.Definition("MAX")
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = st.Definition("ONLY")
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = st.References("MAX", false)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.SaveSnapshot(testSnapshot()))
	require.NoError(t, st.Close())

	st2, err := Open(path)
	require.NoError(t, err)
	defer st2.Close()

	loc, ok, err := st2.Definition("blob")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, index.Point{Line: 1, Col: 15}, loc.Start)
}
