// Package index builds and queries the symbol index for a tree of XDR
// sources. It answers two questions about the identifier under a
// position: where is this name defined, and where else is it used.
//
// Names live in one flat namespace. Two struct fields called "id" in
// different types land in the same reference bucket, which mirrors how
// the language itself offers no scoping to tell them apart.
package index

import (
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// Options configure an Index.
type Options struct {
	// Extensions of the files to index, with or without the leading
	// dot. Defaults to ".x".
	Extensions []string
	// Exclude holds path globs matched against the slash-separated path
	// of each candidate file relative to the indexed root.
	Exclude []string
	// Workers caps how many files are parsed at once. Zero or negative
	// means GOMAXPROCS.
	Workers int
	Logger  *slog.Logger
}

// Index holds the token, definition, and reference tables for one tree
// of sources. All methods are safe for concurrent use.
type Index struct {
	opts Options

	tokensMu sync.Mutex
	tokens   map[string]map[int][]Token

	defsMu sync.Mutex
	defs   map[string]Location

	refsMu sync.Mutex
	refs   map[string][]Location
}

// New returns an empty index. Populate it with Build.
func New(opts Options) *Index {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{".x"}
	}
	normalized := make([]string, len(exts))
	for i, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized[i] = ext
	}
	opts.Extensions = normalized
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Index{
		opts:   opts,
		tokens: make(map[string]map[int][]Token),
		defs:   make(map[string]Location),
		refs:   make(map[string][]Location),
	}
}

// IdentifierAt returns the name of the identifier covering pt in path.
// A position on either edge of an identifier still hits it; cursors sit
// between bytes, and both neighbours should resolve.
func (ix *Index) IdentifierAt(path string, pt Point) (string, bool) {
	ix.tokensMu.Lock()
	defer ix.tokensMu.Unlock()
	line := ix.tokens[path][pt.Line]
	i := sort.Search(len(line), func(i int) bool { return line[i].Start > pt.Col }) - 1
	if i < 0 {
		return "", false
	}
	if t := line[i]; pt.Col <= t.End {
		return t.Name, true
	}
	return "", false
}

// Definition returns where name is defined. When several files define
// the same name, the one merged last wins.
func (ix *Index) Definition(name string) (Location, bool) {
	ix.defsMu.Lock()
	defer ix.defsMu.Unlock()
	loc, ok := ix.defs[name]
	return loc, ok
}

// References returns every recorded use of name. The boolean reports
// whether name has a reference bucket at all; a name that only ever
// appears as a definition has none, and includeDecl does not conjure
// one up.
func (ix *Index) References(name string, includeDecl bool) ([]Location, bool) {
	ix.refsMu.Lock()
	bucket, ok := ix.refs[name]
	if !ok {
		ix.refsMu.Unlock()
		return nil, false
	}
	locs := make([]Location, len(bucket))
	copy(locs, bucket)
	ix.refsMu.Unlock()

	if includeDecl {
		if loc, ok := ix.Definition(name); ok {
			locs = append(locs, loc)
		}
	}
	return locs, true
}

// Snapshot is a point-in-time copy of the name tables plus the list of
// indexed files, safe to hold on to while the index keeps serving
// queries.
type Snapshot struct {
	Files       []string              `json:"files"`
	Definitions map[string]Location   `json:"definitions"`
	References  map[string][]Location `json:"references"`
}

// Snapshot copies both name tables and lists the indexed files in
// sorted order.
func (ix *Index) Snapshot() Snapshot {
	snap := Snapshot{
		Definitions: make(map[string]Location),
		References:  make(map[string][]Location),
	}
	ix.tokensMu.Lock()
	for path := range ix.tokens {
		snap.Files = append(snap.Files, path)
	}
	ix.tokensMu.Unlock()
	sort.Strings(snap.Files)
	ix.defsMu.Lock()
	for name, loc := range ix.defs {
		snap.Definitions[name] = loc
	}
	ix.defsMu.Unlock()
	ix.refsMu.Lock()
	for name, locs := range ix.refs {
		snap.References[name] = append([]Location(nil), locs...)
	}
	ix.refsMu.Unlock()
	return snap
}
