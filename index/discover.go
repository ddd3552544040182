package index

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	xdrls "github.com/drebelsky/xdr-ls"
)

// ErrNotDirectory reports that the path handed to Build is not a
// directory.
var ErrNotDirectory = errors.New("not a directory")

// Stats summarize one Build pass.
type Stats struct {
	Files       int `json:"files"`
	Indexed     int `json:"indexed"`
	Skipped     int `json:"skipped"`
	Definitions int `json:"definitions"`
	References  int `json:"references"`
}

// Build walks root, parses every matching file, and replaces the index
// contents with the result. Files that fail to read or parse are left
// out rather than failing the build. Queries issued while Build runs
// block until the new tables are in place, so a fresh index never
// answers from half-built state.
func (ix *Index) Build(root string) (Stats, error) {
	info, err := os.Stat(root)
	if err != nil {
		return Stats{}, err
	}
	if !info.IsDir() {
		return Stats{}, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	excludes := make([]glob.Glob, 0, len(ix.opts.Exclude))
	for _, pat := range ix.opts.Exclude {
		g, err := glob.Compile(pat, '/')
		if err != nil {
			return Stats{}, fmt.Errorf("exclude pattern %q: %w", pat, err)
		}
		excludes = append(excludes, g)
	}

	paths, err := ix.discover(root, excludes)
	if err != nil {
		return Stats{}, err
	}

	results := make([]*fileIndex, len(paths))
	var g errgroup.Group
	g.SetLimit(ix.opts.Workers)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = ix.indexFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	ix.tokensMu.Lock()
	defer ix.tokensMu.Unlock()
	ix.defsMu.Lock()
	defer ix.defsMu.Unlock()
	ix.refsMu.Lock()
	defer ix.refsMu.Unlock()

	clear(ix.tokens)
	clear(ix.defs)
	clear(ix.refs)

	stats := Stats{Files: len(paths)}
	for _, res := range results {
		if res == nil {
			stats.Skipped++
			continue
		}
		stats.Indexed++
		ix.tokens[res.path] = res.lines
		for _, d := range res.defs {
			ix.defs[d.name] = d.loc
		}
		for _, r := range res.refs {
			ix.refs[r.name] = append(ix.refs[r.name], r.loc)
		}
	}
	stats.Definitions = len(ix.defs)
	for _, locs := range ix.refs {
		stats.References += len(locs)
	}
	return stats, nil
}

// discover walks root in lexical order, so the merge order, and with it
// which of several same-named definitions wins, is deterministic.
func (ix *Index) discover(root string, excludes []glob.Glob) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			ix.opts.Logger.Debug("skipping unreadable entry", "path", path, "err", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !slices.Contains(ix.opts.Extensions, filepath.Ext(path)) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		for _, g := range excludes {
			if g.Match(rel) {
				ix.opts.Logger.Debug("excluding file", "path", path)
				return nil
			}
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}

type tableEntry struct {
	name string
	loc  Location
}

// fileIndex holds one file's contribution before it is merged, so
// workers never touch the shared tables.
type fileIndex struct {
	path  string
	lines map[int][]Token
	defs  []tableEntry
	refs  []tableEntry
}

// indexFile parses one file into its private tables. A file that cannot
// be read or parsed yields nil and is simply left out of the index.
func (ix *Index) indexFile(path string) *fileIndex {
	src, err := os.ReadFile(path)
	if err != nil {
		ix.opts.Logger.Debug("skipping unreadable file", "path", path, "err", err)
		return nil
	}
	spec, err := xdrls.Parse(src)
	if err != nil {
		ix.opts.Logger.Debug("skipping unparsable file", "path", path, "err", err)
		return nil
	}

	lm := NewLineMap(src)
	res := &fileIndex{path: path, lines: make(map[int][]Token)}
	for occ := range spec.Occurrences() {
		start, end := lm.Span(occ.Ident.Start, occ.Ident.End)
		loc := Location{Path: path, Start: start, End: end}
		res.lines[start.Line] = append(res.lines[start.Line], Token{Start: start.Col, End: end.Col, Name: occ.Ident.Name})
		if occ.Defn {
			res.defs = append(res.defs, tableEntry{name: occ.Ident.Name, loc: loc})
		} else {
			res.refs = append(res.refs, tableEntry{name: occ.Ident.Name, loc: loc})
		}
	}
	// IdentifierAt binary-searches each line, which needs tokens ordered
	// by start column.
	for _, line := range res.lines {
		slices.SortFunc(line, func(a, b Token) int { return cmp.Compare(a.Start, b.Start) })
	}
	return res
}
