// Package store persists index snapshots to SQLite so query results can
// be served later without re-parsing the sources.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/drebelsky/xdr-ls/index"
)

const driverName = "sqlite"

// Store is a SQLite-backed copy of the definition and reference tables.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS definitions (
	name       TEXT PRIMARY KEY,
	path       TEXT NOT NULL,
	start_line INTEGER NOT NULL,
	start_col  INTEGER NOT NULL,
	end_line   INTEGER NOT NULL,
	end_col    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS refs (
	name       TEXT NOT NULL,
	path       TEXT NOT NULL,
	start_line INTEGER NOT NULL,
	start_col  INTEGER NOT NULL,
	end_line   INTEGER NOT NULL,
	end_col    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_refs_name ON refs(name);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot replaces the stored tables with snap.
func (s *Store) SaveSnapshot(snap index.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM definitions`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM refs`); err != nil {
		return err
	}

	insDef, err := tx.Prepare(`INSERT INTO definitions (name, path, start_line, start_col, end_line, end_col) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insDef.Close()
	for name, loc := range snap.Definitions {
		if _, err := insDef.Exec(name, loc.Path, loc.Start.Line, loc.Start.Col, loc.End.Line, loc.End.Col); err != nil {
			return err
		}
	}

	insRef, err := tx.Prepare(`INSERT INTO refs (name, path, start_line, start_col, end_line, end_col) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insRef.Close()
	for name, locs := range snap.References {
		for _, loc := range locs {
			if _, err := insRef.Exec(name, loc.Path, loc.Start.Line, loc.Start.Col, loc.End.Line, loc.End.Col); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Definition looks name up in the stored definition table.
func (s *Store) Definition(name string) (index.Location, bool, error) {
	var loc index.Location
	row := s.db.QueryRow(`SELECT path, start_line, start_col, end_line, end_col FROM definitions WHERE name = ?`, name)
	err := row.Scan(&loc.Path, &loc.Start.Line, &loc.Start.Col, &loc.End.Line, &loc.End.Col)
	if errors.Is(err, sql.ErrNoRows) {
		return index.Location{}, false, nil
	}
	if err != nil {
		return index.Location{}, false, err
	}
	return loc, true, nil
}

// Names returns every name the store knows, defined or referenced,
// sorted and without duplicates.
func (s *Store) Names() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM definitions UNION SELECT name FROM refs ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// References returns the stored uses of name, ordered by position. The
// boolean mirrors the in-memory index: false when name has no
// reference rows, whether or not it has a definition.
func (s *Store) References(name string, includeDecl bool) ([]index.Location, bool, error) {
	rows, err := s.db.Query(`SELECT path, start_line, start_col, end_line, end_col FROM refs WHERE name = ? ORDER BY path, start_line, start_col`, name)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var locs []index.Location
	for rows.Next() {
		var loc index.Location
		if err := rows.Scan(&loc.Path, &loc.Start.Line, &loc.Start.Col, &loc.End.Line, &loc.End.Col); err != nil {
			return nil, false, err
		}
		locs = append(locs, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	if len(locs) == 0 {
		return nil, false, nil
	}
	if includeDecl {
		loc, ok, err := s.Definition(name)
		if err != nil {
			return nil, false, err
		}
		if ok {
			locs = append(locs, loc)
		}
	}
	return locs, true, nil
}
