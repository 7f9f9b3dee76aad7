// Package sqlite persists the session catalog so it survives between
// invocations. Match history is never stored.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/merchlink/merchlink/pkg/merchlink/catalog"
	"github.com/merchlink/merchlink/pkg/merchlink/store"
)

type sqliteStore struct {
	db *sql.DB
}

// Open opens (or creates) a catalog database with WAL mode enabled.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS entries (
	position INTEGER PRIMARY KEY,
	phrase TEXT NOT NULL,
	url TEXT NOT NULL,
	anchor TEXT NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Replace swaps the stored catalog wholesale inside one transaction, so a
// concurrent Snapshot sees either the old catalog or the new one.
func (s *sqliteStore) Replace(ctx context.Context, c *catalog.Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO entries (position, phrase, url, anchor) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range c.Entries() {
		if _, err := stmt.ExecContext(ctx, e.ID, e.Phrase, e.URL, e.Anchor); err != nil {
			return fmt.Errorf("insert entry %d: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// Snapshot rebuilds the catalog from the stored rows in load order. The
// stored phrase is already normalized, so keywords are recomputed from it.
func (s *sqliteStore) Snapshot(ctx context.Context) (*catalog.Catalog, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT phrase, url, anchor FROM entries ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	defer rows.Close()

	var source []catalog.Row
	for rows.Next() {
		var r catalog.Row
		if err := rows.Scan(&r.Phrase, &r.URL, &r.Anchor); err != nil {
			return nil, err
		}
		source = append(source, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cat, _ := catalog.FromRows(source)
	return cat, nil
}
