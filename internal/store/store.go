// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store is the papers database collaborator. The core only depends
// on its query contract: one SELECT string in, an ordered sequence of rows
// with the fixed column list (id, title, author, pub_date, venue, type) out.
// It speaks PostgreSQL (the original deployment) or SQLite (local use and
// tests) through database/sql.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-finder/pkg/types"
)

// Store wraps the papers database connection.
type Store struct {
	db     *sql.DB
	driver string
}

// Open creates a Store from connection configuration. The connection itself
// is lazy; failures surface on first query and are treated downstream as a
// zero-match outcome, not an error.
func Open(cfg types.StoreConfig) (*Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = "sqlite3"
	}
	dsn := cfg.DSN
	if dsn == "" && driver == "sqlite3" {
		dsn = "papers.db"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening papers database: %w", err)
	}
	return &Store{db: db, driver: driver}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// QueryPapers executes one synthesized SELECT and scans the fixed column
// list. NULL columns scan as empty strings.
func (s *Store) QueryPapers(ctx context.Context, query string) ([]types.PaperRecord, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var records []types.PaperRecord
	for rows.Next() {
		var id, title, author, pubDate, venue, recType sql.NullString
		if err := rows.Scan(&id, &title, &author, &pubDate, &venue, &recType); err != nil {
			return nil, fmt.Errorf("scanning paper row: %w", err)
		}
		records = append(records, types.PaperRecord{
			ID:      id.String,
			Title:   title.String,
			Author:  author.String,
			PubDate: pubDate.String,
			Venue:   venue.String,
			Type:    recType.String,
		})
	}
	return records, rows.Err()
}

// CreateSchema creates the papers table if it does not exist. The column
// set mirrors the OpenCitations Meta CSV dump.
func (s *Store) CreateSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS papers (
		id TEXT PRIMARY KEY,
		title TEXT,
		author TEXT,
		pub_date TEXT,
		venue TEXT,
		volume TEXT,
		issue TEXT,
		page TEXT,
		type TEXT,
		publisher TEXT,
		editor TEXT
	)`)
	if err != nil {
		return fmt.Errorf("creating papers schema: %w", err)
	}
	return nil
}
