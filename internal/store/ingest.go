// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// csvColumns is the papers column order used for bulk inserts, matching the
// OpenCitations Meta CSV dump headers.
var csvColumns = []string{
	"id", "title", "author", "pub_date", "venue",
	"volume", "issue", "page", "type", "publisher", "editor",
}

const ingestBatchSize = 1000

// IngestSummary holds counts from one bulk load run.
type IngestSummary struct {
	Files   int
	Rows    int
	Skipped int
}

// IngestDir bulk-loads every *.csv file under dir into the papers table.
// Files are processed in name order; rows without an id and rows whose id
// already exists are skipped. Progress is reported per file on w.
func (s *Store) IngestDir(ctx context.Context, dir string, w io.Writer) (IngestSummary, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return IngestSummary{}, fmt.Errorf("listing CSV files: %w", err)
	}
	if len(paths) == 0 {
		return IngestSummary{}, fmt.Errorf("no CSV files found in %s", dir)
	}
	sort.Strings(paths)

	var summary IngestSummary
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		rows, skipped, err := s.ingestFile(ctx, path)
		if err != nil {
			return summary, fmt.Errorf("loading %s: %w", filepath.Base(path), err)
		}
		summary.Files++
		summary.Rows += rows
		summary.Skipped += skipped
		fmt.Fprintf(w, "loaded %s (%d rows, %d skipped)\n", filepath.Base(path), rows, skipped)
	}

	fmt.Fprintf(w, "\nfiles: %d, rows: %d, skipped: %d\n", summary.Files, summary.Rows, summary.Skipped)
	return summary, nil
}

func (s *Store) ingestFile(ctx context.Context, path string) (rows, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1

	header, err := rd.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("reading header: %w", err)
	}
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := colIndex["id"]; !ok {
		return 0, 0, fmt.Errorf("missing id column")
	}

	var batch [][]any
	for {
		rec, readErr := rd.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			// Malformed rows are skipped, not fatal; dumps of this size
			// always carry a few.
			skipped++
			continue
		}

		values := make([]any, len(csvColumns))
		for i, col := range csvColumns {
			if idx, ok := colIndex[col]; ok && idx < len(rec) {
				values[i] = strings.TrimSpace(rec[idx])
			} else {
				values[i] = ""
			}
		}
		if values[0] == "" {
			skipped++
			continue
		}

		batch = append(batch, values)
		if len(batch) == ingestBatchSize {
			if err := s.flushBatch(ctx, batch); err != nil {
				return rows, skipped, err
			}
			rows += len(batch)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := s.flushBatch(ctx, batch); err != nil {
			return rows, skipped, err
		}
		rows += len(batch)
	}
	return rows, skipped, nil
}

func (s *Store) flushBatch(ctx context.Context, batch [][]any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.insertSQL())
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, values := range batch {
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return fmt.Errorf("inserting paper %v: %w", values[0], err)
		}
	}
	return tx.Commit()
}

// insertSQL returns the duplicate-tolerant insert for the active driver:
// placeholder style and conflict syntax differ between PostgreSQL and SQLite.
func (s *Store) insertSQL() string {
	cols := strings.Join(csvColumns, ", ")
	if s.driver == "pgx" {
		marks := make([]string, len(csvColumns))
		for i := range marks {
			marks[i] = fmt.Sprintf("$%d", i+1)
		}
		return fmt.Sprintf("INSERT INTO papers (%s) VALUES (%s) ON CONFLICT (id) DO NOTHING",
			cols, strings.Join(marks, ", "))
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(csvColumns)), ", ")
	return fmt.Sprintf("INSERT OR IGNORE INTO papers (%s) VALUES (%s)", cols, marks)
}
