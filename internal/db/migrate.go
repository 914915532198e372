package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// duplicates are tolerated since the list re-runs on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Year-scoped issuance counters. seq holds the last issued sequence for
	// the year; the allocator increments it atomically.
	`CREATE TABLE IF NOT EXISTS year_counters (
		year TEXT PRIMARY KEY,
		seq  INTEGER NOT NULL DEFAULT 0 CHECK(seq >= 0)
	)`,

	// Quotes. Queryable header fields are columns; the full document and its
	// committed base snapshot are stored as JSON. (year, seq) is unique for
	// the life of the table, which backs the no-reuse invariant.
	`CREATE TABLE IF NOT EXISTS quotes (
		id          TEXT PRIMARY KEY,
		year        TEXT NOT NULL,
		seq         INTEGER NOT NULL CHECK(seq > 0),
		sub_seq     INTEGER NOT NULL DEFAULT 1 CHECK(sub_seq > 0),
		quote_no    TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'draft'
		            CHECK(status IN ('draft','revised','ready')),
		title       TEXT NOT NULL DEFAULT '',
		client      TEXT NOT NULL DEFAULT '',
		owner       TEXT NOT NULL DEFAULT '',
		model_raw   TEXT NOT NULL DEFAULT '',
		grand_total INTEGER NOT NULL DEFAULT 0,
		doc         TEXT NOT NULL,
		base_doc    TEXT NOT NULL,
		embedding   TEXT,
		pdf_path    TEXT NOT NULL DEFAULT '',
		png_path    TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		UNIQUE(year, seq)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_quotes_status ON quotes(status)`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_created ON quotes(created_at)`,

	// Applied patch log since the last committed base, replayed for undo.
	`CREATE TABLE IF NOT EXISTS quote_patches (
		quote_id   TEXT NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
		idx        INTEGER NOT NULL CHECK(idx >= 0),
		ops        TEXT NOT NULL,
		applied_at TEXT NOT NULL,
		PRIMARY KEY (quote_id, idx)
	)`,
}
