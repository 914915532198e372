package repository

import (
	"context"
	"fmt"

	"github.com/danielokim/quotekit/internal/db"
)

// SQLiteCounterRepo allocates year-scoped quote sequence values from the
// year_counters table. Allocation is a single read-modify-write statement,
// so concurrent callers never observe the same value.
type SQLiteCounterRepo struct {
	db db.DBTX
}

func NewSQLiteCounterRepo(conn db.DBTX) *SQLiteCounterRepo {
	return &SQLiteCounterRepo{db: conn}
}

func (r *SQLiteCounterRepo) NextSequence(ctx context.Context, year string) (int, error) {
	seedQuery := `INSERT OR IGNORE INTO year_counters (year, seq) VALUES (?, 0)`
	if _, err := r.db.ExecContext(ctx, seedQuery, year); err != nil {
		return 0, fmt.Errorf("seeding counter for year %s: %w", year, asConflict(err))
	}

	var next int
	allocQuery := `UPDATE year_counters
		SET seq = seq + 1
		WHERE year = ?
		RETURNING seq`
	if err := r.db.QueryRowContext(ctx, allocQuery, year).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating sequence for year %s: %w", year, asConflict(err))
	}

	return next, nil
}
