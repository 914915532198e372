package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielokim/quotekit/internal/db"
	"github.com/danielokim/quotekit/internal/patch"
)

// SQLitePatchLogRepo stores the ordered log of patches applied to a quote
// since its last committed base. Undo replays a prefix of this log onto the
// base snapshot.
type SQLitePatchLogRepo struct {
	db db.DBTX
}

func NewSQLitePatchLogRepo(conn db.DBTX) *SQLitePatchLogRepo {
	return &SQLitePatchLogRepo{db: conn}
}

func (r *SQLitePatchLogRepo) Append(ctx context.Context, quoteID string, ops []patch.Operation, appliedAt time.Time) error {
	data, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("encoding patch ops: %w", err)
	}
	query := `INSERT INTO quote_patches (quote_id, idx, ops, applied_at)
		SELECT ?, COALESCE(MAX(idx), -1) + 1, ?, ?
		FROM quote_patches WHERE quote_id = ?`
	if _, err := r.db.ExecContext(ctx, query,
		quoteID, string(data), appliedAt.UTC().Format(time.RFC3339), quoteID); err != nil {
		return fmt.Errorf("appending patch log entry: %w", asConflict(err))
	}
	return nil
}

func (r *SQLitePatchLogRepo) List(ctx context.Context, quoteID string) ([][]patch.Operation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ops FROM quote_patches WHERE quote_id = ? ORDER BY idx`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("listing patch log: %w", err)
	}
	defer rows.Close()

	var patches [][]patch.Operation
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning patch log entry: %w", err)
		}
		var ops []patch.Operation
		if err := json.Unmarshal([]byte(data), &ops); err != nil {
			return nil, fmt.Errorf("decoding patch ops: %w", err)
		}
		patches = append(patches, ops)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating patch log: %w", err)
	}
	return patches, nil
}

func (r *SQLitePatchLogRepo) RemoveLast(ctx context.Context, quoteID string) error {
	query := `DELETE FROM quote_patches
		WHERE quote_id = ? AND idx = (SELECT MAX(idx) FROM quote_patches WHERE quote_id = ?)`
	res, err := r.db.ExecContext(ctx, query, quoteID, quoteID)
	if err != nil {
		return fmt.Errorf("removing last patch: %w", asConflict(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("patch log for quote %s: %w", quoteID, ErrNotFound)
	}
	return nil
}

func (r *SQLitePatchLogRepo) Clear(ctx context.Context, quoteID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quote_patches WHERE quote_id = ?`, quoteID); err != nil {
		return fmt.Errorf("clearing patch log: %w", asConflict(err))
	}
	return nil
}

var (
	_ PatchLogRepo = (*SQLitePatchLogRepo)(nil)
	_ QuoteRepo    = (*SQLiteQuoteRepo)(nil)
	_ CounterRepo  = (*SQLiteCounterRepo)(nil)
)
