package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielokim/quotekit/internal/db"
	"github.com/danielokim/quotekit/internal/domain"
)

// SQLiteQuoteRepo implements QuoteRepo over SQLite. It accepts a DBTX so the
// same implementation serves both plain access and tx-scoped composition
// with the counter repo.
type SQLiteQuoteRepo struct {
	db db.DBTX
}

func NewSQLiteQuoteRepo(conn db.DBTX) *SQLiteQuoteRepo {
	return &SQLiteQuoteRepo{db: conn}
}

func (r *SQLiteQuoteRepo) Create(ctx context.Context, q *domain.Quote) error {
	if q.Number == nil {
		return fmt.Errorf("creating quote: quote number is required")
	}
	doc, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encoding quote document: %w", err)
	}

	query := `INSERT INTO quotes (id, year, seq, sub_seq, quote_no, status, title, client, owner,
			model_raw, grand_total, doc, base_doc, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		q.ID,
		q.Number.Year,
		q.Number.Seq,
		q.Number.Sub,
		q.Number.String(),
		string(q.Status),
		q.Title,
		q.Client,
		q.Owner,
		q.Model.Raw,
		q.GrandTotal,
		string(doc),
		string(doc), // the freshly created document is its own base
		q.CreatedAt.UTC().Format(time.RFC3339),
		q.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting quote: %w", asConflict(err))
	}
	return nil
}

func (r *SQLiteQuoteRepo) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	row := r.db.QueryRowContext(ctx, `SELECT doc FROM quotes WHERE id = ?`, id)
	return scanDoc(row, "quote")
}

func (r *SQLiteQuoteRepo) GetByQuoteNo(ctx context.Context, quoteNo string) (*domain.Quote, error) {
	row := r.db.QueryRowContext(ctx, `SELECT doc FROM quotes WHERE quote_no = ?`, quoteNo)
	return scanDoc(row, "quote")
}

func (r *SQLiteQuoteRepo) GetBase(ctx context.Context, id string) (*domain.Quote, error) {
	row := r.db.QueryRowContext(ctx, `SELECT base_doc FROM quotes WHERE id = ?`, id)
	return scanDoc(row, "quote base")
}

func (r *SQLiteQuoteRepo) List(ctx context.Context, limit int) ([]QuoteSummary, error) {
	query := `SELECT id, quote_no, status, title, client, model_raw, grand_total, created_at, updated_at
		FROM quotes ORDER BY created_at DESC, quote_no DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}
	defer rows.Close()

	var summaries []QuoteSummary
	for rows.Next() {
		var s QuoteSummary
		var statusStr, createdStr, updatedStr string
		if err := rows.Scan(&s.ID, &s.QuoteNo, &statusStr, &s.Title, &s.Client,
			&s.ModelRaw, &s.GrandTotal, &createdStr, &updatedStr); err != nil {
			return nil, fmt.Errorf("scanning quote summary: %w", err)
		}
		s.Status = domain.Status(statusStr)
		if s.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if s.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quotes: %w", err)
	}
	return summaries, nil
}

// Update persists the full document and resyncs the queryable columns.
// The base snapshot is untouched.
func (r *SQLiteQuoteRepo) Update(ctx context.Context, q *domain.Quote) error {
	doc, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encoding quote document: %w", err)
	}
	quoteNo := ""
	subSeq := 1
	if q.Number != nil {
		quoteNo = q.Number.String()
		subSeq = q.Number.Sub
	}

	query := `UPDATE quotes SET sub_seq = ?, quote_no = ?, status = ?, title = ?, client = ?,
			owner = ?, model_raw = ?, grand_total = ?, doc = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		subSeq,
		quoteNo,
		string(q.Status),
		q.Title,
		q.Client,
		q.Owner,
		q.Model.Raw,
		q.GrandTotal,
		string(doc),
		q.UpdatedAt.UTC().Format(time.RFC3339),
		q.ID,
	)
	if err != nil {
		return fmt.Errorf("updating quote: %w", asConflict(err))
	}
	return requireRow(res, "quote")
}

func (r *SQLiteQuoteRepo) Rebase(ctx context.Context, q *domain.Quote) error {
	doc, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encoding base document: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `UPDATE quotes SET base_doc = ? WHERE id = ?`, string(doc), q.ID)
	if err != nil {
		return fmt.Errorf("rebasing quote: %w", asConflict(err))
	}
	return requireRow(res, "quote")
}

func (r *SQLiteQuoteRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}
	return requireRow(res, "quote")
}

func (r *SQLiteQuoteRepo) SetEmbedding(ctx context.Context, id string, vector []float64) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("encoding embedding: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `UPDATE quotes SET embedding = ? WHERE id = ?`, string(data), id)
	if err != nil {
		return fmt.Errorf("storing embedding: %w", asConflict(err))
	}
	return requireRow(res, "quote")
}

// ListEmbeddings returns the most recent embedded quotes, newest first.
// Quotes without an embedding are skipped.
func (r *SQLiteQuoteRepo) ListEmbeddings(ctx context.Context, limit int) ([]QuoteEmbedding, error) {
	query := `SELECT id, quote_no, client, model_raw, grand_total, created_at, embedding
		FROM quotes WHERE embedding IS NOT NULL
		ORDER BY created_at DESC, quote_no DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing embeddings: %w", err)
	}
	defer rows.Close()

	var records []QuoteEmbedding
	for rows.Next() {
		var rec QuoteEmbedding
		var createdStr, vecStr string
		if err := rows.Scan(&rec.QuoteID, &rec.QuoteNo, &rec.Client, &rec.ModelRaw,
			&rec.GrandTotal, &createdStr, &vecStr); err != nil {
			return nil, fmt.Errorf("scanning embedding row: %w", err)
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if err := json.Unmarshal([]byte(vecStr), &rec.Vector); err != nil {
			return nil, fmt.Errorf("decoding embedding vector: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating embeddings: %w", err)
	}
	return records, nil
}

// SetExportAssets persists the rendered asset paths together with the
// advanced status and refreshed document.
func (r *SQLiteQuoteRepo) SetExportAssets(ctx context.Context, q *domain.Quote) error {
	doc, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encoding quote document: %w", err)
	}
	query := `UPDATE quotes SET status = ?, pdf_path = ?, png_path = ?, doc = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(q.Status),
		q.PDFPath,
		q.PNGPath,
		string(doc),
		q.UpdatedAt.UTC().Format(time.RFC3339),
		q.ID,
	)
	if err != nil {
		return fmt.Errorf("storing export assets: %w", asConflict(err))
	}
	return requireRow(res, "quote")
}

func scanDoc(row *sql.Row, what string) (*domain.Quote, error) {
	var doc string
	if err := row.Scan(&doc); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", what, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning %s: %w", what, err)
	}
	var q domain.Quote
	if err := json.Unmarshal([]byte(doc), &q); err != nil {
		return nil, fmt.Errorf("decoding %s document: %w", what, err)
	}
	return &q, nil
}

func requireRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
