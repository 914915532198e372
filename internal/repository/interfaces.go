package repository

import (
	"context"
	"time"

	"github.com/danielokim/quotekit/internal/domain"
	"github.com/danielokim/quotekit/internal/patch"
)

// QuoteSummary is the column-backed listing view of a quote, used where the
// full document is not needed.
type QuoteSummary struct {
	ID         string
	QuoteNo    string
	Status     domain.Status
	Title      string
	Client     string
	ModelRaw   string
	GrandTotal int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// QuoteEmbedding pairs a stored quote's header with its embedding vector for
// similarity ranking.
type QuoteEmbedding struct {
	QuoteID    string
	QuoteNo    string
	Client     string
	ModelRaw   string
	GrandTotal int64
	CreatedAt  time.Time
	Vector     []float64
}

type CounterRepo interface {
	// NextSequence atomically allocates the next sequence value for the
	// given year key. Must run against a tx-scoped DBTX when composed with
	// other writes.
	NextSequence(ctx context.Context, year string) (int, error)
}

type QuoteRepo interface {
	Create(ctx context.Context, q *domain.Quote) error
	GetByID(ctx context.Context, id string) (*domain.Quote, error)
	GetByQuoteNo(ctx context.Context, quoteNo string) (*domain.Quote, error)
	List(ctx context.Context, limit int) ([]QuoteSummary, error)
	Update(ctx context.Context, q *domain.Quote) error
	Delete(ctx context.Context, id string) error

	// GetBase returns the committed base snapshot used for undo replay.
	GetBase(ctx context.Context, id string) (*domain.Quote, error)
	// Rebase replaces the base snapshot with the quote's current document.
	Rebase(ctx context.Context, q *domain.Quote) error

	SetEmbedding(ctx context.Context, id string, vector []float64) error
	ListEmbeddings(ctx context.Context, limit int) ([]QuoteEmbedding, error)
	SetExportAssets(ctx context.Context, q *domain.Quote) error
}

type PatchLogRepo interface {
	Append(ctx context.Context, quoteID string, ops []patch.Operation, appliedAt time.Time) error
	List(ctx context.Context, quoteID string) ([][]patch.Operation, error)
	// RemoveLast drops the most recent entry; it reports ErrNotFound when
	// the log is empty.
	RemoveLast(ctx context.Context, quoteID string) error
	Clear(ctx context.Context, quoteID string) error
}
