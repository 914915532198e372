package service

import (
	"context"
	"time"

	"github.com/danielokim/quotekit/internal/db"
	"github.com/danielokim/quotekit/internal/domain"
	"github.com/danielokim/quotekit/internal/patch"
	"github.com/danielokim/quotekit/internal/repository"
	"github.com/danielokim/quotekit/internal/similarity"
)

// NumberingService issues quote numbers and revisions.
type NumberingService interface {
	// IssueQuoteNumber allocates the next (year, sequence) pair for now's
	// year. It must run on the same transaction that persists the quote.
	IssueQuoteNumber(ctx context.Context, tx db.DBTX, now time.Time) (domain.QuoteNumber, error)

	// IssueRevision returns the next revision of an existing number. The
	// year counter is not involved.
	IssueRevision(existing domain.QuoteNumber) domain.QuoteNumber
}

// QuoteService covers the quote lifecycle from catalog pick to deletion.
type QuoteService interface {
	// CreateFromModel parses a raw catalog key, builds the priced base
	// quote, and persists it with a freshly issued number.
	CreateFromModel(ctx context.Context, rawModel string) (*domain.Quote, error)

	// Get resolves a quote by ID or by quote number string.
	Get(ctx context.Context, ref string) (*domain.Quote, error)
	List(ctx context.Context, limit int) ([]repository.QuoteSummary, error)

	// ApplyPatch applies the operations atomically, persists the result,
	// and appends the operations to the quote's patch log.
	ApplyPatch(ctx context.Context, id string, ops []patch.Operation) (*domain.Quote, error)

	// Undo removes the most recent patch and rebuilds the quote by
	// replaying the remaining log onto the base snapshot.
	Undo(ctx context.Context, id string) (*domain.Quote, error)

	// Reset clears the patch log and restores the base snapshot.
	Reset(ctx context.Context, id string) (*domain.Quote, error)

	// Revise bumps the quote's sub-sequence and marks it revised.
	Revise(ctx context.Context, id string) (*domain.Quote, error)

	Delete(ctx context.Context, id string) error
}

// ExportService renders a quote to its printable assets.
type ExportService interface {
	// Export renders the document, stores the asset paths, and advances
	// the quote to ready. A failed render leaves the quote untouched.
	Export(ctx context.Context, id string) (*domain.Quote, error)
}

// SimilarService searches stored quotes by semantic similarity.
type SimilarService interface {
	Search(ctx context.Context, query string, limit int) ([]similarity.Match, error)
}

// Embedder produces embedding vectors for similarity search. Satisfied by
// llm.Client.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}
