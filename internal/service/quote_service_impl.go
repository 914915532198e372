package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielokim/quotekit/internal/catalog"
	"github.com/danielokim/quotekit/internal/db"
	"github.com/danielokim/quotekit/internal/domain"
	"github.com/danielokim/quotekit/internal/patch"
	"github.com/danielokim/quotekit/internal/repository"
	"github.com/danielokim/quotekit/internal/similarity"
)

type quoteService struct {
	quotes    repository.QuoteRepo
	patches   repository.PatchLogRepo
	uow       db.UnitOfWork
	numbering NumberingService
	priceBook catalog.PriceBook
	embedder  Embedder // nil disables embedding refresh
	observer  UseCaseObserver
	now       func() time.Time
}

func NewQuoteService(
	quotes repository.QuoteRepo,
	patches repository.PatchLogRepo,
	uow db.UnitOfWork,
	numbering NumberingService,
	priceBook catalog.PriceBook,
	embedder Embedder,
	observers ...UseCaseObserver,
) QuoteService {
	return &quoteService{
		quotes:    quotes,
		patches:   patches,
		uow:       uow,
		numbering: numbering,
		priceBook: priceBook,
		embedder:  embedder,
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *quoteService) CreateFromModel(ctx context.Context, rawModel string) (q *domain.Quote, err error) {
	start := s.now()
	defer func() {
		observe(ctx, s.observer, "quote_create", start, err, map[string]any{"model": rawModel})
	}()

	attrs := catalog.ParseModel(rawModel)
	built := catalog.BuildBaseQuote(attrs, s.priceBook, s.now())
	built.ID = uuid.New().String()

	// Counter increment and quote insert commit together, so an aborted
	// create never burns a sequence value.
	err = withConflictRetry(ctx, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			number, err := s.numbering.IssueQuoteNumber(ctx, tx, built.CreatedAt)
			if err != nil {
				return err
			}
			built.Number = &number
			return repository.NewSQLiteQuoteRepo(tx).Create(ctx, &built)
		})
	})
	if err != nil {
		return nil, err
	}

	s.refreshEmbedding(ctx, &built)
	return &built, nil
}

// Get accepts either a quote ID or a quote number such as "25-672-1".
func (s *quoteService) Get(ctx context.Context, ref string) (*domain.Quote, error) {
	if looksLikeQuoteNo(ref) {
		return s.quotes.GetByQuoteNo(ctx, ref)
	}
	return s.quotes.GetByID(ctx, ref)
}

func (s *quoteService) List(ctx context.Context, limit int) ([]repository.QuoteSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.quotes.List(ctx, limit)
}

func (s *quoteService) ApplyPatch(ctx context.Context, id string, ops []patch.Operation) (q *domain.Quote, err error) {
	start := s.now()
	defer func() {
		observe(ctx, s.observer, "quote_patch", start, err, map[string]any{"quote_id": id, "ops": len(ops)})
	}()

	var next domain.Quote
	err = withConflictRetry(ctx, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txQuotes := repository.NewSQLiteQuoteRepo(tx)

			current, err := txQuotes.GetByID(ctx, id)
			if err != nil {
				return err
			}
			next, err = patch.Apply(*current, ops, s.now())
			if err != nil {
				return err
			}
			if err := txQuotes.Update(ctx, &next); err != nil {
				return err
			}
			return repository.NewSQLitePatchLogRepo(tx).Append(ctx, id, ops, next.UpdatedAt)
		})
	})
	if err != nil {
		return nil, err
	}

	s.refreshEmbedding(ctx, &next)
	return &next, nil
}

func (s *quoteService) Undo(ctx context.Context, id string) (q *domain.Quote, err error) {
	var replayed domain.Quote
	err = withConflictRetry(ctx, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txQuotes := repository.NewSQLiteQuoteRepo(tx)
			txPatches := repository.NewSQLitePatchLogRepo(tx)

			if err := txPatches.RemoveLast(ctx, id); err != nil {
				return err
			}
			remaining, err := txPatches.List(ctx, id)
			if err != nil {
				return err
			}
			current, err := txQuotes.GetByID(ctx, id)
			if err != nil {
				return err
			}
			base, err := txQuotes.GetBase(ctx, id)
			if err != nil {
				return err
			}
			replayed, err = patch.Replay(*base, remaining, s.now())
			if err != nil {
				return err
			}
			restoreIdentity(&replayed, current)
			return txQuotes.Update(ctx, &replayed)
		})
	})
	if err != nil {
		return nil, err
	}

	s.refreshEmbedding(ctx, &replayed)
	return &replayed, nil
}

func (s *quoteService) Reset(ctx context.Context, id string) (q *domain.Quote, err error) {
	var restored domain.Quote
	err = withConflictRetry(ctx, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txQuotes := repository.NewSQLiteQuoteRepo(tx)

			if err := repository.NewSQLitePatchLogRepo(tx).Clear(ctx, id); err != nil {
				return err
			}
			current, err := txQuotes.GetByID(ctx, id)
			if err != nil {
				return err
			}
			base, err := txQuotes.GetBase(ctx, id)
			if err != nil {
				return err
			}
			restored = base.Recompute(s.now())
			restoreIdentity(&restored, current)
			return txQuotes.Update(ctx, &restored)
		})
	})
	if err != nil {
		return nil, err
	}

	s.refreshEmbedding(ctx, &restored)
	return &restored, nil
}

func (s *quoteService) Revise(ctx context.Context, id string) (q *domain.Quote, err error) {
	start := s.now()
	defer func() {
		observe(ctx, s.observer, "quote_revise", start, err, map[string]any{"quote_id": id})
	}()

	var revised domain.Quote
	err = withConflictRetry(ctx, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txQuotes := repository.NewSQLiteQuoteRepo(tx)

			current, err := txQuotes.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if current.Number == nil {
				return repository.ErrNotFound
			}

			revised = current.Clone()
			number := s.numbering.IssueRevision(*current.Number)
			revised.Number = &number
			revised.Revision = number.Sub
			revised.Status = domain.StatusRevised
			revised.UpdatedAt = s.now()
			return txQuotes.Update(ctx, &revised)
		})
	})
	if err != nil {
		return nil, err
	}
	return &revised, nil
}

func (s *quoteService) Delete(ctx context.Context, id string) error {
	return s.quotes.Delete(ctx, id)
}

// restoreIdentity carries the issued number, revision state and export
// assets of the live quote onto a document rebuilt from the base snapshot.
// Replay reverts edits, never numbering or lifecycle.
func restoreIdentity(rebuilt, current *domain.Quote) {
	rebuilt.ID = current.ID
	rebuilt.Number = current.Number
	rebuilt.Revision = current.Revision
	rebuilt.Status = current.Status
	rebuilt.PDFPath = current.PDFPath
	rebuilt.PNGPath = current.PNGPath
	rebuilt.CreatedAt = current.CreatedAt
}

// refreshEmbedding keeps the stored vector in step with the document. It is
// best effort: a failed embedding never fails the write that triggered it.
func (s *quoteService) refreshEmbedding(ctx context.Context, q *domain.Quote) {
	if s.embedder == nil {
		return
	}
	start := s.now()
	vec, err := s.embedder.Embed(ctx, similarity.CanonicalText(q))
	if err == nil {
		err = s.quotes.SetEmbedding(ctx, q.ID, vec)
	}
	observe(ctx, s.observer, "quote_embed", start, err, map[string]any{"quote_id": q.ID})
}

// looksLikeQuoteNo reports whether ref has the yy-seq-sub shape.
func looksLikeQuoteNo(ref string) bool {
	parts := strings.Split(ref, "-")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
