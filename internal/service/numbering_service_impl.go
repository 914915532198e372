package service

import (
	"context"
	"time"

	"github.com/danielokim/quotekit/internal/db"
	"github.com/danielokim/quotekit/internal/domain"
	"github.com/danielokim/quotekit/internal/repository"
)

type numberingService struct{}

func NewNumberingService() NumberingService {
	return &numberingService{}
}

func (s *numberingService) IssueQuoteNumber(ctx context.Context, tx db.DBTX, now time.Time) (domain.QuoteNumber, error) {
	year := domain.YearKey(now)
	seq, err := repository.NewSQLiteCounterRepo(tx).NextSequence(ctx, year)
	if err != nil {
		return domain.QuoteNumber{}, err
	}
	return domain.QuoteNumber{Year: year, Seq: seq, Sub: 1}, nil
}

func (s *numberingService) IssueRevision(existing domain.QuoteNumber) domain.QuoteNumber {
	return existing.NextRevision()
}
