package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/danielokim/quotekit/internal/repository"
	"github.com/danielokim/quotekit/internal/similarity"
)

const (
	// similarPoolSize bounds how many recent embedded quotes are ranked.
	similarPoolSize = 200
	defaultTopK     = 5
)

type similarService struct {
	quotes   repository.QuoteRepo
	embedder Embedder
	observer UseCaseObserver
	now      func() time.Time
}

func NewSimilarService(quotes repository.QuoteRepo, embedder Embedder, observers ...UseCaseObserver) SimilarService {
	return &similarService{
		quotes:   quotes,
		embedder: embedder,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *similarService) Search(ctx context.Context, query string, limit int) (matches []similarity.Match, err error) {
	start := s.now()
	defer func() {
		observe(ctx, s.observer, "quote_similar", start, err, map[string]any{"limit": limit})
	}()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if s.embedder == nil {
		return nil, errors.New("similarity search needs an embedding model; set QUOTEKIT_LLM_ENABLED=1")
	}
	if limit <= 0 {
		limit = defaultTopK
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	records, err := s.quotes.ListEmbeddings(ctx, similarPoolSize)
	if err != nil {
		return nil, err
	}

	candidates := make([]similarity.Candidate, 0, len(records))
	for _, rec := range records {
		candidates = append(candidates, similarity.Candidate{
			QuoteID:    rec.QuoteID,
			QuoteNo:    rec.QuoteNo,
			Client:     rec.Client,
			ModelRaw:   rec.ModelRaw,
			GrandTotal: rec.GrandTotal,
			CreatedAt:  rec.CreatedAt,
			Vector:     rec.Vector,
		})
	}
	return similarity.Rank(queryVec, candidates, limit), nil
}
