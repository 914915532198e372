package service

import (
	"context"
	"time"

	"github.com/danielokim/quotekit/internal/domain"
	"github.com/danielokim/quotekit/internal/render"
	"github.com/danielokim/quotekit/internal/repository"
)

type exportService struct {
	quotes   repository.QuoteRepo
	renderer render.Renderer
	observer UseCaseObserver
	now      func() time.Time
}

func NewExportService(quotes repository.QuoteRepo, renderer render.Renderer, observers ...UseCaseObserver) ExportService {
	return &exportService{
		quotes:   quotes,
		renderer: renderer,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *exportService) Export(ctx context.Context, id string) (q *domain.Quote, err error) {
	start := s.now()
	defer func() {
		observe(ctx, s.observer, "quote_export", start, err, map[string]any{"quote_id": id})
	}()

	current, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Render before touching state. A failed render leaves the quote in
	// its current status with its existing assets.
	assets, err := s.renderer.Render(ctx, current)
	if err != nil {
		return nil, err
	}

	exported := current.Clone()
	exported.Status = domain.StatusReady
	exported.PDFPath = assets.PDFPath
	exported.PNGPath = assets.PNGPath
	exported.UpdatedAt = s.now()
	if err = s.quotes.SetExportAssets(ctx, &exported); err != nil {
		return nil, err
	}
	return &exported, nil
}
