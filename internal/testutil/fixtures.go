package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/danielokim/quotekit/internal/domain"
)

// FixedTime is a stable timestamp for deterministic fixtures.
var FixedTime = time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

// NewTestQuote builds a numbered draft quote ready for persistence tests.
func NewTestQuote(year string, seq int) *domain.Quote {
	q := domain.Quote{
		ID:     uuid.New().String(),
		Title:  "레이크사이드CC G2 견적서",
		Client: "레이크사이드CC",
		Owner:  "김부장",
		Model: domain.ModelAttrs{
			CourseName: "레이크사이드CC",
			Date:       "25.01.01",
			Series:     domain.SeriesG2,
			Deck:       domain.DeckElectronic,
			Seats:      5,
			Battery:    domain.BatteryLithium,
			Raw:        "레이크사이드CC(25.01.01)_G2_전자유도_5인승_리튬",
		},
		Items: []domain.LineItem{
			{ID: uuid.New().String(), Label: "G2 기본차량 (전자유도)", Qty: 2, UnitPrice: 15_200_000},
			{ID: uuid.New().String(), Label: "배터리 리튬", Qty: 2, UnitPrice: 2_000_000},
		},
		VATRate:   0.1,
		Revision:  1,
		Number:    &domain.QuoteNumber{Year: year, Seq: seq, Sub: 1},
		Status:    domain.StatusDraft,
		CreatedAt: FixedTime,
	}
	out := q.Recompute(FixedTime)
	return &out
}
