package catalog

import (
	"fmt"
	"time"

	"github.com/danielokim/quotekit/internal/domain"
)

const defaultNotes = "※ 상기 금액은 예시 단가입니다. 실제 견적은 프로젝트 조건에 따라 변동될 수 있습니다."

// BuildBaseQuote constructs the initial quote for a parsed model: a vehicle
// line priced from the book, a battery line, and a variant surcharge line
// when the model carries one. The result is recomputed before return; the
// caller assigns the ID and quote number.
func BuildBaseQuote(m domain.ModelAttrs, pb PriceBook, now time.Time) domain.Quote {
	vehicleLabel := fmt.Sprintf("%s 기본차량", m.Series)
	if m.Deck != "" {
		vehicleLabel = fmt.Sprintf("%s (%s)", vehicleLabel, m.Deck.Label())
	}
	batteryLabel := "배터리 선택"
	if m.Battery != "" {
		batteryLabel = "배터리 " + m.Battery.Label()
	}

	items := []domain.LineItem{
		{ID: "vehicle", Label: vehicleLabel, Qty: 1, UnitPrice: pb.BasePrice(m)},
		{ID: "battery", Label: batteryLabel, Qty: 1, UnitPrice: pb.BatteryPriceFor(m)},
	}
	if m.Variant != "" {
		items = append(items, domain.LineItem{
			ID: "variant", Label: "옵션: " + m.Variant, Qty: 1, UnitPrice: pb.VariantSurcharge,
		})
	}

	q := domain.Quote{
		Title:     fmt.Sprintf("%s %s 견적서", m.CourseName, m.Series),
		Model:     m,
		Items:     items,
		VATRate:   pb.VATRate,
		Notes:     defaultNotes,
		Revision:  1,
		Status:    domain.StatusDraft,
		CreatedAt: now,
	}
	return q.Recompute(now)
}
