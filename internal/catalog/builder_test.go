package catalog

import (
	"testing"
	"time"

	"github.com/danielokim/quotekit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var buildNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestBuildBaseQuote_VehicleAndBatteryLines(t *testing.T) {
	m := ParseModel("골프장명(25.00.00)_G2_전자유도_5인승_리튬")

	q := BuildBaseQuote(m, DefaultPriceBook(), buildNow)

	require.Len(t, q.Items, 2)
	assert.Equal(t, "vehicle", q.Items[0].ID)
	assert.Contains(t, q.Items[0].Label, "G2 기본차량")
	assert.Contains(t, q.Items[0].Label, "전자유도")
	// 11,000,000 base + 3,000,000 guidance + 3 extra seats * 400,000.
	assert.Equal(t, int64(15_200_000), q.Items[0].UnitPrice)

	assert.Equal(t, "battery", q.Items[1].ID)
	assert.Equal(t, int64(2_000_000), q.Items[1].UnitPrice)

	assert.Equal(t, domain.StatusDraft, q.Status)
	assert.Equal(t, 1, q.Revision)
	assert.Equal(t, 0.1, q.VATRate)
}

func TestBuildBaseQuote_VariantLine(t *testing.T) {
	m := ParseModel("골프장명(25.00.00)_G2_전자유도_VIP 6인승_리튬")

	q := BuildBaseQuote(m, DefaultPriceBook(), buildNow)

	require.Len(t, q.Items, 3)
	assert.Equal(t, "variant", q.Items[2].ID)
	assert.Contains(t, q.Items[2].Label, "VIP 6인승")
	assert.Equal(t, int64(600_000), q.Items[2].UnitPrice)
}

func TestBuildBaseQuote_TotalsAreRecomputed(t *testing.T) {
	m := ParseModel("골프장명(25.00.00)_ST20_2인승_액상")

	q := BuildBaseQuote(m, DefaultPriceBook(), buildNow)

	var want int64
	for _, it := range q.Items {
		assert.Equal(t, it.Qty*it.UnitPrice, it.Total)
		want += it.Total
	}
	assert.Equal(t, want, q.Subtotal)
	assert.Equal(t, q.Subtotal+q.VAT, q.GrandTotal)
	assert.Equal(t, buildNow, q.UpdatedAt)
}

func TestBuildBaseQuote_UnselectedBattery(t *testing.T) {
	q := BuildBaseQuote(domain.ModelAttrs{Series: domain.SeriesG2}, DefaultPriceBook(), buildNow)

	require.Len(t, q.Items, 2)
	assert.Equal(t, "배터리 선택", q.Items[1].Label)
	assert.Zero(t, q.Items[1].UnitPrice)
}
