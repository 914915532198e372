package catalog

import (
	"testing"

	"github.com/danielokim/quotekit/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseModel_FullKey(t *testing.T) {
	m := ParseModel("골프장명(25.01.01)_G2_전자유도_VIP 4인승_액상")

	assert.Equal(t, "골프장명", m.CourseName)
	assert.Equal(t, "25.01.01", m.Date)
	assert.Equal(t, domain.SeriesG2, m.Series)
	assert.Equal(t, domain.DeckElectronic, m.Deck)
	assert.Equal(t, 4, m.Seats)
	assert.Equal(t, "VIP 4인승", m.SeatLabel)
	assert.Equal(t, domain.BatteryLiquid, m.Battery)
	assert.Contains(t, m.Variant, "VIP 4")
	assert.Equal(t, "골프장명(25.01.01)_G2_전자유도_VIP 4인승_액상", m.Raw)
}

func TestParseModel_GarbageYieldsDefaults(t *testing.T) {
	m := ParseModel("garbage")

	assert.Equal(t, domain.SeriesG2, m.Series)
	assert.Empty(t, m.CourseName)
	assert.Empty(t, m.Date)
	assert.Equal(t, domain.DeckType(""), m.Deck)
	assert.Zero(t, m.Seats)
	assert.Equal(t, domain.BatteryType(""), m.Battery)
	assert.Equal(t, "garbage", m.Raw)
}

func TestParseModel_DeckPriority(t *testing.T) {
	// An electronic-guidance key that also mentions another deck token must
	// resolve as electronic guidance.
	m := ParseModel("코스(25.00.00)_G2_전자유도 롱데크_5인승_리튬")
	assert.Equal(t, domain.DeckElectronic, m.Deck)

	m = ParseModel("코스(25.00.00)_G2_수동_5인승_리튬")
	assert.Equal(t, domain.DeckManual, m.Deck)

	m = ParseModel("코스(25.00.00)_G2_숏데크_5인승_리튬")
	assert.Equal(t, domain.DeckShort, m.Deck)
}

func TestParseModel_SemiSeatsWithSubVariantTag(t *testing.T) {
	m := ParseModel("골프장명(25.00.00)_G2_전자유도_세미 6인승(T1)_리튬")

	assert.Equal(t, 6, m.Seats)
	assert.Equal(t, "세미 6인승(T1)", m.SeatLabel)
	assert.Equal(t, "세미 6인승(T1)", m.Variant)
	assert.Equal(t, domain.BatteryLithium, m.Battery)
}

func TestParseModel_PlainSeats(t *testing.T) {
	m := ParseModel("골프장명(25.00.00)_G2_수동_8인승_리튬")

	assert.Equal(t, 8, m.Seats)
	assert.Equal(t, "8인승", m.SeatLabel)
	assert.Empty(t, m.Variant)
}

func TestParseModel_ReverseFacingVariant(t *testing.T) {
	m := ParseModel("골프장명(25.00.00)_G2_수동_5인승 역방향_리튬")

	assert.Equal(t, 5, m.Seats)
	assert.Equal(t, "역방향", m.Variant)
}

func TestParseModel_SeriesExtraction(t *testing.T) {
	cases := map[string]domain.Series{
		"골프장명(25.00.00)_G3_롱데크_2인승_리튬": domain.SeriesG3,
		"골프장명(25.00.00)_G20_2인승_리튬":    domain.SeriesG20,
		"골프장명(25.00.00)_ST20_2인승_액상":   domain.SeriesST20,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseModel(raw).Series, raw)
	}
}

func TestParseModel_BatteryNoneIncluded(t *testing.T) {
	m := ParseModel("골프장명(25.00.00)_G2_전자유도_5인승_배터리 미포함")
	assert.Equal(t, domain.BatteryNone, m.Battery)
}

func TestParseModel_DeterministicOverCatalog(t *testing.T) {
	for _, raw := range RawModels {
		first := ParseModel(raw)
		second := ParseModel(raw)
		assert.Equal(t, first, second, raw)
		assert.Equal(t, raw, first.Raw)
	}
}
