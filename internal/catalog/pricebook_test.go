package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danielokim/quotekit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceBook_BasePrice(t *testing.T) {
	pb := DefaultPriceBook()

	tests := []struct {
		name string
		m    domain.ModelAttrs
		want int64
	}{
		{
			name: "series base only",
			m:    domain.ModelAttrs{Series: domain.SeriesG20, Seats: 2},
			want: 9_000_000,
		},
		{
			name: "long deck surcharge",
			m:    domain.ModelAttrs{Series: domain.SeriesG2, Deck: domain.DeckLong, Seats: 2},
			want: 11_500_000,
		},
		{
			name: "electronic guidance surcharge",
			m:    domain.ModelAttrs{Series: domain.SeriesG2, Deck: domain.DeckElectronic, Seats: 2},
			want: 14_000_000,
		},
		{
			name: "per-seat surcharge above two",
			m:    domain.ModelAttrs{Series: domain.SeriesG2, Deck: domain.DeckManual, Seats: 5},
			want: 11_000_000 + 3*400_000,
		},
		{
			name: "unknown series falls back to default base",
			m:    domain.ModelAttrs{Series: domain.Series("GX"), Seats: 2},
			want: 10_000_000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pb.BasePrice(tt.m))
		})
	}
}

func TestPriceBook_BatteryPriceFor(t *testing.T) {
	pb := DefaultPriceBook()

	assert.Equal(t, int64(2_000_000), pb.BatteryPriceFor(domain.ModelAttrs{Battery: domain.BatteryLithium}))
	assert.Equal(t, int64(1_000_000), pb.BatteryPriceFor(domain.ModelAttrs{Battery: domain.BatteryLiquid}))
	assert.Zero(t, pb.BatteryPriceFor(domain.ModelAttrs{Battery: domain.BatteryNone}))
	assert.Zero(t, pb.BatteryPriceFor(domain.ModelAttrs{}))
}

func TestLoadPriceBook_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricebook.yaml")
	content := `
series_base:
  G2: 12000000
vat_rate: 0.2
variant_surcharge: 700000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	pb, err := LoadPriceBook(path)
	require.NoError(t, err)

	assert.Equal(t, int64(12_000_000), pb.SeriesBase[domain.SeriesG2])
	assert.Equal(t, 0.2, pb.VATRate)
	assert.Equal(t, int64(700_000), pb.VariantSurcharge)
	// Untouched fields keep defaults.
	assert.Equal(t, int64(3_000_000), pb.ElectronicSurcharge)
	assert.Equal(t, 2, pb.IncludedSeats)
}

func TestLoadPriceBook_MissingFileKeepsDefaults(t *testing.T) {
	pb, err := LoadPriceBook(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
	assert.Equal(t, DefaultPriceBook(), pb)
}

func TestLoadPriceBook_RejectsBadVATRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricebook.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vat_rate: 1.5\n"), 0o644))

	_, err := LoadPriceBook(path)
	assert.ErrorContains(t, err, "vat_rate")
}
