package catalog

import (
	"fmt"
	"os"

	"github.com/danielokim/quotekit/internal/domain"
	"gopkg.in/yaml.v3"
)

// PriceBook is the configuration data behind base-quote construction: series
// base prices, surcharges and the VAT rate. It is injected into the builder,
// never hard-coded in the pricing logic. All amounts are whole won.
type PriceBook struct {
	SeriesBase          map[domain.Series]int64      `yaml:"series_base"`
	DefaultBase         int64                        `yaml:"default_base"`
	LongDeckSurcharge   int64                        `yaml:"long_deck_surcharge"`
	ElectronicSurcharge int64                        `yaml:"electronic_guidance_surcharge"`
	SeatSurcharge       int64                        `yaml:"seat_surcharge"`
	IncludedSeats       int                          `yaml:"included_seats"`
	BatteryPrice        map[domain.BatteryType]int64 `yaml:"battery_price"`
	VariantSurcharge    int64                        `yaml:"variant_surcharge"`
	VATRate             float64                      `yaml:"vat_rate"`
}

// DefaultPriceBook returns the built-in price table.
func DefaultPriceBook() PriceBook {
	return PriceBook{
		SeriesBase: map[domain.Series]int64{
			domain.SeriesG2:   11_000_000,
			domain.SeriesG3:   13_000_000,
			domain.SeriesG20:  9_000_000,
			domain.SeriesST20: 8_500_000,
		},
		DefaultBase:         10_000_000,
		LongDeckSurcharge:   500_000,
		ElectronicSurcharge: 3_000_000,
		SeatSurcharge:       400_000,
		IncludedSeats:       2,
		BatteryPrice: map[domain.BatteryType]int64{
			domain.BatteryLithium: 2_000_000,
			domain.BatteryLiquid:  1_000_000,
			domain.BatteryNone:    0,
		},
		VariantSurcharge: 600_000,
		VATRate:          0.1,
	}
}

// LoadPriceBook reads a YAML price book from path. Fields absent from the
// file keep their default values.
func LoadPriceBook(path string) (PriceBook, error) {
	pb := DefaultPriceBook()
	data, err := os.ReadFile(path)
	if err != nil {
		return pb, fmt.Errorf("reading price book: %w", err)
	}
	if err := yaml.Unmarshal(data, &pb); err != nil {
		return pb, fmt.Errorf("parsing price book: %w", err)
	}
	if pb.VATRate < 0 || pb.VATRate > 1 {
		return pb, fmt.Errorf("price book vat_rate %v outside [0,1]", pb.VATRate)
	}
	return pb, nil
}

// BasePrice returns the vehicle base price for the model: series base
// adjusted by deck surcharge and per-seat-above-included surcharge.
func (pb PriceBook) BasePrice(m domain.ModelAttrs) int64 {
	base, ok := pb.SeriesBase[m.Series]
	if !ok {
		base = pb.DefaultBase
	}
	switch m.Deck {
	case domain.DeckLong:
		base += pb.LongDeckSurcharge
	case domain.DeckElectronic:
		base += pb.ElectronicSurcharge
	}
	if m.Seats > pb.IncludedSeats {
		base += int64(m.Seats-pb.IncludedSeats) * pb.SeatSurcharge
	}
	return base
}

// BatteryPriceFor returns the flat battery line price for the model.
// Unset battery types price at zero.
func (pb PriceBook) BatteryPriceFor(m domain.ModelAttrs) int64 {
	return pb.BatteryPrice[m.Battery]
}
