package domain

// Status is the lifecycle state of a quote. It advances draft -> revised ->
// ready and is only moved by explicit operations, never by recomputation.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusRevised Status = "revised"
	StatusReady   Status = "ready"
)

// ValidStatuses is the canonical set of accepted status strings.
var ValidStatuses = map[Status]bool{
	StatusDraft: true, StatusRevised: true, StatusReady: true,
}

type Series string

const (
	SeriesG2   Series = "G2"
	SeriesG3   Series = "G3"
	SeriesG20  Series = "G20"
	SeriesST20 Series = "ST20"
)

// ValidSeries is the canonical set of known product lines. SeriesG2 is the
// baseline default for unrecognized catalog keys.
var ValidSeries = map[Series]bool{
	SeriesG2: true, SeriesG3: true, SeriesG20: true, SeriesST20: true,
}

type DeckType string

const (
	DeckLong       DeckType = "long_deck"
	DeckShort      DeckType = "short_deck"
	DeckManual     DeckType = "manual"
	DeckElectronic DeckType = "electronic_guidance"
)

var ValidDeckTypes = map[DeckType]bool{
	DeckLong: true, DeckShort: true, DeckManual: true, DeckElectronic: true,
}

// Label returns the catalog display form of the deck type.
func (d DeckType) Label() string {
	switch d {
	case DeckLong:
		return "롱데크"
	case DeckShort:
		return "숏데크"
	case DeckManual:
		return "수동"
	case DeckElectronic:
		return "전자유도"
	default:
		return string(d)
	}
}

type BatteryType string

const (
	BatteryLithium BatteryType = "lithium"
	BatteryLiquid  BatteryType = "liquid"
	BatteryNone    BatteryType = "none_included"
)

var ValidBatteryTypes = map[BatteryType]bool{
	BatteryLithium: true, BatteryLiquid: true, BatteryNone: true,
}

// Label returns the catalog display form of the battery type.
func (b BatteryType) Label() string {
	switch b {
	case BatteryLithium:
		return "리튬"
	case BatteryLiquid:
		return "액상"
	case BatteryNone:
		return "배터리 미포함"
	default:
		return string(b)
	}
}
