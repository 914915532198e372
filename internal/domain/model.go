package domain

// ModelAttrs holds the structured attributes parsed from a raw catalog key
// such as "골프장명(25.00.00)_G2_전자유도_VIP 4인승_액상". Parsing is total:
// unknown tokens fall back to defaults, so every field may carry its zero
// value except Series and Raw.
type ModelAttrs struct {
	CourseName string      `json:"courseName"`
	Date       string      `json:"date"`
	Series     Series      `json:"series"`
	Deck       DeckType    `json:"deck,omitempty"`
	Seats      int         `json:"seats,omitempty"`
	SeatLabel  string      `json:"seatLabel,omitempty"`
	Battery    BatteryType `json:"battery,omitempty"`
	Variant    string      `json:"variant,omitempty"`

	// Raw is the original catalog key, kept for traceability and re-parsing.
	Raw string `json:"raw"`
}
