package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/danielokim/quotekit/internal/domain"
)

var (
	coursePattern   = regexp.MustCompile(`^(.*?)\(([^)]+)\)`)
	seriesPattern   = regexp.MustCompile(`_(G2|G3|G20|ST20)_`)
	vipSeatPattern  = regexp.MustCompile(`VIP\s*(\d+)인승`)
	semiSeatPattern = regexp.MustCompile(`세미\s*(\d+)인승\((T\d)\)`)
	// Plain seat counts are anchored to an underscore so labeled variants
	// (VIP/세미) don't double-match; a trailing ')' is excluded manually
	// below since RE2 has no lookahead.
	plainSeatPattern = regexp.MustCompile(`_(\d+)인승`)
)

// ParseModel extracts structured attributes from a raw catalog key such as
// "골프장명(25.00.00)_G2_전자유도_VIP 4인승_액상". It is pure and total: any
// input produces some ModelAttrs. Unrecognized series default to G2; deck,
// seats and battery are left unset when no token matches.
func ParseModel(raw string) domain.ModelAttrs {
	attrs := domain.ModelAttrs{Series: domain.SeriesG2, Raw: raw}

	if m := coursePattern.FindStringSubmatch(raw); m != nil {
		attrs.CourseName = strings.TrimSpace(m[1])
		attrs.Date = m[2]
	}

	if m := seriesPattern.FindStringSubmatch(raw); m != nil {
		attrs.Series = domain.Series(m[1])
	}

	// Deck type priority matters: electronic-guidance keys may incidentally
	// contain other deck substrings.
	switch {
	case strings.Contains(raw, "전자유도"):
		attrs.Deck = domain.DeckElectronic
	case strings.Contains(raw, "수동"):
		attrs.Deck = domain.DeckManual
	case strings.Contains(raw, "롱데크"):
		attrs.Deck = domain.DeckLong
	case strings.Contains(raw, "숏데크"):
		attrs.Deck = domain.DeckShort
	}

	attrs.Seats, attrs.SeatLabel = parseSeats(raw)

	switch {
	case strings.Contains(raw, "리튬"):
		attrs.Battery = domain.BatteryLithium
	case strings.Contains(raw, "액상"):
		attrs.Battery = domain.BatteryLiquid
	case strings.Contains(raw, "배터리 미포함"):
		attrs.Battery = domain.BatteryNone
	}

	attrs.Variant = parseVariant(raw, attrs.SeatLabel)

	return attrs
}

// parseSeats checks seat tokens in priority order: VIP label, semi label with
// sub-variant tag, then a plain numeric count.
func parseSeats(raw string) (int, string) {
	if m := vipSeatPattern.FindStringSubmatch(raw); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n, "VIP " + m[1] + "인승"
	}
	if m := semiSeatPattern.FindStringSubmatch(raw); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n, "세미 " + m[1] + "인승(" + m[2] + ")"
	}
	// First plain match not immediately followed by a closing parenthesis,
	// to avoid matching inside parenthetical sub-tags.
	for _, loc := range plainSeatPattern.FindAllStringSubmatchIndex(raw, -1) {
		if loc[1] < len(raw) && raw[loc[1]] == ')' {
			continue
		}
		n, _ := strconv.Atoi(raw[loc[2]:loc[3]])
		return n, raw[loc[2]:loc[3]] + "인승"
	}
	return 0, ""
}

// parseVariant composes the display-only variant label from VIP/semi seat
// labels and the optional reverse-facing suffix.
func parseVariant(raw, seatLabel string) string {
	var variant string
	if strings.Contains(raw, "VIP") || strings.Contains(raw, "세미") {
		variant = seatLabel
	}
	if strings.Contains(raw, "역방향") {
		if variant != "" {
			variant += ", 역방향"
		} else {
			variant = "역방향"
		}
	}
	return variant
}
