package intelligence

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/danielokim/quotekit/internal/domain"
	"github.com/danielokim/quotekit/internal/patch"
)

var (
	seatPattern       = regexp.MustCompile(`(\d+)\s*(?:인승|명|좌석)`)
	batteryQtyPattern = regexp.MustCompile(`(?i)(배터리|battery)\D*?(\d+)\s*개`)
	unitPricePattern  = regexp.MustCompile(`단가\s*([\d,]+)\s*(만)?\s*원`)
	notePattern       = regexp.MustCompile(`(?s)^.*?(메모|노트|비고)[:：]?\s*`)
)

// deckKeywords and batteryKeywords are checked in order; the last keyword
// present in the text wins, matching how repeated instructions read.
var deckKeywords = []struct {
	word string
	deck domain.DeckType
}{
	{"전자유도", domain.DeckElectronic},
	{"수동", domain.DeckManual},
	{"롱데크", domain.DeckLong},
	{"숏데크", domain.DeckShort},
}

var batteryKeywords = []struct {
	word    string
	battery domain.BatteryType
}{
	{"리튬", domain.BatteryLithium},
	{"액상", domain.BatteryLiquid},
	{"미포함", domain.BatteryNone},
}

// keywordOps is the deterministic fallback normalizer. It recognizes a small
// set of common Korean edit phrasings: seat counts, deck and battery choices,
// battery line quantities, explicit unit prices, and note additions.
// Unrecognized text yields no operations.
func keywordOps(userText string, q *domain.Quote) []patch.Operation {
	var ops []patch.Operation

	// "6인승", "좌석 8", "8명"
	if m := seatPattern.FindStringSubmatch(userText); m != nil {
		seats, _ := strconv.Atoi(m[1])
		ops = append(ops,
			patch.Operation{Op: patch.OpReplace, Path: "/model/seats", Value: seats},
			patch.Operation{Op: patch.OpReplace, Path: "/model/seatLabel", Value: fmt.Sprintf("%d인승", seats)},
		)
	}

	var deck domain.DeckType
	for _, k := range deckKeywords {
		if strings.Contains(userText, k.word) {
			deck = k.deck
		}
	}
	if deck != "" {
		ops = append(ops, patch.Operation{Op: patch.OpReplace, Path: "/model/deck", Value: string(deck)})
	}

	var battery domain.BatteryType
	for _, k := range batteryKeywords {
		if strings.Contains(userText, k.word) {
			battery = k.battery
		}
	}
	if battery != "" {
		ops = append(ops, patch.Operation{Op: patch.OpReplace, Path: "/model/battery", Value: string(battery)})
	}

	// "배터리 2개"
	if m := batteryQtyPattern.FindStringSubmatch(userText); m != nil {
		if idx := findItem(q, "배터리"); idx >= 0 {
			qty, _ := strconv.Atoi(m[2])
			ops = append(ops, patch.Operation{
				Op: patch.OpReplace, Path: fmt.Sprintf("/items/%d/qty", idx), Value: qty,
			})
		}
	}

	// "단가 1,200만원" sets an absolute unit price on the vehicle line.
	if m := unitPricePattern.FindStringSubmatch(userText); m != nil && len(q.Items) > 0 {
		amount, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
		if err == nil {
			if m[2] == "만" {
				amount *= 10_000
			}
			ops = append(ops, patch.Operation{
				Op: patch.OpReplace, Path: "/items/0/unitPrice", Value: amount,
			})
		}
	}

	// "메모: 설치비 별도" appends to the existing notes.
	if notePattern.MatchString(userText) {
		note := strings.TrimSpace(notePattern.ReplaceAllString(userText, ""))
		if note != "" {
			if q.Notes != "" {
				note = q.Notes + "\n" + note
			}
			ops = append(ops, patch.Operation{Op: patch.OpReplace, Path: "/notes", Value: note})
		}
	}

	return ops
}

func findItem(q *domain.Quote, labelPart string) int {
	for i, item := range q.Items {
		if strings.Contains(item.Label, labelPart) {
			return i
		}
	}
	return -1
}
