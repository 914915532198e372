package intelligence

import (
	"encoding/json"
	"fmt"

	"github.com/danielokim/quotekit/internal/domain"
)

const normalizeSystemPrompt = `You convert Korean free-form quote edit requests into a JSON array of
patch operations. Each operation is {"op": "...", "path": "...", "value": ...}
where op is one of "replace", "add", "remove".

Addressable paths:
  /title /client /owner /payTerms /deliveryTerms /notes /vatRate
  /model/courseName /model/date /model/series /model/deck /model/seats
  /model/seatLabel /model/battery /model/variant
  /items/{index} /items/{index}/label /items/{index}/qty /items/{index}/unitPrice
  /installed/{index} /paid/{index} /extra/{index} and their /description /price fields

Allowed values: series G2|G3|G20|ST20, deck long_deck|short_deck|manual|electronic_guidance,
battery lithium|liquid|none_included. Prices are integer KRW. Never emit totals;
they are derived. Price changes are absolute values, never deltas.
Output only the JSON array, nothing else. Output [] when no edit is requested.`

// buildNormalizePrompt pairs the user's request with the current quote state
// so the model can resolve references like "the battery line".
func buildNormalizePrompt(userText string, q *domain.Quote) (string, error) {
	doc, err := json.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("encoding quote for prompt: %w", err)
	}
	return fmt.Sprintf("Current quote:\n%s\n\nRequest:\n%s", doc, userText), nil
}
