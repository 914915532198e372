// Package similarity ranks stored quotes against a query by cosine
// similarity over embedding vectors.
package similarity

import (
	"fmt"
	"strings"

	"github.com/danielokim/quotekit/internal/domain"
)

// maxTextLen bounds the canonical text sent to the embedding model.
const maxTextLen = 8000

// CanonicalText flattens a quote into a stable line-oriented form for
// embedding. The same quote always yields the same text, so re-embedding an
// unchanged quote produces the same vector.
func CanonicalText(q *domain.Quote) string {
	items := make([]string, 0, len(q.Items))
	for _, item := range q.Items {
		items = append(items, fmt.Sprintf("%dx %s @%d", item.Qty, item.Label, item.UnitPrice))
	}

	lines := []string{
		"client:" + q.Client,
		"model:" + q.Model.Raw,
		"items:" + strings.Join(items, "; "),
	}
	if s := optionDescriptions(q.Installed); s != "" {
		lines = append(lines, "installed:"+s)
	}
	if s := optionDescriptions(q.Paid); s != "" {
		lines = append(lines, "paid:"+s)
	}
	if s := optionDescriptions(q.Extra); s != "" {
		lines = append(lines, "extra:"+s)
	}
	lines = append(lines,
		"payTerms:"+q.PayTerms,
		"deliveryTerms:"+q.DeliveryTerms,
		"notes:"+q.Notes,
	)

	text := strings.Join(lines, "\n")
	if len(text) > maxTextLen {
		text = text[:maxTextLen]
	}
	return text
}

func optionDescriptions(opts []domain.OptionLine) string {
	descs := make([]string, 0, len(opts))
	for _, o := range opts {
		descs = append(descs, o.Description)
	}
	return strings.Join(descs, ", ")
}
