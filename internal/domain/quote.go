package domain

import (
	"math"
	"time"
)

// LineItem is a quantity-priced line on a quote. Total is derived and is
// always recomputed by Recompute; a pre-set value is never trusted.
type LineItem struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Qty       int64  `json:"qty"`
	UnitPrice int64  `json:"unitPrice"` // KRW, whole won
	Total     int64  `json:"total"`
}

// OptionLine is an add-on charge with no quantity. Its price passes through
// recomputation unchanged.
type OptionLine struct {
	Description string `json:"description"`
	Price       int64  `json:"price"`
}

// Quote is the canonical quoting entity. Subtotal, VAT and GrandTotal are
// derived fields owned by Recompute.
type Quote struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Client        string       `json:"client,omitempty"`
	Owner         string       `json:"owner,omitempty"`
	PayTerms      string       `json:"payTerms,omitempty"`
	DeliveryTerms string       `json:"deliveryTerms,omitempty"`
	Model         ModelAttrs   `json:"model"`
	Items         []LineItem   `json:"items"`
	Installed     []OptionLine `json:"installed,omitempty"`
	Paid          []OptionLine `json:"paid,omitempty"`
	Extra         []OptionLine `json:"extra,omitempty"`
	Subtotal      int64        `json:"subtotal"`
	VATRate       float64      `json:"vatRate"` // fraction in [0,1]
	VAT           int64        `json:"vat"`
	GrandTotal    int64        `json:"grandTotal"`
	Notes         string       `json:"notes,omitempty"`
	Revision      int          `json:"revision"`
	Number        *QuoteNumber `json:"quoteNumber,omitempty"`
	Status        Status       `json:"status"`
	PDFPath       string       `json:"pdfPath,omitempty"`
	PNGPath       string       `json:"pngPath,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// Clone returns a deep copy of the quote. The patch engine mutates clones
// only, so a rejected patch never leaves partial state behind.
func (q Quote) Clone() Quote {
	c := q
	c.Items = append([]LineItem(nil), q.Items...)
	c.Installed = append([]OptionLine(nil), q.Installed...)
	c.Paid = append([]OptionLine(nil), q.Paid...)
	c.Extra = append([]OptionLine(nil), q.Extra...)
	if q.Number != nil {
		n := *q.Number
		c.Number = &n
	}
	return c
}

// Recompute derives every total field from the current items and options and
// stamps UpdatedAt with now. It is pure with respect to the receiver and
// idempotent for a fixed now. Line totals are clamped at zero: a negative
// quantity or unit price never produces a negative line total. Status,
// Number and ID are never touched.
func (q Quote) Recompute(now time.Time) Quote {
	next := q.Clone()

	var subtotal int64
	for i := range next.Items {
		total := next.Items[i].Qty * next.Items[i].UnitPrice
		if total < 0 {
			total = 0
		}
		next.Items[i].Total = total
		subtotal += total
	}
	for _, buckets := range [][]OptionLine{next.Installed, next.Paid, next.Extra} {
		for _, opt := range buckets {
			subtotal += opt.Price
		}
	}

	next.Subtotal = subtotal
	next.VAT = int64(math.Round(float64(subtotal) * next.VATRate))
	next.GrandTotal = subtotal + next.VAT
	next.UpdatedAt = now
	return next
}
