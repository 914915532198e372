package domain

import (
	"fmt"
	"time"
)

// QuoteNumber is the human-facing identifier for a quote and its revisions,
// serialized as "{yy}-{sequence}-{subSequence}" (e.g. "25-672-1").
// (Year, Seq) pairs are never reused within a year; Sub starts at 1 and
// strictly increases per revision of the same quote.
type QuoteNumber struct {
	Year string `json:"year"`
	Seq  int    `json:"sequence"`
	Sub  int    `json:"subSequence"`
}

func (n QuoteNumber) String() string {
	return fmt.Sprintf("%s-%d-%d", n.Year, n.Seq, n.Sub)
}

// NextRevision returns the number for the next revision of the same quote.
// Year and Seq are unchanged.
func (n QuoteNumber) NextRevision() QuoteNumber {
	n.Sub++
	return n
}

// YearKey returns the two-digit counter key for the given time.
func YearKey(t time.Time) string {
	return t.Format("06")
}
