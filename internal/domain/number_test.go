package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuoteNumber_String(t *testing.T) {
	n := QuoteNumber{Year: "25", Seq: 672, Sub: 1}
	assert.Equal(t, "25-672-1", n.String())
}

func TestQuoteNumber_NextRevision(t *testing.T) {
	n := QuoteNumber{Year: "25", Seq: 672, Sub: 1}

	rev := n.NextRevision()

	assert.Equal(t, QuoteNumber{Year: "25", Seq: 672, Sub: 2}, rev)
	// Original is unchanged.
	assert.Equal(t, 1, n.Sub)
}

func TestYearKey(t *testing.T) {
	assert.Equal(t, "25", YearKey(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "31", YearKey(time.Date(2031, 12, 31, 23, 59, 59, 0, time.UTC)))
}
