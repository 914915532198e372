package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielokim/quotekit/internal/db"
	"github.com/danielokim/quotekit/internal/domain"
	"github.com/danielokim/quotekit/internal/testutil"
)

func TestIssueQuoteNumber(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	svc := NewNumberingService()
	ctx := context.Background()

	issue := func(at time.Time) domain.QuoteNumber {
		var number domain.QuoteNumber
		err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			var err error
			number, err = svc.IssueQuoteNumber(ctx, tx, at)
			return err
		})
		require.NoError(t, err)
		return number
	}

	first := issue(testutil.FixedTime)
	assert.Equal(t, domain.QuoteNumber{Year: "25", Seq: 1, Sub: 1}, first)

	second := issue(testutil.FixedTime)
	assert.Equal(t, 2, second.Seq)

	nextYear := issue(testutil.FixedTime.AddDate(1, 0, 0))
	assert.Equal(t, domain.QuoteNumber{Year: "26", Seq: 1, Sub: 1}, nextYear)
}

func TestIssueRevision(t *testing.T) {
	svc := NewNumberingService()

	got := svc.IssueRevision(domain.QuoteNumber{Year: "25", Seq: 672, Sub: 1})
	assert.Equal(t, domain.QuoteNumber{Year: "25", Seq: 672, Sub: 2}, got)
	assert.Equal(t, "25-672-2", got.String())
}
