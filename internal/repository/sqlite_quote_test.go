package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielokim/quotekit/internal/domain"
	"github.com/danielokim/quotekit/internal/testutil"
)

func TestQuoteCreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteQuoteRepo(database)
	ctx := context.Background()

	q := testutil.NewTestQuote("25", 672)
	require.NoError(t, repo.Create(ctx, q))

	got, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Title, got.Title)
	assert.Equal(t, q.GrandTotal, got.GrandTotal)
	require.NotNil(t, got.Number)
	assert.Equal(t, "25-672-1", got.Number.String())
	assert.Equal(t, domain.StatusDraft, got.Status)

	byNo, err := repo.GetByQuoteNo(ctx, "25-672-1")
	require.NoError(t, err)
	assert.Equal(t, q.ID, byNo.ID)
}

func TestQuoteCreateRequiresNumber(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteQuoteRepo(database)

	q := testutil.NewTestQuote("25", 1)
	q.Number = nil
	err := repo.Create(context.Background(), q)
	require.Error(t, err)
}

func TestQuoteCreateRejectsReusedSequence(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteQuoteRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestQuote("25", 7)))

	err := repo.Create(ctx, testutil.NewTestQuote("25", 7))
	require.Error(t, err, "a (year, sequence) pair is never reused")

	// The same sequence in another year is fine.
	require.NoError(t, repo.Create(ctx, testutil.NewTestQuote("26", 7)))
}

func TestQuoteGetNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteQuoteRepo(database)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByQuoteNo(ctx, "99-1-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuoteListNewestFirst(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteQuoteRepo(database)
	ctx := context.Background()

	older := testutil.NewTestQuote("25", 1)
	older.CreatedAt = testutil.FixedTime.Add(-time.Hour)
	newer := testutil.NewTestQuote("25", 2)
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	summaries, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, newer.ID, summaries[0].ID)
	assert.Equal(t, older.ID, summaries[1].ID)

	limited, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, newer.ID, limited[0].ID)
}

func TestQuoteUpdateKeepsBase(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteQuoteRepo(database)
	ctx := context.Background()

	q := testutil.NewTestQuote("25", 3)
	require.NoError(t, repo.Create(ctx, q))

	edited := q.Clone()
	edited.Title = "변경된 견적서"
	edited.Items[0].Qty = 5
	edited = edited.Recompute(testutil.FixedTime.Add(time.Minute))
	require.NoError(t, repo.Update(ctx, &edited))

	got, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "변경된 견적서", got.Title)
	assert.Equal(t, edited.GrandTotal, got.GrandTotal)

	base, err := repo.GetBase(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Title, base.Title, "update must not touch the base snapshot")
	assert.Equal(t, q.GrandTotal, base.GrandTotal)
}

func TestQuoteRebase(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteQuoteRepo(database)
	ctx := context.Background()

	q := testutil.NewTestQuote("25", 4)
	require.NoError(t, repo.Create(ctx, q))

	edited := q.Clone()
	edited.Client = "뉴서울CC"
	require.NoError(t, repo.Rebase(ctx, &edited))

	base, err := repo.GetBase(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "뉴서울CC", base.Client)
}

func TestQuoteUpdateNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteQuoteRepo(database)

	q := testutil.NewTestQuote("25", 5)
	err := repo.Update(context.Background(), q)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuoteDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteQuoteRepo(database)
	ctx := context.Background()

	q := testutil.NewTestQuote("25", 6)
	require.NoError(t, repo.Create(ctx, q))
	require.NoError(t, repo.Delete(ctx, q.ID))

	_, err := repo.GetByID(ctx, q.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, q.ID), ErrNotFound)
}

func TestQuoteEmbeddings(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteQuoteRepo(database)
	ctx := context.Background()

	embedded := testutil.NewTestQuote("25", 1)
	embedded.CreatedAt = testutil.FixedTime.Add(-time.Hour)
	bare := testutil.NewTestQuote("25", 2)
	newest := testutil.NewTestQuote("25", 3)
	require.NoError(t, repo.Create(ctx, embedded))
	require.NoError(t, repo.Create(ctx, bare))
	require.NoError(t, repo.Create(ctx, newest))

	require.NoError(t, repo.SetEmbedding(ctx, embedded.ID, []float64{0.1, 0.2, 0.3}))
	require.NoError(t, repo.SetEmbedding(ctx, newest.ID, []float64{0.4, 0.5, 0.6}))

	records, err := repo.ListEmbeddings(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2, "quotes without an embedding are skipped")
	assert.Equal(t, newest.ID, records[0].QuoteID)
	assert.Equal(t, embedded.ID, records[1].QuoteID)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, records[1].Vector)

	assert.ErrorIs(t, repo.SetEmbedding(ctx, "missing", []float64{1}), ErrNotFound)
}

func TestQuoteSetExportAssets(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteQuoteRepo(database)
	ctx := context.Background()

	q := testutil.NewTestQuote("25", 8)
	require.NoError(t, repo.Create(ctx, q))

	exported := q.Clone()
	exported.Status = domain.StatusReady
	exported.PDFPath = "/exports/25-8-1.pdf"
	exported.PNGPath = "/exports/25-8-1.png"
	exported.UpdatedAt = testutil.FixedTime.Add(time.Minute)
	require.NoError(t, repo.SetExportAssets(ctx, &exported))

	got, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, got.Status)
	assert.Equal(t, "/exports/25-8-1.pdf", got.PDFPath)
	assert.Equal(t, "/exports/25-8-1.png", got.PNGPath)
}
