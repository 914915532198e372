package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielokim/quotekit/internal/catalog"
	"github.com/danielokim/quotekit/internal/domain"
	"github.com/danielokim/quotekit/internal/patch"
	"github.com/danielokim/quotekit/internal/repository"
	"github.com/danielokim/quotekit/internal/testutil"
)

const testRawModel = "레이크사이드CC(25.01.01)_G2_전자유도_5인승_리튬"

type fixedClock struct{ t time.Time }

func (c *fixedClock) now() time.Time { return c.t }

func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// stubEmbedder returns a fixed vector, or fails when vec is nil.
type stubEmbedder struct {
	vec   []float64
	calls int
}

func (e *stubEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	e.calls++
	if e.vec == nil {
		return nil, errors.New("embedding backend down")
	}
	return e.vec, nil
}

func newTestQuoteService(t *testing.T, embedder Embedder) (QuoteService, *sql.DB, *fixedClock) {
	t.Helper()
	database := testutil.NewTestDB(t)
	clock := &fixedClock{t: testutil.FixedTime}

	svc := &quoteService{
		quotes:    repository.NewSQLiteQuoteRepo(database),
		patches:   repository.NewSQLitePatchLogRepo(database),
		uow:       testutil.NewTestUoW(database),
		numbering: NewNumberingService(),
		priceBook: catalog.DefaultPriceBook(),
		embedder:  embedder,
		observer:  NoopUseCaseObserver{},
		now:       clock.now,
	}
	return svc, database, clock
}

func TestCreateFromModelIssuesSequentialNumbers(t *testing.T) {
	svc, _, _ := newTestQuoteService(t, nil)
	ctx := context.Background()

	first, err := svc.CreateFromModel(ctx, testRawModel)
	require.NoError(t, err)
	second, err := svc.CreateFromModel(ctx, testRawModel)
	require.NoError(t, err)

	require.NotNil(t, first.Number)
	require.NotNil(t, second.Number)
	assert.Equal(t, "25", first.Number.Year)
	assert.Equal(t, 1, first.Number.Seq)
	assert.Equal(t, 2, second.Number.Seq)
	assert.Equal(t, 1, first.Number.Sub)
	assert.Equal(t, domain.StatusDraft, first.Status)
	assert.Equal(t, "레이크사이드CC", first.Model.CourseName)
	assert.NotZero(t, first.GrandTotal)
}

func TestGetByIDAndByQuoteNo(t *testing.T) {
	svc, _, _ := newTestQuoteService(t, nil)
	ctx := context.Background()

	created, err := svc.CreateFromModel(ctx, testRawModel)
	require.NoError(t, err)

	byID, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	byNo, err := svc.Get(ctx, created.Number.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, byNo.ID)

	_, err = svc.Get(ctx, "25-999-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestApplyPatchPersistsAndLogs(t *testing.T) {
	svc, database, clock := newTestQuoteService(t, nil)
	ctx := context.Background()

	created, err := svc.CreateFromModel(ctx, testRawModel)
	require.NoError(t, err)
	clock.advance(time.Minute)

	patched, err := svc.ApplyPatch(ctx, created.ID, []patch.Operation{
		{Op: patch.OpReplace, Path: "/items/0/qty", Value: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), patched.Items[0].Qty)
	assert.Equal(t, 3*patched.Items[0].UnitPrice, patched.Items[0].Total)
	assert.Equal(t, patched.Subtotal+patched.VAT, patched.GrandTotal)

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, patched.GrandTotal, stored.GrandTotal)

	logged, err := repository.NewSQLitePatchLogRepo(database).List(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, logged, 1)
}

func TestApplyPatchRejectionLeavesQuoteUnchanged(t *testing.T) {
	svc, database, _ := newTestQuoteService(t, nil)
	ctx := context.Background()

	created, err := svc.CreateFromModel(ctx, testRawModel)
	require.NoError(t, err)

	_, err = svc.ApplyPatch(ctx, created.ID, []patch.Operation{
		{Op: patch.OpReplace, Path: "/items/0/qty", Value: 3},
		{Op: patch.OpReplace, Path: "/items/99/qty", Value: 1},
	})
	var patchErr *patch.Error
	require.ErrorAs(t, err, &patchErr)
	assert.Equal(t, 1, patchErr.OpIndex)

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.GrandTotal, stored.GrandTotal)
	assert.Equal(t, created.Items[0].Qty, stored.Items[0].Qty)

	logged, err := repository.NewSQLitePatchLogRepo(database).List(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, logged, "a rejected patch is never logged")
}

func TestUndoReplaysPrefix(t *testing.T) {
	svc, _, clock := newTestQuoteService(t, nil)
	ctx := context.Background()

	created, err := svc.CreateFromModel(ctx, testRawModel)
	require.NoError(t, err)
	clock.advance(time.Minute)

	afterFirst, err := svc.ApplyPatch(ctx, created.ID, []patch.Operation{
		{Op: patch.OpReplace, Path: "/title", Value: "첫 번째 수정"},
	})
	require.NoError(t, err)
	clock.advance(time.Minute)

	_, err = svc.ApplyPatch(ctx, created.ID, []patch.Operation{
		{Op: patch.OpReplace, Path: "/items/0/qty", Value: 7},
	})
	require.NoError(t, err)
	clock.advance(time.Minute)

	undone, err := svc.Undo(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "첫 번째 수정", undone.Title)
	assert.Equal(t, afterFirst.Items[0].Qty, undone.Items[0].Qty)
	assert.Equal(t, afterFirst.GrandTotal, undone.GrandTotal)
}

func TestUndoEmptyLog(t *testing.T) {
	svc, _, _ := newTestQuoteService(t, nil)
	ctx := context.Background()

	created, err := svc.CreateFromModel(ctx, testRawModel)
	require.NoError(t, err)

	_, err = svc.Undo(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestResetRestoresBase(t *testing.T) {
	svc, database, clock := newTestQuoteService(t, nil)
	ctx := context.Background()

	created, err := svc.CreateFromModel(ctx, testRawModel)
	require.NoError(t, err)
	clock.advance(time.Minute)

	_, err = svc.ApplyPatch(ctx, created.ID, []patch.Operation{
		{Op: patch.OpReplace, Path: "/items/0/qty", Value: 9},
		{Op: patch.OpReplace, Path: "/client", Value: "다른 고객"},
	})
	require.NoError(t, err)
	clock.advance(time.Minute)

	restored, err := svc.Reset(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Items[0].Qty, restored.Items[0].Qty)
	assert.Equal(t, created.Client, restored.Client)
	assert.Equal(t, created.GrandTotal, restored.GrandTotal)

	logged, err := repository.NewSQLitePatchLogRepo(database).List(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, logged)
}

func TestReviseBumpsSubSequence(t *testing.T) {
	svc, _, clock := newTestQuoteService(t, nil)
	ctx := context.Background()

	created, err := svc.CreateFromModel(ctx, testRawModel)
	require.NoError(t, err)
	clock.advance(time.Hour)

	revised, err := svc.Revise(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Number.Year, revised.Number.Year)
	assert.Equal(t, created.Number.Seq, revised.Number.Seq)
	assert.Equal(t, created.Number.Sub+1, revised.Number.Sub)
	assert.Equal(t, revised.Number.Sub, revised.Revision)
	assert.Equal(t, domain.StatusRevised, revised.Status)
	assert.True(t, revised.UpdatedAt.After(created.UpdatedAt))

	// Revision does not consume a year sequence.
	next, err := svc.CreateFromModel(ctx, testRawModel)
	require.NoError(t, err)
	assert.Equal(t, created.Number.Seq+1, next.Number.Seq)
}

func TestUndoAfterReviseKeepsNumberAndStatus(t *testing.T) {
	svc, _, clock := newTestQuoteService(t, nil)
	ctx := context.Background()

	created, err := svc.CreateFromModel(ctx, testRawModel)
	require.NoError(t, err)
	clock.advance(time.Minute)

	_, err = svc.ApplyPatch(ctx, created.ID, []patch.Operation{
		{Op: patch.OpReplace, Path: "/title", Value: "수정본"},
	})
	require.NoError(t, err)
	clock.advance(time.Minute)

	revised, err := svc.Revise(ctx, created.ID)
	require.NoError(t, err)
	clock.advance(time.Minute)

	undone, err := svc.Undo(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, undone.Title, "the edit is reverted")
	assert.Equal(t, revised.Number.Sub, undone.Number.Sub, "the revision is not")
	assert.Equal(t, domain.StatusRevised, undone.Status)
}

func TestDelete(t *testing.T) {
	svc, _, _ := newTestQuoteService(t, nil)
	ctx := context.Background()

	created, err := svc.CreateFromModel(ctx, testRawModel)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEmbeddingRefreshOnWrite(t *testing.T) {
	embedder := &stubEmbedder{vec: []float64{0.5, 0.5}}
	svc, database, _ := newTestQuoteService(t, embedder)
	ctx := context.Background()

	created, err := svc.CreateFromModel(ctx, testRawModel)
	require.NoError(t, err)
	assert.Equal(t, 1, embedder.calls)

	records, err := repository.NewSQLiteQuoteRepo(database).ListEmbeddings(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, created.ID, records[0].QuoteID)
}

func TestEmbeddingFailureDoesNotFailWrite(t *testing.T) {
	embedder := &stubEmbedder{vec: nil}
	svc, database, _ := newTestQuoteService(t, embedder)
	ctx := context.Background()

	created, err := svc.CreateFromModel(ctx, testRawModel)
	require.NoError(t, err)
	require.NotNil(t, created.Number)

	records, err := repository.NewSQLiteQuoteRepo(database).ListEmbeddings(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestListDefaultsLimit(t *testing.T) {
	svc, _, _ := newTestQuoteService(t, nil)
	ctx := context.Background()

	_, err := svc.CreateFromModel(ctx, testRawModel)
	require.NoError(t, err)

	summaries, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}
