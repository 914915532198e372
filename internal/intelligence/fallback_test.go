package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielokim/quotekit/internal/patch"
	"github.com/danielokim/quotekit/internal/testutil"
)

func opByPath(ops []patch.Operation, path string) *patch.Operation {
	for i := range ops {
		if ops[i].Path == path {
			return &ops[i]
		}
	}
	return nil
}

func TestKeywordSeats(t *testing.T) {
	q := testutil.NewTestQuote("25", 1)
	ops := keywordOps("6인승으로 바꿔주세요", q)

	seats := opByPath(ops, "/model/seats")
	require.NotNil(t, seats)
	assert.Equal(t, 6, seats.Value)

	label := opByPath(ops, "/model/seatLabel")
	require.NotNil(t, label)
	assert.Equal(t, "6인승", label.Value)
}

func TestKeywordSeatsAlternatePhrasings(t *testing.T) {
	q := testutil.NewTestQuote("25", 1)

	for _, text := range []string{"좌석 8", "8명 탑승"} {
		ops := keywordOps(text, q)
		seats := opByPath(ops, "/model/seats")
		require.NotNilf(t, seats, "phrase %q", text)
		assert.Equal(t, 8, seats.Value)
	}
}

func TestKeywordDeckLastMentionWins(t *testing.T) {
	q := testutil.NewTestQuote("25", 1)

	ops := keywordOps("수동 말고 롱데크로", q)
	deck := opByPath(ops, "/model/deck")
	require.NotNil(t, deck)
	assert.Equal(t, "long_deck", deck.Value)
}

func TestKeywordBattery(t *testing.T) {
	q := testutil.NewTestQuote("25", 1)

	cases := map[string]string{
		"리튬으로":       "lithium",
		"액상 배터리":     "liquid",
		"배터리 미포함으로": "none_included",
	}
	for text, want := range cases {
		ops := keywordOps(text, q)
		battery := opByPath(ops, "/model/battery")
		require.NotNilf(t, battery, "phrase %q", text)
		assert.Equal(t, want, battery.Value)
	}
}

func TestKeywordBatteryQty(t *testing.T) {
	q := testutil.NewTestQuote("25", 1)
	// The fixture's second item is the battery line.
	ops := keywordOps("배터리 3개로", q)

	qty := opByPath(ops, "/items/1/qty")
	require.NotNil(t, qty)
	assert.Equal(t, 3, qty.Value)
}

func TestKeywordBatteryQtyNoBatteryLine(t *testing.T) {
	q := testutil.NewTestQuote("25", 1)
	q.Items = q.Items[:1]

	ops := keywordOps("배터리 3개로", q)
	assert.Nil(t, opByPath(ops, "/items/1/qty"))
}

func TestKeywordUnitPrice(t *testing.T) {
	q := testutil.NewTestQuote("25", 1)

	ops := keywordOps("단가 1,200만원으로 조정", q)
	price := opByPath(ops, "/items/0/unitPrice")
	require.NotNil(t, price)
	assert.Equal(t, int64(12_000_000), price.Value)

	ops = keywordOps("단가 9500000원", q)
	price = opByPath(ops, "/items/0/unitPrice")
	require.NotNil(t, price)
	assert.Equal(t, int64(9_500_000), price.Value)
}

func TestKeywordNoteAppends(t *testing.T) {
	q := testutil.NewTestQuote("25", 1)
	q.Notes = "기존 비고"

	ops := keywordOps("메모: 설치비 별도", q)
	note := opByPath(ops, "/notes")
	require.NotNil(t, note)
	assert.Equal(t, "기존 비고\n설치비 별도", note.Value)
}

func TestKeywordNoOps(t *testing.T) {
	q := testutil.NewTestQuote("25", 1)
	assert.Empty(t, keywordOps("감사합니다", q))
}

func TestKeywordNeverEmitsPriceDelta(t *testing.T) {
	// Negative amounts in the text must not be interpreted as discounts.
	q := testutil.NewTestQuote("25", 1)
	ops := keywordOps("-30만원 할인", q)
	assert.Nil(t, opByPath(ops, "/items/0/unitPrice"))
}
