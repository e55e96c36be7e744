package ledger_test

import (
	"testing"

	"github.com/SscSPs/expense_splitter_app/internal/core/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestResolveSplit_EvenAmount(t *testing.T) {
	split, err := ledger.ResolveSplit(dec("30.00"), []string{"a", "b", "c"})
	require.NoError(t, err)

	for _, id := range []string{"a", "b", "c"} {
		assert.True(t, split[id].Equal(dec("10.00")), "share of %s = %s", id, split[id])
	}
}

func TestResolveSplit_RemainderGoesToFirstParticipants(t *testing.T) {
	// 10.00 over three participants leaves one cent; A is first in order.
	split, err := ledger.ResolveSplit(dec("10.00"), []string{"A", "B", "C"})
	require.NoError(t, err)

	assert.True(t, split["A"].Equal(dec("3.34")), "A got %s", split["A"])
	assert.True(t, split["B"].Equal(dec("3.33")), "B got %s", split["B"])
	assert.True(t, split["C"].Equal(dec("3.33")), "C got %s", split["C"])
}

func TestResolveSplit_Conservation(t *testing.T) {
	cases := []struct {
		amount       string
		participants []string
	}{
		{"10.00", []string{"a", "b", "c"}},
		{"0.01", []string{"a", "b", "c", "d"}},
		{"99.99", []string{"a", "b"}},
		{"100.00", []string{"a", "b", "c", "d", "e", "f", "g"}},
		{"0.05", []string{"a", "b", "c"}},
		{"1234.56", []string{"a"}},
	}

	for _, tc := range cases {
		split, err := ledger.ResolveSplit(dec(tc.amount), tc.participants)
		require.NoError(t, err, "amount %s over %d", tc.amount, len(tc.participants))

		sum := decimal.Zero
		for _, share := range split {
			sum = sum.Add(share)
		}
		assert.True(t, sum.Equal(dec(tc.amount)),
			"amount %s over %d participants: shares sum to %s", tc.amount, len(tc.participants), sum)
	}
}

func TestResolveSplit_FairnessBound(t *testing.T) {
	split, err := ledger.ResolveSplit(dec("100.01"), []string{"a", "b", "c", "d", "e", "f"})
	require.NoError(t, err)

	oneCent := dec("0.01")
	for idA, shareA := range split {
		for idB, shareB := range split {
			diff := shareA.Sub(shareB).Abs()
			assert.True(t, diff.LessThanOrEqual(oneCent),
				"shares of %s and %s differ by %s", idA, idB, diff)
		}
	}
}

func TestResolveSplit_Deterministic(t *testing.T) {
	participants := []string{"x", "y", "z", "w"}
	first, err := ledger.ResolveSplit(dec("7.01"), participants)
	require.NoError(t, err)
	second, err := ledger.ResolveSplit(dec("7.01"), participants)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for id, share := range first {
		assert.True(t, share.Equal(second[id]), "share of %s changed between calls", id)
	}
}

func TestResolveSplit_Errors(t *testing.T) {
	_, err := ledger.ResolveSplit(dec("10.00"), nil)
	assert.ErrorIs(t, err, ledger.ErrEmptyParticipants)

	_, err = ledger.ResolveSplit(dec("-5.00"), []string{"a"})
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

	_, err = ledger.ResolveSplit(decimal.Zero, []string{"a"})
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

	_, err = ledger.ResolveSplit(dec("1.005"), []string{"a"})
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

	_, err = ledger.ResolveSplit(dec("10.00"), []string{"a", "b", "a"})
	assert.ErrorIs(t, err, ledger.ErrDuplicateParticipant)
}
