package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ResolveSplit computes each participant's owed share of amount, splitting
// equally and distributing the indivisible remainder one minor unit at a time
// to participants in their given order. The shares always sum to amount
// exactly; naive division would let the total drift and silently create or
// destroy money in the ledger.
//
// The participant ordering is the only source of asymmetry: with a remainder
// of N minor units, the first N participants each carry one extra unit. Two
// calls with the same ordered input produce identical output.
func ResolveSplit(amount decimal.Decimal, participants []string) (Split, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	if !amount.Equal(amount.Round(2)) {
		return nil, fmt.Errorf("%w: %s has sub-cent precision", ErrInvalidAmount, amount)
	}
	if len(participants) == 0 {
		return nil, ErrEmptyParticipants
	}
	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		if _, ok := seen[p]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, p)
		}
		seen[p] = struct{}{}
	}

	// Work in integer minor units; amount is validated to be exact at 2dp.
	cents := amount.Mul(oneHundred).IntPart()
	count := int64(len(participants))
	base := cents / count
	remainder := cents % count

	split := make(Split, len(participants))
	for i, p := range participants {
		share := base
		if int64(i) < remainder {
			share++
		}
		split[p] = decimal.New(share, -2)
	}
	return split, nil
}
