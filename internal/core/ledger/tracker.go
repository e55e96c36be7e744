package ledger

import (
	"fmt"
	"time"
)

// Tracker validates and applies settlement marks against a fixed set of
// expenses. It owns the working copy of the settlement state; callers persist
// the returned records through whatever datastore supplied the inputs.
//
// MarkPaid is idempotent: the surrounding network layer may retry a mark, and
// a retry must not double-count or fail. Concurrent marks for the same pair
// are serialized by the datastore, not here.
type Tracker struct {
	expenses    map[string]Expense
	settlements SettlementSet
}

// NewTracker builds a tracker over the given expenses and existing settlement
// records. The settlement set is copied; the caller's map is not mutated.
func NewTracker(expenses []Expense, settlements SettlementSet) *Tracker {
	byID := make(map[string]Expense, len(expenses))
	for _, exp := range expenses {
		byID[exp.ExpenseID] = exp
	}
	set := make(SettlementSet, len(settlements))
	for k, v := range settlements {
		set[k] = v
	}
	return &Tracker{expenses: byID, settlements: set}
}

// Settlements returns the tracker's current settlement state.
func (t *Tracker) Settlements() SettlementSet {
	return t.settlements
}

// MarkPaid transitions the (expenseID, memberID) pair to paid and stamps the
// settlement time. It validates the pair before any mutation: the expense must
// be known and the member must be split into it. Marking an already-paid pair
// is a no-op success, as is a payer marking their own share (a payer cannot
// owe themself).
func (t *Tracker) MarkPaid(expenseID, memberID string, now time.Time) (Settlement, error) {
	exp, ok := t.expenses[expenseID]
	if !ok {
		return Settlement{}, fmt.Errorf("%w: %s", ErrUnknownExpense, expenseID)
	}

	participant := false
	for _, p := range exp.Participants {
		if p == memberID {
			participant = true
			break
		}
	}
	if !participant {
		// The payer's own share, when the payer participates, is settled by
		// construction; an outsider is an error.
		if memberID == exp.PayerID {
			return Settlement{}, nil
		}
		return Settlement{}, fmt.Errorf("%w: member %s, expense %s", ErrUnknownParticipant, memberID, expenseID)
	}
	if memberID == exp.PayerID {
		return Settlement{}, nil
	}

	key := SettlementKey{ExpenseID: expenseID, MemberID: memberID}
	if existing, ok := t.settlements[key]; ok && existing.Paid {
		return existing, nil
	}

	record := Settlement{Paid: true, SettledAt: now}
	t.settlements[key] = record
	return record, nil
}
