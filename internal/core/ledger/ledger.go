// Package ledger implements the pure computation at the core of expense
// splitting: resolving per-member shares of an expense, folding expenses and
// settlements into per-member balances, and tracking settlement state.
//
// The package performs no I/O and holds no persistent state. All amounts are
// decimal values at currency minor-unit precision (two decimal places);
// remainder arithmetic happens in integer minor units so that the shares of a
// split always sum exactly to the original amount.
package ledger

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates an amount that is not positive or not
	// representable at currency precision.
	ErrInvalidAmount = errors.New("amount must be positive at currency precision")
	// ErrEmptyParticipants indicates a split with no participants.
	ErrEmptyParticipants = errors.New("participant set must not be empty")
	// ErrDuplicateParticipant indicates the same member appears twice in a
	// split, which would make ownership of a share ambiguous.
	ErrDuplicateParticipant = errors.New("duplicate participant in split")
	// ErrUnknownExpense indicates a settlement mark against an expense the
	// tracker does not know.
	ErrUnknownExpense = errors.New("unknown expense")
	// ErrUnknownParticipant indicates a settlement mark for a member that is
	// not split into the expense.
	ErrUnknownParticipant = errors.New("member is not a participant of the expense")
	// ErrUnknownMember indicates an expense referencing a payer or participant
	// outside the aggregated member set.
	ErrUnknownMember = errors.New("expense references a member outside the group")
)

// Expense is the minimal view of an expense needed by the engine.
type Expense struct {
	ExpenseID    string
	PayerID      string
	Amount       decimal.Decimal
	Participants []string
}

// Split maps participant member IDs to their owed share of one expense.
type Split map[string]decimal.Decimal

// Balance is the derived balance view for one member across a group.
type Balance struct {
	Paid decimal.Decimal `json:"paid"` // Sum of amounts where the member is payer
	Owed decimal.Decimal `json:"owed"` // Sum of the member's shares across all expenses
	Net  decimal.Decimal `json:"net"`  // Paid - Owed
	// PendingOut is the sum of the member's unpaid shares on expenses paid by
	// somebody else: what the member still has to hand over.
	PendingOut decimal.Decimal `json:"pendingOut"`
	// PendingIn is the sum of unpaid shares other members owe this member as
	// payer: what the member is still waiting to receive.
	PendingIn decimal.Decimal `json:"pendingIn"`
}

// SettlementKey identifies the settlement state of one (expense, member) pair.
type SettlementKey struct {
	ExpenseID string
	MemberID  string
}

// Settlement is the paid flag of one (expense, member) pair. A pair with no
// entry in a SettlementSet is implicitly unpaid.
type Settlement struct {
	Paid      bool
	SettledAt time.Time
}

// SettlementSet holds the explicit settlement records for a group's expenses.
type SettlementSet map[SettlementKey]Settlement

// IsPaid reports whether the given (expense, member) pair has been settled.
func (s SettlementSet) IsPaid(expenseID, memberID string) bool {
	return s[SettlementKey{ExpenseID: expenseID, MemberID: memberID}].Paid
}
