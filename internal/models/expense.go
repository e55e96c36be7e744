package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory mirrors domain.ExpenseCategory at the storage layer.
type ExpenseCategory string

// Expense represents a row in the expenses table. Participants live in the
// expense_participants table and are loaded separately.
type Expense struct {
	ExpenseID   string          `db:"expense_id"`
	GroupID     string          `db:"group_id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"` // NUMERIC(12,2)
	PayerID     string          `db:"payer_id"`
	Category    ExpenseCategory `db:"category"`
	Notes       string          `db:"notes"`
	ExpenseDate time.Time       `db:"expense_date"`
	AuditFields
}

// Settlement represents a row in the settlements table. A missing row means
// the (expense, member) pair is unpaid.
type Settlement struct {
	ExpenseID string    `db:"expense_id"`
	MemberID  string    `db:"member_id"`
	SettledAt time.Time `db:"settled_at"`
	SettledBy string    `db:"settled_by"`
}
