package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies an expense for display and reporting.
type ExpenseCategory string

const (
	CategoryFood           ExpenseCategory = "food"
	CategoryTransportation ExpenseCategory = "transportation"
	CategoryEntertainment  ExpenseCategory = "entertainment"
	CategoryShopping       ExpenseCategory = "shopping"
	CategoryUtilities      ExpenseCategory = "utilities"
	CategoryHousing        ExpenseCategory = "housing"
	CategoryHealth         ExpenseCategory = "health"
	CategoryOther          ExpenseCategory = "other"
)

// Expense represents a single shared expense within a group.
// An expense is immutable once created; only settlement state attached to its
// participants changes afterwards.
type Expense struct {
	ExpenseID    string          `json:"expenseID"` // Primary Key (e.g., UUID)
	GroupID      string          `json:"groupID"`   // FK -> groups.group_id (Not Null)
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`       // Positive value at currency precision
	PayerID      string          `json:"payerID"`      // Member who paid; need not be a participant
	PayerName    string          `json:"payerName"`    // Derived; populated on reads
	Participants []string        `json:"participants"` // Non-empty set of member UserIDs the expense is split among
	Category     ExpenseCategory `json:"category"`
	Notes        string          `json:"notes"` // Nullable
	ExpenseDate  time.Time       `json:"expenseDate"`
	AuditFields
}

// Settlement records whether a participant's share of an expense has been paid.
// A settlement exists implicitly as unpaid until marked; marking is one-way.
type Settlement struct {
	ExpenseID string     `json:"expenseID"`
	MemberID  string     `json:"memberID"`
	Paid      bool       `json:"paid"`
	SettledAt *time.Time `json:"settledAt,omitempty"`
	SettledBy string     `json:"settledBy,omitempty"`
}
