package dto

import (
	"github.com/shopspring/decimal"
)

// MemberBalanceResponse is one member's aggregated position in a group.
type MemberBalanceResponse struct {
	UserID   string `json:"userID"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL,omitempty"`
	// Paid is the total this member has paid for the group.
	Paid decimal.Decimal `json:"paid"`
	// Owed is the total of this member's shares across all expenses.
	Owed decimal.Decimal `json:"owed"`
	// Net is Paid minus Owed. Positive means the group owes the member.
	Net decimal.Decimal `json:"net"`
	// PendingOut is the unsettled amount this member still owes others.
	PendingOut decimal.Decimal `json:"pendingOut"`
	// PendingIn is the unsettled amount others still owe this member.
	PendingIn decimal.Decimal `json:"pendingIn"`
}

// GroupBalancesResponse wraps the balances of all members of a group.
type GroupBalancesResponse struct {
	GroupID  string                  `json:"groupID"`
	Balances []MemberBalanceResponse `json:"balances"`
}
