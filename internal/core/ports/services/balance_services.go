package services

import (
	"context"

	"github.com/SscSPs/expense_splitter_app/internal/dto"
)

// BalanceSvcFacade defines operations for computing group balances.
type BalanceSvcFacade interface {
	// GetGroupBalances computes the paid, owed, net and pending totals for
	// every member of a group.
	GetGroupBalances(ctx context.Context, groupID string, requestingUserID string) ([]dto.MemberBalanceResponse, error)

	// InvalidateGroupBalances drops any cached balances for a group. Called
	// after an expense or settlement mutation.
	InvalidateGroupBalances(ctx context.Context, groupID string) error
}
