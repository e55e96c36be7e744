package repositories

import (
	"context"

	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
)

// SettlementReader defines read operations for settlement data
type SettlementReader interface {
	// ListSettlementsByGroupID retrieves all settled shares across a group's expenses.
	ListSettlementsByGroupID(ctx context.Context, groupID string) ([]domain.Settlement, error)

	// ListSettlementsByExpenseID retrieves the settled shares of one expense.
	ListSettlementsByExpenseID(ctx context.Context, expenseID string) ([]domain.Settlement, error)
}

// SettlementWriter defines write operations for settlement data
type SettlementWriter interface {
	// SaveSettlement records a share as paid. Re-recording an already
	// settled share must not error and must keep the original timestamp.
	SaveSettlement(ctx context.Context, settlement domain.Settlement) error
}

// SettlementRepositoryFacade combines all settlement-related repository interfaces
type SettlementRepositoryFacade interface {
	SettlementReader
	SettlementWriter
}
