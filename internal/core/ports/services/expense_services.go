package services

import (
	"context"
	"time"

	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
	"github.com/SscSPs/expense_splitter_app/internal/core/ledger"
	"github.com/SscSPs/expense_splitter_app/internal/dto"
)

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves an expense visible to the requesting user.
	GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error)

	// ListGroupExpenses retrieves the expenses of a group, newest first.
	ListGroupExpenses(ctx context.Context, groupID string, requestingUserID string) ([]domain.Expense, error)

	// ListUserExpenses retrieves the requesting user's expenses across all
	// their groups, newest first, starting strictly before the given date.
	ListUserExpenses(ctx context.Context, userID string, before *time.Time, limit int) ([]domain.Expense, error)

	// GetExpenseSplits computes the per-participant shares of an expense.
	GetExpenseSplits(ctx context.Context, expenseID string, requestingUserID string) (ledger.Split, error)
}

// ExpenseWriterSvc defines write operations for expense data
type ExpenseWriterSvc interface {
	// CreateExpense records a new expense in a group.
	CreateExpense(ctx context.Context, groupID string, req dto.CreateExpenseRequest, requestingUserID string) (*domain.Expense, error)

	// DeleteExpense removes an expense. Only the payer or a group admin may delete.
	DeleteExpense(ctx context.Context, expenseID string, requestingUserID string) error

	// SettleShare marks a participant's share of an expense as paid.
	// Settling an already paid share is a no-op.
	SettleShare(ctx context.Context, expenseID string, memberID string, requestingUserID string) error
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
