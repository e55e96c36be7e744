package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense with its participant list.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpensesByGroupID retrieves all expenses of a group, newest first.
	ListExpensesByGroupID(ctx context.Context, groupID string) ([]domain.Expense, error)

	// ListExpensesByUserID retrieves expenses the user paid or participates in,
	// across all their groups, newest first, starting strictly before the given
	// date when one is provided. Returns at most limit rows.
	ListExpensesByUserID(ctx context.Context, userID string, before *time.Time, limit int) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists an expense and its participant rows atomically.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// DeleteExpense removes an expense, its participants and settlements.
	DeleteExpense(ctx context.Context, expenseID string) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
