package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
	"github.com/SscSPs/expense_splitter_app/internal/core/ledger"
	portssvc "github.com/SscSPs/expense_splitter_app/internal/core/ports/services"
	"github.com/SscSPs/expense_splitter_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) ListGroupExpenses(ctx context.Context, groupID string, requestingUserID string) ([]domain.Expense, error) {
	args := m.Called(ctx, groupID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseService) ListUserExpenses(ctx context.Context, userID string, before *time.Time, limit int) ([]domain.Expense, error) {
	args := m.Called(ctx, userID, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseService) GetExpenseSplits(ctx context.Context, expenseID string, requestingUserID string) (ledger.Split, error) {
	args := m.Called(ctx, expenseID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ledger.Split), args.Error(1)
}

func (m *MockExpenseService) CreateExpense(ctx context.Context, groupID string, req dto.CreateExpenseRequest, requestingUserID string) (*domain.Expense, error) {
	args := m.Called(ctx, groupID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) DeleteExpense(ctx context.Context, expenseID string, requestingUserID string) error {
	args := m.Called(ctx, expenseID, requestingUserID)
	return args.Error(0)
}

func (m *MockExpenseService) SettleShare(ctx context.Context, expenseID string, memberID string, requestingUserID string) error {
	args := m.Called(ctx, expenseID, memberID, requestingUserID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)
