package dto

import (
	"time"

	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
	"github.com/SscSPs/expense_splitter_app/internal/core/ledger"
	"github.com/shopspring/decimal"
)

// --- Expense DTOs ---

// CreateExpenseRequest defines data for recording a new expense.
type CreateExpenseRequest struct {
	Description string          `json:"description" binding:"required,max=200"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	// PayerID defaults to the caller when omitted.
	PayerID      string                 `json:"payerID"`
	Participants []string               `json:"splitAmong" binding:"required,min=1"`
	Category     domain.ExpenseCategory `json:"category" binding:"omitempty,oneof=food transportation entertainment shopping utilities housing health other"`
	Notes        string                 `json:"notes"`
	ExpenseDate  time.Time              `json:"date"`
}

// ExpenseResponse defines data returned for an expense.
type ExpenseResponse struct {
	ExpenseID    string                 `json:"expenseID"`
	GroupID      string                 `json:"groupID"`
	Description  string                 `json:"description"`
	Amount       decimal.Decimal        `json:"amount"`
	PayerID      string                 `json:"payerID"`
	PayerName    string                 `json:"payerName,omitempty"`
	Participants []string               `json:"participants"`
	Category     domain.ExpenseCategory `json:"category"`
	Notes        string                 `json:"notes,omitempty"`
	ExpenseDate  time.Time              `json:"expenseDate"`
	CreatedAt    time.Time              `json:"createdAt"`
	CreatedBy    string                 `json:"createdBy"`
}

// ToExpenseResponse converts domain.Expense to DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:    e.ExpenseID,
		GroupID:      e.GroupID,
		Description:  e.Description,
		Amount:       e.Amount,
		PayerID:      e.PayerID,
		PayerName:    e.PayerName,
		Participants: e.Participants,
		Category:     e.Category,
		Notes:        e.Notes,
		ExpenseDate:  e.ExpenseDate,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
}

// ListExpensesResponse wraps a list of expenses.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	// NextPageToken is set when more expenses exist beyond this page.
	NextPageToken string `json:"nextPageToken,omitempty"`
}

// ToListExpensesResponse converts a slice of domain.Expense to DTO.
func ToListExpensesResponse(es []domain.Expense) ListExpensesResponse {
	list := make([]ExpenseResponse, len(es))
	for i, e := range es {
		list[i] = ToExpenseResponse(&e)
	}
	return ListExpensesResponse{Expenses: list}
}

// ListUserExpensesParams defines query parameters for the user expense feed.
type ListUserExpensesParams struct {
	PageToken string `form:"pageToken"`
	Limit     int    `form:"limit,default=20"`
}

// --- Split DTOs ---

// SplitShareResponse is one participant's share of an expense.
type SplitShareResponse struct {
	MemberID string          `json:"memberID"`
	Amount   decimal.Decimal `json:"amount"`
}

// SplitResponse lists the per-participant shares of an expense.
type SplitResponse struct {
	ExpenseID string               `json:"expenseID"`
	Shares    []SplitShareResponse `json:"shares"`
}

// ToSplitResponse converts a computed split to DTO, ordered by the
// expense's participant list so the output is stable.
func ToSplitResponse(expenseID string, participants []string, split ledger.Split) SplitResponse {
	shares := make([]SplitShareResponse, 0, len(split))
	for _, memberID := range participants {
		if amount, ok := split[memberID]; ok {
			shares = append(shares, SplitShareResponse{MemberID: memberID, Amount: amount})
		}
	}
	return SplitResponse{ExpenseID: expenseID, Shares: shares}
}

// --- Settlement DTOs ---

// SettleShareRequest identifies whose share of an expense is being settled.
// MemberID defaults to the caller when omitted.
type SettleShareRequest struct {
	MemberID string `json:"memberID"`
}
