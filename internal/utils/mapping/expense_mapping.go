package mapping

import (
	"time"

	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
	"github.com/SscSPs/expense_splitter_app/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense.
// Participants are persisted separately in expense_participants.
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:   d.ExpenseID,
		GroupID:     d.GroupID,
		Description: d.Description,
		Amount:      d.Amount,
		PayerID:     d.PayerID,
		Category:    models.ExpenseCategory(d.Category),
		Notes:       d.Notes,
		ExpenseDate: d.ExpenseDate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense and its participant IDs to a domain Expense
func ToDomainExpense(m models.Expense, participants []string) domain.Expense {
	return domain.Expense{
		ExpenseID:    m.ExpenseID,
		GroupID:      m.GroupID,
		Description:  m.Description,
		Amount:       m.Amount,
		PayerID:      m.PayerID,
		Participants: participants,
		Category:     domain.ExpenseCategory(m.Category),
		Notes:        m.Notes,
		ExpenseDate:  m.ExpenseDate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSettlement converts a domain Settlement to a model Settlement.
// Only paid settlements are stored; the caller must not pass an unpaid one.
func ToModelSettlement(d domain.Settlement) models.Settlement {
	settledAt := time.Time{}
	if d.SettledAt != nil {
		settledAt = *d.SettledAt
	}
	return models.Settlement{
		ExpenseID: d.ExpenseID,
		MemberID:  d.MemberID,
		SettledAt: settledAt,
		SettledBy: d.SettledBy,
	}
}

// ToDomainSettlement converts a model Settlement to a domain Settlement
func ToDomainSettlement(m models.Settlement) domain.Settlement {
	t := m.SettledAt
	return domain.Settlement{
		ExpenseID: m.ExpenseID,
		MemberID:  m.MemberID,
		Paid:      true,
		SettledAt: &t,
		SettledBy: m.SettledBy,
	}
}

// ToDomainSettlementSlice converts a slice of model Settlements to domain Settlements
func ToDomainSettlementSlice(ms []models.Settlement) []domain.Settlement {
	ds := make([]domain.Settlement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSettlement(m)
	}
	return ds
}
