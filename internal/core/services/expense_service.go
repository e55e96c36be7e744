package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_splitter_app/internal/apperrors"
	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
	"github.com/SscSPs/expense_splitter_app/internal/core/ledger"
	portsrepo "github.com/SscSPs/expense_splitter_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_splitter_app/internal/core/ports/services"
	"github.com/SscSPs/expense_splitter_app/internal/dto"
	"github.com/google/uuid"
)

// ExpenseService handles business logic related to expenses, splits and
// settlement marks.
type ExpenseService struct {
	BaseService
	expenseRepo    portsrepo.ExpenseRepositoryFacade
	settlementRepo portsrepo.SettlementRepositoryFacade
	groupRepo      portsrepo.GroupRepositoryFacade
	userRepo       portsrepo.UserRepositoryFacade
	balances       portssvc.BalanceSvcFacade
}

// ExpenseServiceOption configures an ExpenseService.
type ExpenseServiceOption func(*ExpenseService)

// WithBalanceInvalidator wires the balance cache invalidation hook.
func WithBalanceInvalidator(balances portssvc.BalanceSvcFacade) ExpenseServiceOption {
	return func(s *ExpenseService) {
		s.balances = balances
	}
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	settlementRepo portsrepo.SettlementRepositoryFacade,
	groupRepo portsrepo.GroupRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	opts ...ExpenseServiceOption,
) portssvc.ExpenseSvcFacade {
	s := &ExpenseService{
		expenseRepo:    expenseRepo,
		settlementRepo: settlementRepo,
		groupRepo:      groupRepo,
		userRepo:       userRepo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure ExpenseService implements the portssvc.ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*ExpenseService)(nil)

func (s *ExpenseService) requireActiveMember(ctx context.Context, groupID, userID string) (*domain.GroupMember, error) {
	member, err := s.groupRepo.FindGroupMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, fmt.Errorf("failed to check group membership: %w", err)
	}
	if member.Status != domain.MemberActive {
		return nil, apperrors.ErrForbidden
	}
	return member, nil
}

// decoratePayerNames fills in the display name of each expense's payer with a
// single batched lookup. Listings stay usable when a payer lookup fails, so
// errors only get logged.
func (s *ExpenseService) decoratePayerNames(ctx context.Context, expenses []domain.Expense) {
	if len(expenses) == 0 {
		return
	}

	seen := make(map[string]bool, len(expenses))
	payerIDs := make([]string, 0, len(expenses))
	for _, e := range expenses {
		if !seen[e.PayerID] {
			seen[e.PayerID] = true
			payerIDs = append(payerIDs, e.PayerID)
		}
	}

	users, err := s.userRepo.FindUsersByIDs(ctx, payerIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve payer names")
		return
	}
	for i := range expenses {
		if user, ok := users[expenses[i].PayerID]; ok {
			expenses[i].PayerName = user.Name
		}
	}
}

func (s *ExpenseService) invalidateBalances(ctx context.Context, groupID string) {
	if s.balances == nil {
		return
	}
	if err := s.balances.InvalidateGroupBalances(ctx, groupID); err != nil {
		s.LogError(ctx, err, "Failed to invalidate balance cache", slog.String("group_id", groupID))
	}
}

// CreateExpense records a new expense in a group. The amount and participant
// set must resolve to a valid split; the payer and every participant must be
// group members.
func (s *ExpenseService) CreateExpense(ctx context.Context, groupID string, req dto.CreateExpenseRequest, requestingUserID string) (*domain.Expense, error) {
	if _, err := s.requireActiveMember(ctx, groupID, requestingUserID); err != nil {
		return nil, err
	}

	// The caller paid unless the request names someone else.
	if req.PayerID == "" {
		req.PayerID = requestingUserID
	}

	// Resolving the split up front rejects bad amounts and participant sets
	// before anything reaches the database.
	if _, err := ledger.ResolveSplit(req.Amount, req.Participants); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	members, err := s.groupRepo.ListGroupMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group members: %w", err)
	}
	memberSet := make(map[string]bool, len(members))
	for _, m := range members {
		memberSet[m.UserID] = true
	}
	if !memberSet[req.PayerID] {
		return nil, fmt.Errorf("%w: payer is not a member of the group", apperrors.ErrValidation)
	}
	for _, participantID := range req.Participants {
		if !memberSet[participantID] {
			return nil, fmt.Errorf("%w: participant %s is not a member of the group", apperrors.ErrValidation, participantID)
		}
	}

	now := time.Now()
	category := req.Category
	if category == "" {
		category = domain.CategoryOther
	}
	expenseDate := req.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = now
	}

	expense := domain.Expense{
		ExpenseID:    uuid.NewString(),
		GroupID:      groupID,
		Description:  req.Description,
		Amount:       req.Amount,
		PayerID:      req.PayerID,
		Participants: req.Participants,
		Category:     category,
		Notes:        req.Notes,
		ExpenseDate:  expenseDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("group_id", groupID))
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.invalidateBalances(ctx, groupID)
	s.LogInfo(ctx, "Expense created", slog.String("expense_id", expense.ExpenseID), slog.String("group_id", groupID))
	return &expense, nil
}

// GetExpenseByID retrieves an expense, requiring the requester to be a member
// of its group.
func (s *ExpenseService) GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireActiveMember(ctx, expense.GroupID, requestingUserID); err != nil {
		return nil, err
	}

	single := []domain.Expense{*expense}
	s.decoratePayerNames(ctx, single)
	return &single[0], nil
}

// ListGroupExpenses retrieves the expenses of a group, newest first.
func (s *ExpenseService) ListGroupExpenses(ctx context.Context, groupID string, requestingUserID string) ([]domain.Expense, error) {
	if _, err := s.requireActiveMember(ctx, groupID, requestingUserID); err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListExpensesByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	s.decoratePayerNames(ctx, expenses)
	return expenses, nil
}

// ListUserExpenses retrieves the requester's expense feed across all groups.
func (s *ExpenseService) ListUserExpenses(ctx context.Context, userID string, before *time.Time, limit int) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.ListExpensesByUserID(ctx, userID, before, limit)
	if err != nil {
		return nil, err
	}
	s.decoratePayerNames(ctx, expenses)
	return expenses, nil
}

// GetExpenseSplits recomputes the per-participant shares of an expense.
func (s *ExpenseService) GetExpenseSplits(ctx context.Context, expenseID string, requestingUserID string) (ledger.Split, error) {
	expense, err := s.GetExpenseByID(ctx, expenseID, requestingUserID)
	if err != nil {
		return nil, err
	}

	split, err := ledger.ResolveSplit(expense.Amount, expense.Participants)
	if err != nil {
		// A stored expense always resolves; anything else is data corruption.
		s.LogError(ctx, err, "Stored expense failed to resolve", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to resolve splits for expense %s: %w", expenseID, err)
	}
	return split, nil
}

// SettleShare marks a participant's share of an expense as paid. Re-settling
// an already paid share is a no-op.
func (s *ExpenseService) SettleShare(ctx context.Context, expenseID string, memberID string, requestingUserID string) error {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if _, err := s.requireActiveMember(ctx, expense.GroupID, requestingUserID); err != nil {
		return err
	}

	existing, err := s.settlementRepo.ListSettlementsByExpenseID(ctx, expenseID)
	if err != nil {
		return fmt.Errorf("failed to load settlements: %w", err)
	}
	set := make(ledger.SettlementSet, len(existing))
	for _, rec := range existing {
		settledAt := time.Time{}
		if rec.SettledAt != nil {
			settledAt = *rec.SettledAt
		}
		set[ledger.SettlementKey{ExpenseID: rec.ExpenseID, MemberID: rec.MemberID}] = ledger.Settlement{Paid: rec.Paid, SettledAt: settledAt}
	}

	tracker := ledger.NewTracker([]ledger.Expense{{
		ExpenseID:    expense.ExpenseID,
		PayerID:      expense.PayerID,
		Amount:       expense.Amount,
		Participants: expense.Participants,
	}}, set)

	record, err := tracker.MarkPaid(expenseID, memberID, time.Now())
	if err != nil {
		if errors.Is(err, ledger.ErrUnknownParticipant) {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		return fmt.Errorf("failed to mark share paid: %w", err)
	}
	if !record.Paid {
		// Payer settling their own share: nothing to persist.
		return nil
	}

	settledAt := record.SettledAt
	settlement := domain.Settlement{
		ExpenseID: expenseID,
		MemberID:  memberID,
		Paid:      true,
		SettledAt: &settledAt,
		SettledBy: requestingUserID,
	}
	if err := s.settlementRepo.SaveSettlement(ctx, settlement); err != nil {
		s.LogError(ctx, err, "Failed to save settlement", slog.String("expense_id", expenseID), slog.String("member_id", memberID))
		return fmt.Errorf("failed to save settlement: %w", err)
	}

	s.invalidateBalances(ctx, expense.GroupID)
	s.LogInfo(ctx, "Share settled", slog.String("expense_id", expenseID), slog.String("member_id", memberID))
	return nil
}

// DeleteExpense removes an expense. Only the payer or a group admin may delete.
func (s *ExpenseService) DeleteExpense(ctx context.Context, expenseID string, requestingUserID string) error {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	member, err := s.requireActiveMember(ctx, expense.GroupID, requestingUserID)
	if err != nil {
		return err
	}
	if expense.PayerID != requestingUserID && member.Role != domain.RoleAdmin {
		return apperrors.ErrForbidden
	}

	if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		s.LogError(ctx, err, "Failed to delete expense", slog.String("expense_id", expenseID))
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.invalidateBalances(ctx, expense.GroupID)
	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}
