package services

import (
	"context"
	"encoding/json"
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
	"github.com/SscSPs/expense_splitter_app/internal/platform/cache"
)

// BalanceService computes per-member balances for a group by folding the
// group's expenses and settlement marks through the ledger engine. Results
// are cached until the next expense or settlement mutation.
type BalanceService struct {
	BaseService
	groupRepo      portsrepo.GroupRepositoryFacade
	expenseRepo    portsrepo.ExpenseRepositoryFacade
	settlementRepo portsrepo.SettlementRepositoryFacade
	cache          cache.Cache
	cacheTTL       time.Duration
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(
	groupRepo portsrepo.GroupRepositoryFacade,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	settlementRepo portsrepo.SettlementRepositoryFacade,
	balanceCache cache.Cache,
	cacheTTL time.Duration,
) portssvc.BalanceSvcFacade {
	return &BalanceService{
		groupRepo:      groupRepo,
		expenseRepo:    expenseRepo,
		settlementRepo: settlementRepo,
		cache:          balanceCache,
		cacheTTL:       cacheTTL,
	}
}

// Ensure BalanceService implements the portssvc.BalanceSvcFacade interface
var _ portssvc.BalanceSvcFacade = (*BalanceService)(nil)

func balanceCacheKey(groupID string) string {
	return "group_balances:" + groupID
}

// GetGroupBalances computes the paid, owed, net and pending totals for every
// member of a group, serving from cache when possible.
func (s *BalanceService) GetGroupBalances(ctx context.Context, groupID string, requestingUserID string) ([]dto.MemberBalanceResponse, error) {
	member, err := s.groupRepo.FindGroupMember(ctx, groupID, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, fmt.Errorf("failed to check group membership: %w", err)
	}
	if member.Status != domain.MemberActive {
		return nil, apperrors.ErrForbidden
	}

	key := balanceCacheKey(groupID)
	if raw, err := s.cache.Get(ctx, key); err == nil {
		var cached []dto.MemberBalanceResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			s.LogDebug(ctx, "Balance cache hit", slog.String("group_id", groupID))
			return cached, nil
		}
		// A corrupt entry falls through to recomputation.
		s.LogDebug(ctx, "Discarding unreadable balance cache entry", slog.String("group_id", groupID))
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.LogError(ctx, err, "Balance cache read failed", slog.String("group_id", groupID))
	}

	balances, err := s.computeGroupBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(balances); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
			s.LogError(ctx, err, "Balance cache write failed", slog.String("group_id", groupID))
		}
	}
	return balances, nil
}

// InvalidateGroupBalances drops any cached balances for a group.
func (s *BalanceService) InvalidateGroupBalances(ctx context.Context, groupID string) error {
	return s.cache.Delete(ctx, balanceCacheKey(groupID))
}

func (s *BalanceService) computeGroupBalances(ctx context.Context, groupID string) ([]dto.MemberBalanceResponse, error) {
	members, err := s.groupRepo.ListGroupMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group members: %w", err)
	}

	expenses, err := s.expenseRepo.ListExpensesByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group expenses: %w", err)
	}

	settlements, err := s.settlementRepo.ListSettlementsByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group settlements: %w", err)
	}

	memberIDs := make([]string, len(members))
	for i, m := range members {
		memberIDs[i] = m.UserID
	}

	ledgerExpenses := make([]ledger.Expense, len(expenses))
	for i, e := range expenses {
		ledgerExpenses[i] = ledger.Expense{
			ExpenseID:    e.ExpenseID,
			PayerID:      e.PayerID,
			Amount:       e.Amount,
			Participants: e.Participants,
		}
	}

	set := make(ledger.SettlementSet, len(settlements))
	for _, rec := range settlements {
		settledAt := time.Time{}
		if rec.SettledAt != nil {
			settledAt = *rec.SettledAt
		}
		set[ledger.SettlementKey{ExpenseID: rec.ExpenseID, MemberID: rec.MemberID}] = ledger.Settlement{Paid: rec.Paid, SettledAt: settledAt}
	}

	byMember, err := ledger.Aggregate(ledgerExpenses, set, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate balances for group %s: %w", groupID, err)
	}

	// One row per member, in membership order.
	result := make([]dto.MemberBalanceResponse, len(members))
	for i, m := range members {
		b := byMember[m.UserID]
		result[i] = dto.MemberBalanceResponse{
			UserID:     m.UserID,
			Name:       m.Name,
			PhotoURL:   m.PhotoURL,
			Paid:       b.Paid,
			Owed:       b.Owed,
			Net:        b.Net,
			PendingOut: b.PendingOut,
			PendingIn:  b.PendingIn,
		}
	}
	return result, nil
}
