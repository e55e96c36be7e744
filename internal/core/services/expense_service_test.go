package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/expense_splitter_app/internal/apperrors"
	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_splitter_app/internal/core/ports/services"
	"github.com/SscSPs/expense_splitter_app/internal/core/services"
	"github.com/SscSPs/expense_splitter_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo    *MockExpenseRepository
	mockSettlementRepo *MockSettlementRepository
	mockGroupRepo      *MockGroupRepository
	mockUserRepo       *MockUserRepository
	service            portssvc.ExpenseSvcFacade
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockSettlementRepo = new(MockSettlementRepository)
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewExpenseService(suite.mockExpenseRepo, suite.mockSettlementRepo, suite.mockGroupRepo, suite.mockUserRepo)
}

func (suite *ExpenseServiceTestSuite) activeMember(userID string) *domain.GroupMember {
	return &domain.GroupMember{UserID: userID, GroupID: "group-1", Role: domain.RoleMember, Status: domain.MemberActive}
}

func (suite *ExpenseServiceTestSuite) groupMembers(userIDs ...string) []domain.GroupMember {
	members := make([]domain.GroupMember, len(userIDs))
	for i, id := range userIDs {
		members[i] = *suite.activeMember(id)
	}
	return members
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_Success() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Description:  "Dinner",
		Amount:       decimal.RequireFromString("30.00"),
		PayerID:      "alice",
		Participants: []string{"alice", "bob", "carol"},
	}

	suite.mockGroupRepo.On("FindGroupMember", ctx, "group-1", "alice").Return(suite.activeMember("alice"), nil).Once()
	suite.mockGroupRepo.On("ListGroupMembers", ctx, "group-1").Return(suite.groupMembers("alice", "bob", "carol"), nil).Once()
	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.GroupID == "group-1" &&
			e.PayerID == "alice" &&
			len(e.Participants) == 3 &&
			e.Category == domain.CategoryOther &&
			e.ExpenseID != ""
	})).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, "group-1", req, "alice")

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.True(expense.Amount.Equal(decimal.RequireFromString("30.00")))
	suite.False(expense.ExpenseDate.IsZero())
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_RejectsInvalidAmount() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Description:  "Bad amount",
		Amount:       decimal.RequireFromString("-5.00"),
		PayerID:      "alice",
		Participants: []string{"alice", "bob"},
	}

	suite.mockGroupRepo.On("FindGroupMember", ctx, "group-1", "alice").Return(suite.activeMember("alice"), nil).Once()

	_, err := suite.service.CreateExpense(ctx, "group-1", req, "alice")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_RejectsNonMemberParticipant() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Description:  "Outsider",
		Amount:       decimal.RequireFromString("10.00"),
		PayerID:      "alice",
		Participants: []string{"alice", "mallory"},
	}

	suite.mockGroupRepo.On("FindGroupMember", ctx, "group-1", "alice").Return(suite.activeMember("alice"), nil).Once()
	suite.mockGroupRepo.On("ListGroupMembers", ctx, "group-1").Return(suite.groupMembers("alice", "bob"), nil).Once()

	_, err := suite.service.CreateExpense(ctx, "group-1", req, "alice")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestGetExpenseSplits_RemainderToFirstParticipants() {
	ctx := context.Background()
	expense := &domain.Expense{
		ExpenseID:    "exp-1",
		GroupID:      "group-1",
		Amount:       decimal.RequireFromString("10.00"),
		PayerID:      "alice",
		Participants: []string{"alice", "bob", "carol"},
	}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, "exp-1").Return(expense, nil).Once()
	suite.mockGroupRepo.On("FindGroupMember", ctx, "group-1", "alice").Return(suite.activeMember("alice"), nil).Once()
	suite.mockUserRepo.On("FindUsersByIDs", ctx, []string{"alice"}).
		Return(map[string]domain.User{"alice": {UserID: "alice", Name: "Alice"}}, nil).Once()

	split, err := suite.service.GetExpenseSplits(ctx, "exp-1", "alice")

	suite.Require().NoError(err)
	suite.True(split["alice"].Equal(decimal.RequireFromString("3.34")))
	suite.True(split["bob"].Equal(decimal.RequireFromString("3.33")))
	suite.True(split["carol"].Equal(decimal.RequireFromString("3.33")))
}

func (suite *ExpenseServiceTestSuite) TestListGroupExpenses_DecoratesPayerNames() {
	ctx := context.Background()
	expenses := []domain.Expense{
		{ExpenseID: "exp-1", GroupID: "group-1", PayerID: "alice", Amount: decimal.RequireFromString("10.00"), Participants: []string{"alice", "bob"}},
		{ExpenseID: "exp-2", GroupID: "group-1", PayerID: "bob", Amount: decimal.RequireFromString("5.00"), Participants: []string{"alice", "bob"}},
		{ExpenseID: "exp-3", GroupID: "group-1", PayerID: "alice", Amount: decimal.RequireFromString("7.50"), Participants: []string{"alice", "bob"}},
	}

	suite.mockGroupRepo.On("FindGroupMember", ctx, "group-1", "alice").Return(suite.activeMember("alice"), nil).Once()
	suite.mockExpenseRepo.On("ListExpensesByGroupID", ctx, "group-1").Return(expenses, nil).Once()
	// Repeated payers collapse into one batched lookup.
	suite.mockUserRepo.On("FindUsersByIDs", ctx, []string{"alice", "bob"}).
		Return(map[string]domain.User{
			"alice": {UserID: "alice", Name: "Alice"},
			"bob":   {UserID: "bob", Name: "Bob"},
		}, nil).Once()

	result, err := suite.service.ListGroupExpenses(ctx, "group-1", "alice")

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("Alice", result[0].PayerName)
	suite.Equal("Bob", result[1].PayerName)
	suite.Equal("Alice", result[2].PayerName)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestListGroupExpenses_LookupFailureKeepsListing() {
	ctx := context.Background()
	expenses := []domain.Expense{
		{ExpenseID: "exp-1", GroupID: "group-1", PayerID: "alice", Amount: decimal.RequireFromString("10.00"), Participants: []string{"alice", "bob"}},
	}

	suite.mockGroupRepo.On("FindGroupMember", ctx, "group-1", "alice").Return(suite.activeMember("alice"), nil).Once()
	suite.mockExpenseRepo.On("ListExpensesByGroupID", ctx, "group-1").Return(expenses, nil).Once()
	suite.mockUserRepo.On("FindUsersByIDs", ctx, []string{"alice"}).
		Return(map[string]domain.User(nil), errors.New("connection reset")).Once()

	result, err := suite.service.ListGroupExpenses(ctx, "group-1", "alice")

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Empty(result[0].PayerName)
}

func (suite *ExpenseServiceTestSuite) TestSettleShare_PersistsSettlement() {
	ctx := context.Background()
	expense := &domain.Expense{
		ExpenseID:    "exp-1",
		GroupID:      "group-1",
		Amount:       decimal.RequireFromString("20.00"),
		PayerID:      "alice",
		Participants: []string{"alice", "bob"},
	}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, "exp-1").Return(expense, nil).Once()
	suite.mockGroupRepo.On("FindGroupMember", ctx, "group-1", "bob").Return(suite.activeMember("bob"), nil).Once()
	suite.mockSettlementRepo.On("ListSettlementsByExpenseID", ctx, "exp-1").Return([]domain.Settlement{}, nil).Once()
	suite.mockSettlementRepo.On("SaveSettlement", ctx, mock.MatchedBy(func(s domain.Settlement) bool {
		return s.ExpenseID == "exp-1" && s.MemberID == "bob" && s.Paid && s.SettledBy == "bob"
	})).Return(nil).Once()

	err := suite.service.SettleShare(ctx, "exp-1", "bob", "bob")

	suite.Require().NoError(err)
	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestSettleShare_PayerOwnShareIsNoop() {
	ctx := context.Background()
	expense := &domain.Expense{
		ExpenseID:    "exp-1",
		GroupID:      "group-1",
		Amount:       decimal.RequireFromString("20.00"),
		PayerID:      "alice",
		Participants: []string{"alice", "bob"},
	}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, "exp-1").Return(expense, nil).Once()
	suite.mockGroupRepo.On("FindGroupMember", ctx, "group-1", "alice").Return(suite.activeMember("alice"), nil).Once()
	suite.mockSettlementRepo.On("ListSettlementsByExpenseID", ctx, "exp-1").Return([]domain.Settlement{}, nil).Once()

	err := suite.service.SettleShare(ctx, "exp-1", "alice", "alice")

	suite.Require().NoError(err)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "SaveSettlement", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestSettleShare_NonParticipantFails() {
	ctx := context.Background()
	expense := &domain.Expense{
		ExpenseID:    "exp-1",
		GroupID:      "group-1",
		Amount:       decimal.RequireFromString("20.00"),
		PayerID:      "alice",
		Participants: []string{"alice", "bob"},
	}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, "exp-1").Return(expense, nil).Once()
	suite.mockGroupRepo.On("FindGroupMember", ctx, "group-1", "carol").Return(suite.activeMember("carol"), nil).Once()
	suite.mockSettlementRepo.On("ListSettlementsByExpenseID", ctx, "exp-1").Return([]domain.Settlement{}, nil).Once()

	err := suite.service.SettleShare(ctx, "exp-1", "carol", "carol")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "SaveSettlement", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestSettleShare_AlreadyPaidIsIdempotent() {
	ctx := context.Background()
	settledAt := time.Now().Add(-time.Hour)
	expense := &domain.Expense{
		ExpenseID:    "exp-1",
		GroupID:      "group-1",
		Amount:       decimal.RequireFromString("20.00"),
		PayerID:      "alice",
		Participants: []string{"alice", "bob"},
	}
	existing := []domain.Settlement{{ExpenseID: "exp-1", MemberID: "bob", Paid: true, SettledAt: &settledAt}}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, "exp-1").Return(expense, nil).Once()
	suite.mockGroupRepo.On("FindGroupMember", ctx, "group-1", "bob").Return(suite.activeMember("bob"), nil).Once()
	suite.mockSettlementRepo.On("ListSettlementsByExpenseID", ctx, "exp-1").Return(existing, nil).Once()
	// Re-persisting the existing record keeps the original timestamp thanks
	// to the repository's conflict handling.
	suite.mockSettlementRepo.On("SaveSettlement", ctx, mock.MatchedBy(func(s domain.Settlement) bool {
		return s.MemberID == "bob" && s.SettledAt != nil && s.SettledAt.Equal(settledAt)
	})).Return(nil).Once()

	err := suite.service.SettleShare(ctx, "exp-1", "bob", "bob")

	suite.Require().NoError(err)
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_RequiresPayerOrAdmin() {
	ctx := context.Background()
	expense := &domain.Expense{
		ExpenseID:    "exp-1",
		GroupID:      "group-1",
		Amount:       decimal.RequireFromString("20.00"),
		PayerID:      "alice",
		Participants: []string{"alice", "bob"},
	}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, "exp-1").Return(expense, nil).Once()
	suite.mockGroupRepo.On("FindGroupMember", ctx, "group-1", "bob").Return(suite.activeMember("bob"), nil).Once()

	err := suite.service.DeleteExpense(ctx, "exp-1", "bob")

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "DeleteExpense", mock.Anything, mock.Anything)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
