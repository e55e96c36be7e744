package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/expense_splitter_app/internal/core/domain"
	"github.com/SscSPs/expense_splitter_app/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error) {
	args := m.Called(ctx, userIDs)
	var users map[string]domain.User
	if args.Get(0) != nil {
		users = args.Get(0).(map[string]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock GroupRepository ---

type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	args := m.Called(ctx, groupID)
	var group *domain.Group
	if args.Get(0) != nil {
		group = args.Get(0).(*domain.Group)
	}
	return group, args.Error(1)
}

func (m *MockGroupRepository) ListGroupsByUserID(ctx context.Context, userID string) ([]domain.Group, error) {
	args := m.Called(ctx, userID)
	var groups []domain.Group
	if args.Get(0) != nil {
		groups = args.Get(0).([]domain.Group)
	}
	return groups, args.Error(1)
}

func (m *MockGroupRepository) ListGroupMembers(ctx context.Context, groupID string) ([]domain.GroupMember, error) {
	args := m.Called(ctx, groupID)
	var members []domain.GroupMember
	if args.Get(0) != nil {
		members = args.Get(0).([]domain.GroupMember)
	}
	return members, args.Error(1)
}

func (m *MockGroupRepository) FindGroupMember(ctx context.Context, groupID string, userID string) (*domain.GroupMember, error) {
	args := m.Called(ctx, groupID, userID)
	var member *domain.GroupMember
	if args.Get(0) != nil {
		member = args.Get(0).(*domain.GroupMember)
	}
	return member, args.Error(1)
}

func (m *MockGroupRepository) SaveGroup(ctx context.Context, group domain.Group, creator domain.GroupMember) error {
	args := m.Called(ctx, group, creator)
	return args.Error(0)
}

func (m *MockGroupRepository) AddGroupMember(ctx context.Context, member domain.GroupMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockGroupRepository) UpdateGroupMemberStatus(ctx context.Context, groupID string, userID string, status domain.GroupMemberStatus) error {
	args := m.Called(ctx, groupID, userID, status)
	return args.Error(0)
}

// --- Mock ExpenseRepository ---

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	var expense *domain.Expense
	if args.Get(0) != nil {
		expense = args.Get(0).(*domain.Expense)
	}
	return expense, args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByGroupID(ctx context.Context, groupID string) ([]domain.Expense, error) {
	args := m.Called(ctx, groupID)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	return expenses, args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByUserID(ctx context.Context, userID string, before *time.Time, limit int) ([]domain.Expense, error) {
	args := m.Called(ctx, userID, before, limit)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	return expenses, args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

// --- Mock SettlementRepository ---

type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) ListSettlementsByGroupID(ctx context.Context, groupID string) ([]domain.Settlement, error) {
	args := m.Called(ctx, groupID)
	var settlements []domain.Settlement
	if args.Get(0) != nil {
		settlements = args.Get(0).([]domain.Settlement)
	}
	return settlements, args.Error(1)
}

func (m *MockSettlementRepository) ListSettlementsByExpenseID(ctx context.Context, expenseID string) ([]domain.Settlement, error) {
	args := m.Called(ctx, expenseID)
	var settlements []domain.Settlement
	if args.Get(0) != nil {
		settlements = args.Get(0).([]domain.Settlement)
	}
	return settlements, args.Error(1)
}

func (m *MockSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) error {
	args := m.Called(ctx, settlement)
	return args.Error(0)
}

// --- In-memory cache for balance tests ---

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.entries[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return val, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.deletes++
	return nil
}

func (c *memoryCache) Close() error { return nil }
