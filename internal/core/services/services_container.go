package services

import (
	portsrepo "github.com/SscSPs/expense_splitter_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_splitter_app/internal/core/ports/services"
	"github.com/SscSPs/expense_splitter_app/internal/platform/cache"
	"github.com/SscSPs/expense_splitter_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, balanceCache cache.Cache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Group = NewGroupService(repos.GroupRepo, repos.UserRepo)

	// Balance service comes before the expense service so expense and
	// settlement mutations can invalidate its cache.
	container.Balance = NewBalanceService(
		repos.GroupRepo,
		repos.ExpenseRepo,
		repos.SettlementRepo,
		balanceCache,
		cfg.BalanceCacheTTL,
	)

	container.Expense = NewExpenseService(
		repos.ExpenseRepo,
		repos.SettlementRepo,
		repos.GroupRepo,
		repos.UserRepo,
		WithBalanceInvalidator(container.Balance),
	)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleAuth = NewGoogleOAuthHandlerService(cfg, repos.UserRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.UserSvcFacade    = (*UserService)(nil)
	_ portssvc.GroupSvcFacade   = (*GroupService)(nil)
	_ portssvc.ExpenseSvcFacade = (*ExpenseService)(nil)
	_ portssvc.BalanceSvcFacade = (*BalanceService)(nil)
)
