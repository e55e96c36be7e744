package repositories

// RepositoryProvider bundles all repository facades for dependency injection.
type RepositoryProvider struct {
	UserRepo       UserRepositoryFacade
	GroupRepo      GroupRepositoryFacade
	ExpenseRepo    ExpenseRepositoryFacade
	SettlementRepo SettlementRepositoryFacade
}
