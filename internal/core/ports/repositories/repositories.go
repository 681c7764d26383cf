package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Instances are only valid inside the UnitOfWork that received them.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
}
