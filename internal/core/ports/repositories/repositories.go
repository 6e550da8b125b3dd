package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Both the MongoDB and PostgreSQL drivers build one of these.
type RepositoryProvider struct {
	UserRepo        UserRepositoryFacade
	SchemaRepo      SchemaRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
}
