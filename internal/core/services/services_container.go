package services

import (
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/core/ports/storage"
	"github.com/SscSPs/finance_tracker_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, objectStore storage.ObjectStore) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.Auth = NewAuthService(repos.UserRepo, container.Token)

	container.Schema = NewSchemaService(repos.SchemaRepo)

	// the schema service doubles as the custom field validator for transactions
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		objectStore,
		WithCustomFieldValidator(container.Schema),
		WithReportingLocation(cfg.ReportingLocation),
	)
	container.Statement = NewStatementService(repos.TransactionRepo, cfg.ReportingLocation)

	return container
}
