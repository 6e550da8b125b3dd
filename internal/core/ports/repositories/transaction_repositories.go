package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
)

// TransactionReader defines owner-scoped read operations for transactions.
type TransactionReader interface {
	// FindTransactionByID returns the record only if userID owns it, regardless of the active flag.
	FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns one page sorted by transaction date descending, plus the total match count.
	ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, int64, error)
}

// TransactionWriter defines owner-scoped write operations for transactions.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction overwrites every mutable field of the owned record in a single write.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// SetTransactionActive toggles the soft-delete marker.
	SetTransactionActive(ctx context.Context, userID, transactionID string, active bool, audit domain.AuditFields) error

	// DeleteTransaction removes the owned record permanently.
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
