package services

import (
	"context"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions.
type TransactionReaderSvc interface {
	GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for transactions, including attachment handling.
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, userID string, req dto.TransactionRequest, files []domain.UploadFile) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.TransactionRequest, files []domain.UploadFile) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// TransactionLifecycleSvc defines soft-delete operations.
type TransactionLifecycleSvc interface {
	ArchiveTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	RestoreTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	TransactionLifecycleSvc
}
