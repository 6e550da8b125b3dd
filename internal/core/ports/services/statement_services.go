package services

import (
	"context"

	"github.com/SscSPs/finance_tracker_app/internal/dto"
)

// StatementSvc renders transaction statements.
type StatementSvc interface {
	// BuildStatement renders the transactions matching params as a PDF document.
	BuildStatement(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]byte, error)
}
