package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
)

// SchemaReader defines read operations for custom field schemas.
type SchemaReader interface {
	// FindSchemaByUserID returns apperrors.ErrNotFound when the user has no schema yet.
	FindSchemaByUserID(ctx context.Context, userID string) (*domain.Schema, error)
}

// SchemaWriter defines write operations for custom field schemas.
type SchemaWriter interface {
	// FindOrCreateSchema atomically returns the user's schema, inserting the given empty one if absent.
	FindOrCreateSchema(ctx context.Context, schema domain.Schema) (*domain.Schema, error)

	// AppendField adds a field unless its key already exists (apperrors.ErrDuplicate).
	AppendField(ctx context.Context, userID string, field domain.Field, updatedAt time.Time) (*domain.Schema, error)

	// ReplaceFields swaps the whole field list. Returns apperrors.ErrNotFound when there is no schema.
	ReplaceFields(ctx context.Context, userID string, fields []domain.Field, updatedAt time.Time) (*domain.Schema, error)
}

// SchemaRepositoryFacade combines all schema repository interfaces.
type SchemaRepositoryFacade interface {
	SchemaReader
	SchemaWriter
}
