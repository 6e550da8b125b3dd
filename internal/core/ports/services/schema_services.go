package services

import (
	"context"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
)

// SchemaReaderSvc defines read operations for custom field schemas.
type SchemaReaderSvc interface {
	// GetSchema returns the user's schema, creating an empty one on first access.
	GetSchema(ctx context.Context, userID string) (*domain.Schema, error)
}

// SchemaWriterSvc defines write operations for custom field schemas.
type SchemaWriterSvc interface {
	AddField(ctx context.Context, userID string, req dto.AddFieldRequest) (*domain.Schema, error)
	UpdateSchema(ctx context.Context, userID string, req dto.UpdateSchemaRequest) (*domain.Schema, error)
}

// CustomFieldValidatorSvc checks transaction custom field values against the owner's schema.
type CustomFieldValidatorSvc interface {
	// ValidateCustomFields enforces required fields only when requireAll is set.
	ValidateCustomFields(ctx context.Context, userID string, values map[string]any, requireAll bool) error
}

// SchemaSvcFacade combines all schema service interfaces.
type SchemaSvcFacade interface {
	SchemaReaderSvc
	SchemaWriterSvc
	CustomFieldValidatorSvc
}
