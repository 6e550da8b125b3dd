package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/google/uuid"
)

const (
	msgFieldIncomplete = "Key, label and type are required"
	msgFieldExists     = "Field already exists"
	msgFieldsNotArray  = "Fields must be an array"
	msgSchemaNotFound  = "Schema not found"
)

// schemaService implements SchemaSvcFacade.
type schemaService struct {
	BaseService
	schemaRepo portsrepo.SchemaRepositoryFacade
}

// NewSchemaService creates a new schemaService.
func NewSchemaService(schemaRepo portsrepo.SchemaRepositoryFacade) portssvc.SchemaSvcFacade {
	return &schemaService{schemaRepo: schemaRepo}
}

// GetSchema returns the user's schema, creating an empty one on first access.
func (s *schemaService) GetSchema(ctx context.Context, userID string) (*domain.Schema, error) {
	now := time.Now().UTC()
	empty := domain.Schema{
		SchemaID:    uuid.NewString(),
		UserID:      userID,
		Fields:      []domain.Field{},
		AuditFields: domain.NewAuditFields(userID, now),
	}

	schema, err := s.schemaRepo.FindOrCreateSchema(ctx, empty)
	if err != nil {
		s.LogError(ctx, err, "Failed to find or create schema", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	return schema, nil
}

// AddField appends one field to the user's schema.
func (s *schemaService) AddField(ctx context.Context, userID string, req dto.AddFieldRequest) (*domain.Schema, error) {
	field := req.ToDomain()
	if err := field.Validate(); err != nil {
		return nil, fieldValidationError(err)
	}

	schema, err := s.GetSchema(ctx, userID)
	if err != nil {
		return nil, err
	}
	if schema.HasField(field.Key) {
		return nil, apperrors.NewConflictError(msgFieldExists)
	}

	updated, err := s.schemaRepo.AppendField(ctx, userID, field, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			return nil, apperrors.NewConflictError(msgFieldExists)
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, apperrors.NewNotFoundError(msgSchemaNotFound)
		}
		s.LogError(ctx, err, "Failed to append schema field", slog.String("user_id", userID), slog.String("key", field.Key))
		return nil, fmt.Errorf("failed to add field: %w", err)
	}

	s.LogInfo(ctx, "Schema field added", slog.String("key", field.Key), slog.String("type", string(field.Type)))
	return updated, nil
}

// UpdateSchema replaces the whole field list.
func (s *schemaService) UpdateSchema(ctx context.Context, userID string, req dto.UpdateSchemaRequest) (*domain.Schema, error) {
	if req.Fields == nil {
		return nil, apperrors.NewValidationError(msgFieldsNotArray)
	}

	fields := make([]domain.Field, 0, len(*req.Fields))
	for _, fr := range *req.Fields {
		fields = append(fields, fr.ToDomain())
	}
	if err := domain.ValidateFields(fields); err != nil {
		return nil, fieldValidationError(err)
	}

	updated, err := s.schemaRepo.ReplaceFields(ctx, userID, fields, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(msgSchemaNotFound)
		}
		s.LogError(ctx, err, "Failed to replace schema fields", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update schema: %w", err)
	}

	s.LogInfo(ctx, "Schema replaced", slog.Int("field_count", len(fields)))
	return updated, nil
}

// fieldValidationError turns a domain.FieldError into the client-facing validation message.
func fieldValidationError(err error) error {
	var fe *domain.FieldError
	if !errors.As(err, &fe) {
		return apperrors.NewValidationError(err.Error())
	}
	switch {
	case errors.Is(fe, domain.ErrUnsupportedFieldType):
		return apperrors.NewValidationError(fmt.Sprintf("Invalid field type: %s", fe.Field.Type))
	case errors.Is(fe, domain.ErrDuplicateFieldKey):
		return apperrors.NewValidationError(fmt.Sprintf("Duplicate field key: %s", fe.Field.Key))
	default:
		return apperrors.NewValidationError(msgFieldIncomplete)
	}
}

var _ portssvc.SchemaSvcFacade = (*schemaService)(nil)
