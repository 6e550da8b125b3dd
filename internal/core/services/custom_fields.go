package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

var valueValidator = validator.New()

// ValidateCustomFields checks values against the owner's schema. Keys the schema does
// not define are passed through untouched.
func (s *schemaService) ValidateCustomFields(ctx context.Context, userID string, values map[string]any, requireAll bool) error {
	schema, err := s.schemaRepo.FindSchemaByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		s.LogError(ctx, err, "Failed to load schema for custom field validation", slog.String("user_id", userID))
		return fmt.Errorf("failed to load schema: %w", err)
	}

	for _, field := range schema.Fields {
		value, present := values[field.Key]
		if !present || isBlank(value) {
			if requireAll && field.Required {
				return apperrors.NewValidationError(fmt.Sprintf("Custom field '%s' is required", field.Label))
			}
			continue
		}
		if !valueMatchesType(field.Type, value) {
			return apperrors.NewValidationError(fmt.Sprintf("Custom field '%s' must be a valid %s", field.Label, field.Type))
		}
	}
	return nil
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}
	str, ok := value.(string)
	return ok && strings.TrimSpace(str) == ""
}

func valueMatchesType(t domain.FieldType, value any) bool {
	switch t {
	case domain.FieldTypeNumber:
		switch v := value.(type) {
		case float64, float32, int, int32, int64:
			return true
		case json.Number:
			_, err := v.Float64()
			return err == nil
		case string:
			_, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			return err == nil
		}
		return false
	case domain.FieldTypeBoolean:
		_, ok := value.(bool)
		return ok
	case domain.FieldTypeDate:
		str, ok := value.(string)
		if !ok {
			return false
		}
		_, err := parseDate(str)
		return err == nil
	case domain.FieldTypeEmail:
		str, ok := value.(string)
		return ok && valueValidator.Var(str, "email") == nil
	case domain.FieldTypeString, domain.FieldTypeMedia:
		_, ok := value.(string)
		return ok
	}
	return false
}
