package mapping

import (
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/models"
)

// ToModelFields converts domain fields to their stored shape. A nil slice becomes empty.
func ToModelFields(fields []domain.Field) []models.Field {
	out := make([]models.Field, len(fields))
	for i, f := range fields {
		out[i] = models.Field{
			Key:      f.Key,
			Label:    f.Label,
			Type:     string(f.Type),
			Required: f.Required,
		}
	}
	return out
}

// ToDomainFields converts stored fields to domain fields.
func ToDomainFields(fields []models.Field) []domain.Field {
	out := make([]domain.Field, len(fields))
	for i, f := range fields {
		out[i] = domain.Field{
			Key:      f.Key,
			Label:    f.Label,
			Type:     domain.FieldType(f.Type),
			Required: f.Required,
		}
	}
	return out
}

// ToModelSchema converts a domain Schema to a model Schema
func ToModelSchema(d domain.Schema) models.Schema {
	return models.Schema{
		SchemaID:    d.SchemaID,
		UserID:      d.UserID,
		Fields:      ToModelFields(d.Fields),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSchema converts a model Schema to a domain Schema
func ToDomainSchema(m models.Schema) domain.Schema {
	return domain.Schema{
		SchemaID:    m.SchemaID,
		UserID:      m.UserID,
		Fields:      ToDomainFields(m.Fields),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
