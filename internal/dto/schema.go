package dto

import "github.com/SscSPs/finance_tracker_app/internal/core/domain"

// FieldRequest describes one custom field in a schema request.
type FieldRequest struct {
	Key      string `json:"key" example:"invoiceNo"`
	Label    string `json:"label" example:"Invoice number"`
	Type     string `json:"type" binding:"omitempty,fieldtype" example:"string"`
	Required bool   `json:"required"`
}

// ToDomain converts the request into a trimmed domain.Field.
func (r FieldRequest) ToDomain() domain.Field {
	f := domain.Field{
		Key:      r.Key,
		Label:    r.Label,
		Type:     domain.FieldType(r.Type),
		Required: r.Required,
	}
	f.Normalize()
	return f
}

// AddFieldRequest is the body of POST /api/schema/add.
type AddFieldRequest = FieldRequest

// UpdateSchemaRequest is the body of PUT /api/schema/update. A nil Fields means the key was absent.
type UpdateSchemaRequest struct {
	Fields *[]FieldRequest `json:"fields"`
}

// SchemaResponse is the JSON shape of a user's schema.
type SchemaResponse struct {
	ID     string         `json:"id"`
	UserID string         `json:"userId"`
	Fields []domain.Field `json:"fields"`
}

func ToSchemaResponse(s *domain.Schema) SchemaResponse {
	fields := s.Fields
	if fields == nil {
		fields = []domain.Field{}
	}
	return SchemaResponse{
		ID:     s.SchemaID,
		UserID: s.UserID,
		Fields: fields,
	}
}
