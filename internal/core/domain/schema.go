package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIncompleteField      = errors.New("key, label and type are required")
	ErrUnsupportedFieldType = errors.New("unsupported field type")
	ErrDuplicateFieldKey    = errors.New("duplicate field key")
)

// FieldError reports which field broke a schema rule. Err is one of the Err*Field* sentinels.
type FieldError struct {
	Field Field
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q (%s): %v", e.Field.Key, e.Field.Type, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// FieldType enumerates the value types a custom field can hold.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeDate    FieldType = "date"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeEmail   FieldType = "email"
	FieldTypeMedia   FieldType = "media"
)

// IsValid reports whether t is one of the supported field types.
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeString, FieldTypeNumber, FieldTypeDate, FieldTypeBoolean, FieldTypeEmail, FieldTypeMedia:
		return true
	}
	return false
}

// Field is a single custom field definition inside a user's schema.
type Field struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
}

// Normalize trims the key and label in place.
func (f *Field) Normalize() {
	f.Key = strings.TrimSpace(f.Key)
	f.Label = strings.TrimSpace(f.Label)
}

// Validate checks that the field is complete and its type is supported.
func (f Field) Validate() error {
	if f.Key == "" || f.Label == "" || f.Type == "" {
		return &FieldError{Field: f, Err: ErrIncompleteField}
	}
	if !f.Type.IsValid() {
		return &FieldError{Field: f, Err: ErrUnsupportedFieldType}
	}
	return nil
}

// Schema is the per-user collection of custom field definitions. Field keys are unique.
type Schema struct {
	SchemaID string  `json:"id"`
	UserID   string  `json:"userId"`
	Fields   []Field `json:"fields"`
	AuditFields
}

// HasField reports whether a field with exactly this key exists.
func (s Schema) HasField(key string) bool {
	_, ok := s.FieldByKey(key)
	return ok
}

// FieldByKey returns the field with the given key.
func (s Schema) FieldByKey(key string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// ValidateFields validates each field in order and rejects repeated keys.
func ValidateFields(fields []Field) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if err := f.Validate(); err != nil {
			return err
		}
		if _, dup := seen[f.Key]; dup {
			return &FieldError{Field: f, Err: ErrDuplicateFieldKey}
		}
		seen[f.Key] = struct{}{}
	}
	return nil
}
