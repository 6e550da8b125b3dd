package models

// Field is the stored shape of one custom field definition.
type Field struct {
	Key      string `bson:"key" json:"key"`
	Label    string `bson:"label" json:"label"`
	Type     string `bson:"type" json:"type"`
	Required bool   `bson:"required" json:"required"`
}

// Schema is the stored per-user custom field schema. Fields is a JSONB column in PostgreSQL.
type Schema struct {
	SchemaID    string  `bson:"_id" db:"schema_id"`
	UserID      string  `bson:"user_id" db:"user_id"`
	Fields      []Field `bson:"fields" db:"fields"`
	AuditFields `bson:",inline"`
}
