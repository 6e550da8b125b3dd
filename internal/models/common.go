package models

import "time"

// AuditFields mirrors domain.AuditFields for persistence.
type AuditFields struct {
	CreatedAt     time.Time `bson:"created_at" db:"created_at"`
	CreatedBy     string    `bson:"created_by" db:"created_by"`
	LastUpdatedAt time.Time `bson:"last_updated_at" db:"last_updated_at"`
	LastUpdatedBy string    `bson:"last_updated_by" db:"last_updated_by"`
}
