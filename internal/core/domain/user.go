package domain

import "strings"

// User represents a user of the application in the domain.
type User struct {
	UserID       string `json:"id"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Empty when loaded through the public projection
	AuditFields
}

// NormalizeEmail lower-cases and trims an email so lookups and the unique index agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
