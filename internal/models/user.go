package models

// User is the stored shape of an account. PasswordHash is omitted by the public projection.
type User struct {
	UserID       string `bson:"_id" db:"user_id"`
	Name         string `bson:"name" db:"name"`
	Email        string `bson:"email" db:"email"`
	PasswordHash string `bson:"password_hash,omitempty" db:"password_hash"`
	AuditFields  `bson:",inline"`
}
