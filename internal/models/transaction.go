package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attachment is the stored object-store descriptor.
type Attachment struct {
	URL          string `bson:"url" json:"url"`
	PublicID     string `bson:"public_id" json:"publicId"`
	OriginalName string `bson:"original_name,omitempty" json:"originalName,omitempty"`
	MimeType     string `bson:"mime_type,omitempty" json:"mimeType,omitempty"`
	Size         int64  `bson:"size,omitempty" json:"size,omitempty"`
}

// Transaction is the stored shape of a transaction record.
// Amount is encoded as Decimal128 in MongoDB and NUMERIC in PostgreSQL.
type Transaction struct {
	TransactionID   string          `bson:"_id" db:"transaction_id"`
	UserID          string          `bson:"user_id" db:"user_id"`
	Title           string          `bson:"title" db:"title"`
	Category        string          `bson:"category" db:"category"`
	TransactionType string          `bson:"transaction_type" db:"transaction_type"`
	TransactionMode string          `bson:"transaction_mode" db:"transaction_mode"`
	Amount          decimal.Decimal `bson:"amount" db:"amount"`
	TransactionDate time.Time       `bson:"transaction_date" db:"transaction_date"`
	Counterparty    string          `bson:"counterparty" db:"counterparty"`
	Remarks         string          `bson:"remarks" db:"remarks"`
	Active          bool            `bson:"active" db:"active"`
	Attachments     []Attachment    `bson:"attachments" db:"attachments"`
	CustomFields    map[string]any  `bson:"custom_fields" db:"custom_fields"`
	AuditFields     `bson:",inline"`
}
