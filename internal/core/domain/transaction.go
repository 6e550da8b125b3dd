package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether money came in (Credit) or went out (Debit).
type TransactionType string

const (
	Credit TransactionType = "Credit"
	Debit  TransactionType = "Debit"
)

// IsValid reports whether t is Credit or Debit.
func (t TransactionType) IsValid() bool {
	return t == Credit || t == Debit
}

// TransactionMode is the payment channel used for a transaction.
type TransactionMode string

const (
	ModeUPI    TransactionMode = "UPI"
	ModeCash   TransactionMode = "Cash"
	ModeCard   TransactionMode = "Card"
	ModeBank   TransactionMode = "Bank"
	ModeWallet TransactionMode = "Wallet"
)

// IsValid reports whether m is one of the supported modes.
func (m TransactionMode) IsValid() bool {
	switch m {
	case ModeUPI, ModeCash, ModeCard, ModeBank, ModeWallet:
		return true
	}
	return false
}

// Transaction is a single financial record owned by exactly one user.
type Transaction struct {
	TransactionID   string          `json:"id"`
	UserID          string          `json:"userId"` // Owner, never changes after creation
	Title           string          `json:"title"`
	Category        string          `json:"category"`
	TransactionType TransactionType `json:"transactionType"`
	TransactionMode TransactionMode `json:"transactionMode"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transactionDate"`
	Counterparty    string          `json:"counterparty"`
	Remarks         string          `json:"remarks"`
	Active          bool            `json:"active"`
	Attachments     []Attachment    `json:"attachments"`
	CustomFields    map[string]any  `json:"customFields"`
	AuditFields
}

// TransactionFilter narrows a transaction listing. Nil fields are not applied.
type TransactionFilter struct {
	TransactionType *TransactionType
	TransactionMode *TransactionMode
	Category        *string
	Counterparty    string // case-insensitive substring
	From            *time.Time
	To              *time.Time // inclusive
	ActiveOnly      bool
}

// MonthRange returns the first and last instant of the given calendar month in loc.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}
