package mongodb

import (
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTransactionListFilter_OwnerOnly(t *testing.T) {
	got := transactionListFilter("user-1", domain.TransactionFilter{})
	assert.Equal(t, bson.D{{Key: "user_id", Value: "user-1"}}, got)
}

func TestTransactionListFilter_AllCriteria(t *testing.T) {
	txnType := domain.Credit
	mode := domain.ModeCard
	category := "Food"
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 29, 23, 59, 59, 999e6, time.UTC)

	got := transactionListFilter("user-1", domain.TransactionFilter{
		TransactionType: &txnType,
		TransactionMode: &mode,
		Category:        &category,
		Counterparty:    "acme",
		From:            &from,
		To:              &to,
		ActiveOnly:      true,
	})

	want := bson.D{
		{Key: "user_id", Value: "user-1"},
		{Key: "active", Value: true},
		{Key: "transaction_type", Value: "Credit"},
		{Key: "transaction_mode", Value: "Card"},
		{Key: "category", Value: "Food"},
		{Key: "counterparty", Value: primitive.Regex{Pattern: "acme", Options: "i"}},
		{Key: "transaction_date", Value: bson.D{
			{Key: "$gte", Value: from},
			{Key: "$lte", Value: to},
		}},
	}
	assert.Equal(t, want, got)
}

func TestTransactionListFilter_EscapesCounterpartyRegex(t *testing.T) {
	got := transactionListFilter("u", domain.TransactionFilter{Counterparty: "a.b*(c)"})

	re, ok := got[1].Value.(primitive.Regex)
	assert.True(t, ok)
	assert.Equal(t, `a\.b\*\(c\)`, re.Pattern)
}

func TestTransactionListFilter_OpenEndedRange(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := transactionListFilter("u", domain.TransactionFilter{From: &from})

	assert.Equal(t, bson.E{Key: "transaction_date", Value: bson.D{{Key: "$gte", Value: from}}}, got[1])
}
