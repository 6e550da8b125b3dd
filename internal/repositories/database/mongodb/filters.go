package mongodb

import (
	"regexp"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// transactionListFilter builds the owner-scoped query document for a listing.
func transactionListFilter(userID string, f domain.TransactionFilter) bson.D {
	filter := bson.D{{Key: "user_id", Value: userID}}
	if f.ActiveOnly {
		filter = append(filter, bson.E{Key: "active", Value: true})
	}
	if f.TransactionType != nil {
		filter = append(filter, bson.E{Key: "transaction_type", Value: string(*f.TransactionType)})
	}
	if f.TransactionMode != nil {
		filter = append(filter, bson.E{Key: "transaction_mode", Value: string(*f.TransactionMode)})
	}
	if f.Category != nil {
		filter = append(filter, bson.E{Key: "category", Value: *f.Category})
	}
	if f.Counterparty != "" {
		// user input is matched literally
		filter = append(filter, bson.E{Key: "counterparty", Value: primitive.Regex{
			Pattern: regexp.QuoteMeta(f.Counterparty),
			Options: "i",
		}})
	}
	if f.From != nil || f.To != nil {
		dateRange := bson.D{}
		if f.From != nil {
			dateRange = append(dateRange, bson.E{Key: "$gte", Value: *f.From})
		}
		if f.To != nil {
			dateRange = append(dateRange, bson.E{Key: "$lte", Value: *f.To})
		}
		filter = append(filter, bson.E{Key: "transaction_date", Value: dateRange})
	}
	return filter
}

// transactionSort orders listings newest first; created_at breaks ties between same-day records.
var transactionSort = bson.D{
	{Key: "transaction_date", Value: -1},
	{Key: "created_at", Value: -1},
}
