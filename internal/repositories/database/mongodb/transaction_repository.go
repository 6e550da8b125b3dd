package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_app/internal/models"
	"github.com/SscSPs/finance_tracker_app/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoTransactionRepository struct {
	BaseRepository
}

func newMongoTransactionRepository(db *mongo.Database) portsrepo.TransactionRepositoryFacade {
	return &MongoTransactionRepository{BaseRepository{Collection: db.Collection(transactionsCollection)}}
}

var _ portsrepo.TransactionRepositoryFacade = (*MongoTransactionRepository)(nil)

func ownedBy(userID, transactionID string) bson.D {
	return bson.D{
		{Key: "_id", Value: transactionID},
		{Key: "user_id", Value: userID},
	}
}

func (r *MongoTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	var m models.Transaction
	if err := r.Collection.FindOne(ctx, ownedBy(userID, transactionID)).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

func (r *MongoTransactionRepository) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, int64, error) {
	query := transactionListFilter(userID, filter)

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	opts := options.Find().
		SetSort(transactionSort).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer cursor.Close(ctx)

	modelTxns := []models.Transaction{}
	if err := cursor.All(ctx, &modelTxns); err != nil {
		return nil, 0, fmt.Errorf("failed to decode transactions: %w", err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns), total, nil
}

func (r *MongoTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	if _, err := r.Collection.InsertOne(ctx, mapping.ToModelTransaction(txn)); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", mapError(err))
	}
	return nil
}

func (r *MongoTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: m.Title},
		{Key: "category", Value: m.Category},
		{Key: "transaction_type", Value: m.TransactionType},
		{Key: "transaction_mode", Value: m.TransactionMode},
		{Key: "amount", Value: m.Amount},
		{Key: "transaction_date", Value: m.TransactionDate},
		{Key: "counterparty", Value: m.Counterparty},
		{Key: "remarks", Value: m.Remarks},
		{Key: "attachments", Value: m.Attachments},
		{Key: "custom_fields", Value: m.CustomFields},
		{Key: "last_updated_at", Value: m.LastUpdatedAt},
		{Key: "last_updated_by", Value: m.LastUpdatedBy},
	}}}

	result, err := r.Collection.UpdateOne(ctx, ownedBy(m.UserID, m.TransactionID), update)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MongoTransactionRepository) SetTransactionActive(ctx context.Context, userID, transactionID string, active bool, audit domain.AuditFields) error {
	result, err := r.Collection.UpdateOne(ctx, ownedBy(userID, transactionID), bson.D{{Key: "$set", Value: bson.D{
		{Key: "active", Value: active},
		{Key: "last_updated_at", Value: audit.LastUpdatedAt},
		{Key: "last_updated_by", Value: audit.LastUpdatedBy},
	}}})
	if err != nil {
		return fmt.Errorf("failed to set active flag on transaction %s: %w", transactionID, err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MongoTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	result, err := r.Collection.DeleteOne(ctx, ownedBy(userID, transactionID))
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
