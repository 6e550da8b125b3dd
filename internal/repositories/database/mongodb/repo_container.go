package mongodb

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ClientOptions returns the client options every repository in this package relies on:
// the decimal codec and map-shaped embedded documents for custom fields.
func ClientOptions(uri string, serverSelectionTimeout time.Duration) *options.ClientOptions {
	return options.Client().
		ApplyURI(uri).
		SetRegistry(NewRegistry()).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true}).
		SetServerSelectionTimeout(serverSelectionTimeout)
}

func NewRepositoryProvider(db *mongo.Database) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:        newMongoUserRepository(db),
		SchemaRepo:      newMongoSchemaRepository(db),
		TransactionRepo: newMongoTransactionRepository(db),
	}
}

// EnsureIndexes creates the unique and query indexes. It is safe to call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
		},
		schemasCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_user_id")},
		},
		transactionsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "transaction_date", Value: -1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "transaction_type", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "transaction_mode", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "category", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
