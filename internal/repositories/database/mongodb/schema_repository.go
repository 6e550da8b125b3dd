package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_app/internal/models"
	"github.com/SscSPs/finance_tracker_app/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoSchemaRepository struct {
	BaseRepository
}

func newMongoSchemaRepository(db *mongo.Database) portsrepo.SchemaRepositoryFacade {
	return &MongoSchemaRepository{BaseRepository{Collection: db.Collection(schemasCollection)}}
}

var _ portsrepo.SchemaRepositoryFacade = (*MongoSchemaRepository)(nil)

var returnUpdated = options.FindOneAndUpdate().SetReturnDocument(options.After)

func (r *MongoSchemaRepository) FindSchemaByUserID(ctx context.Context, userID string) (*domain.Schema, error) {
	var m models.Schema
	if err := r.Collection.FindOne(ctx, bson.D{{Key: "user_id", Value: userID}}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find schema for user %s: %w", userID, err)
	}
	schema := mapping.ToDomainSchema(m)
	return &schema, nil
}

func (r *MongoSchemaRepository) FindOrCreateSchema(ctx context.Context, schema domain.Schema) (*domain.Schema, error) {
	var m models.Schema
	err := r.Collection.FindOneAndUpdate(ctx,
		bson.D{{Key: "user_id", Value: schema.UserID}},
		bson.D{{Key: "$setOnInsert", Value: mapping.ToModelSchema(schema)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&m)
	if err != nil {
		// two concurrent upserts can race on the unique user_id index; the loser reads the winner's row
		if mongo.IsDuplicateKeyError(err) {
			return r.FindSchemaByUserID(ctx, schema.UserID)
		}
		return nil, fmt.Errorf("failed to upsert schema for user %s: %w", schema.UserID, err)
	}
	out := mapping.ToDomainSchema(m)
	return &out, nil
}

func (r *MongoSchemaRepository) AppendField(ctx context.Context, userID string, field domain.Field, updatedAt time.Time) (*domain.Schema, error) {
	modelField := mapping.ToModelFields([]domain.Field{field})[0]

	var m models.Schema
	err := r.Collection.FindOneAndUpdate(ctx,
		bson.D{
			{Key: "user_id", Value: userID},
			{Key: "fields.key", Value: bson.D{{Key: "$ne", Value: field.Key}}},
		},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "fields", Value: modelField}}},
			{Key: "$set", Value: bson.D{
				{Key: "last_updated_at", Value: updatedAt},
				{Key: "last_updated_by", Value: userID},
			}},
		},
		returnUpdated,
	).Decode(&m)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("failed to append schema field: %w", err)
		}
		// nothing matched: either the key exists or there is no schema
		if _, findErr := r.FindSchemaByUserID(ctx, userID); findErr != nil {
			return nil, findErr
		}
		return nil, fmt.Errorf("field %q: %w", field.Key, apperrors.ErrDuplicate)
	}
	schema := mapping.ToDomainSchema(m)
	return &schema, nil
}

func (r *MongoSchemaRepository) ReplaceFields(ctx context.Context, userID string, fields []domain.Field, updatedAt time.Time) (*domain.Schema, error) {
	var m models.Schema
	err := r.Collection.FindOneAndUpdate(ctx,
		bson.D{{Key: "user_id", Value: userID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "fields", Value: mapping.ToModelFields(fields)},
			{Key: "last_updated_at", Value: updatedAt},
			{Key: "last_updated_by", Value: userID},
		}}},
		returnUpdated,
	).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to replace schema fields: %w", err)
	}
	schema := mapping.ToDomainSchema(m)
	return &schema, nil
}
