package mongodb

import (
	"errors"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	usersCollection        = "users"
	schemasCollection      = "schemas"
	transactionsCollection = "transactions"
)

// BaseRepository provides common functionality for all MongoDB repositories
type BaseRepository struct {
	Collection *mongo.Collection
}

// mapError converts driver errors into apperrors sentinels.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperrors.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return apperrors.ErrDuplicate
	}
	return err
}
