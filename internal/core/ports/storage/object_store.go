package storage

import (
	"context"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
)

// ObjectStore uploads attachment bytes and deletes them by their store identifier.
type ObjectStore interface {
	// Upload stores the file and returns its public URL and identifier.
	Upload(ctx context.Context, file domain.UploadFile) (*domain.StoredObject, error)

	// Delete removes the object with the given identifier.
	Delete(ctx context.Context, publicID string) error
}
