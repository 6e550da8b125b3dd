package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/core/ports/storage"
	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gcs "google.golang.org/api/storage/v1"
)

const gcsPublicBaseURL = "https://storage.googleapis.com"

// GCSStore keeps attachments in a Google Cloud Storage bucket.
type GCSStore struct {
	svc    *gcs.Service
	bucket string
	folder string
}

// NewGCSStore authenticates with credentialsFile when set, otherwise with
// Application Default Credentials.
func NewGCSStore(ctx context.Context, bucket, credentialsFile, folder string) (*GCSStore, error) {
	if bucket == "" {
		return nil, errors.New("gcs bucket is not configured")
	}

	var opt option.ClientOption
	if credentialsFile != "" {
		opt = option.WithCredentialsFile(credentialsFile)
	} else {
		creds, err := google.FindDefaultCredentials(ctx, gcs.DevstorageReadWriteScope)
		if err != nil {
			return nil, fmt.Errorf("failed to find default gcs credentials: %w", err)
		}
		opt = option.WithCredentials(creds)
	}

	svc, err := gcs.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcs client: %w", err)
	}
	return &GCSStore{svc: svc, bucket: bucket, folder: folder}, nil
}

func (s *GCSStore) Upload(ctx context.Context, file domain.UploadFile) (*domain.StoredObject, error) {
	name, err := utils.NewObjectKey(s.folder, extensionFor(file))
	if err != nil {
		return nil, err
	}

	obj, err := s.svc.Objects.Insert(s.bucket, &gcs.Object{
		Name:        name,
		ContentType: file.ContentType,
		Metadata:    map[string]string{"originalName": file.FileName},
	}).Media(bytes.NewReader(file.Data), googleapi.ContentType(file.ContentType)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("gcs insert %s: %w", name, err)
	}

	return &domain.StoredObject{
		URL:      gcsPublicBaseURL + "/" + s.bucket + "/" + (&url.URL{Path: obj.Name}).EscapedPath(),
		PublicID: obj.Name,
	}, nil
}

func (s *GCSStore) Delete(ctx context.Context, publicID string) error {
	err := s.svc.Objects.Delete(s.bucket, publicID).Context(ctx).Do()
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("gcs delete %s: %w", publicID, err)
	}
	return nil
}

var _ storage.ObjectStore = (*GCSStore)(nil)
