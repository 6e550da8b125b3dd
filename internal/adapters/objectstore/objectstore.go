// Package objectstore contains the attachment storage backends.
package objectstore

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/core/ports/storage"
	"github.com/SscSPs/finance_tracker_app/internal/platform/config"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

// New builds the object store selected by OBJECT_STORE_DRIVER.
func New(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error) {
	switch cfg.ObjectStoreDriver {
	case config.ObjectStoreCloudinary:
		return NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.ObjectStoreFolder)
	case config.ObjectStoreGCS:
		return NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile, cfg.ObjectStoreFolder)
	case config.ObjectStoreLocal:
		return NewLocalStore(afero.NewOsFs(), cfg.LocalUploadDir, cfg.LocalUploadBaseURL, cfg.ObjectStoreFolder)
	default:
		return nil, fmt.Errorf("unknown object store driver %q", cfg.ObjectStoreDriver)
	}
}

// extensionFor prefers the extension of the sniffed MIME type over the client file name.
func extensionFor(file domain.UploadFile) string {
	if m := mimetype.Lookup(file.ContentType); m != nil && m.Extension() != "" {
		return m.Extension()
	}
	ext := strings.ToLower(filepath.Ext(file.FileName))
	if len(ext) < 2 || len(ext) > 6 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
