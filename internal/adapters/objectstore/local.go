package objectstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/core/ports/storage"
	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"github.com/spf13/afero"
)

// LocalStore writes attachments below rootDir and serves them from baseURL.
// It is meant for development; the server mounts rootDir as a static route.
type LocalStore struct {
	fs      afero.Fs
	rootDir string
	baseURL string
	folder  string
}

// NewLocalStore prepares rootDir/folder on fs.
func NewLocalStore(fs afero.Fs, rootDir, baseURL, folder string) (*LocalStore, error) {
	folder = strings.Trim(folder, "/")
	if err := fs.MkdirAll(filepath.Join(rootDir, filepath.FromSlash(folder)), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{
		fs:      fs,
		rootDir: rootDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		folder:  folder,
	}, nil
}

func (s *LocalStore) Upload(ctx context.Context, file domain.UploadFile) (*domain.StoredObject, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := utils.NewObjectKey(s.folder, extensionFor(file))
	if err != nil {
		return nil, err
	}
	if err := afero.WriteFile(s.fs, s.pathFor(key), file.Data, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", key, err)
	}
	return &domain.StoredObject{URL: s.baseURL + "/" + key, PublicID: key}, nil
}

func (s *LocalStore) Delete(ctx context.Context, publicID string) error {
	clean := path.Clean("/" + publicID)
	prefix := "/"
	if s.folder != "" {
		prefix = "/" + s.folder + "/"
	}
	if !strings.HasPrefix(clean, prefix) || clean == prefix {
		return fmt.Errorf("object %q is outside the upload folder", publicID)
	}
	err := s.fs.Remove(s.pathFor(strings.TrimPrefix(clean, "/")))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", publicID, err)
	}
	return nil
}

func (s *LocalStore) pathFor(key string) string {
	return filepath.Join(s.rootDir, filepath.FromSlash(key))
}

var _ storage.ObjectStore = (*LocalStore)(nil)
