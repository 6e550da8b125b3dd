package objectstore

import (
	"context"
	"strings"
	"testing"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*LocalStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store, err := NewLocalStore(fs, "/data/uploads", "/uploads/", "transactions")
	require.NoError(t, err)
	return store, fs
}

func TestLocalStore_UploadWritesFileAndReturnsURL(t *testing.T) {
	store, fs := newTestStore(t)

	obj, err := store.Upload(context.Background(), domain.UploadFile{
		FileName:    "receipt.PDF",
		ContentType: "application/pdf",
		Size:        9,
		Data:        []byte("%PDF-1.4\n"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(obj.PublicID, "transactions/"))
	assert.True(t, strings.HasSuffix(obj.PublicID, ".pdf"))
	assert.Equal(t, "/uploads/"+obj.PublicID, obj.URL)

	data, err := afero.ReadFile(fs, "/data/uploads/"+obj.PublicID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4\n", string(data))
}

func TestLocalStore_UploadGeneratesDistinctKeys(t *testing.T) {
	store, _ := newTestStore(t)
	file := domain.UploadFile{FileName: "a.png", ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}

	first, err := store.Upload(context.Background(), file)
	require.NoError(t, err)
	second, err := store.Upload(context.Background(), file)
	require.NoError(t, err)

	assert.NotEqual(t, first.PublicID, second.PublicID)
}

func TestLocalStore_DeleteRemovesFile(t *testing.T) {
	store, fs := newTestStore(t)
	obj, err := store.Upload(context.Background(), domain.UploadFile{FileName: "a.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}})
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), obj.PublicID))

	exists, err := afero.Exists(fs, "/data/uploads/"+obj.PublicID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStore_DeleteMissingObjectIsNotAnError(t *testing.T) {
	store, _ := newTestStore(t)
	assert.NoError(t, store.Delete(context.Background(), "transactions/does-not-exist.pdf"))
}

func TestLocalStore_DeleteRejectsPathsOutsideFolder(t *testing.T) {
	store, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, "/data/uploads/secret.txt", []byte("x"), 0o644))

	err := store.Delete(context.Background(), "transactions/../secret.txt")
	assert.Error(t, err)

	exists, _ := afero.Exists(fs, "/data/uploads/secret.txt")
	assert.True(t, exists)
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".png", extensionFor(domain.UploadFile{ContentType: "image/png"}))
	assert.Equal(t, ".pdf", extensionFor(domain.UploadFile{ContentType: "application/x-unknown", FileName: "scan.PDF"}))
	assert.Equal(t, "", extensionFor(domain.UploadFile{ContentType: "application/x-unknown", FileName: "evil.p/hp"}))
}
