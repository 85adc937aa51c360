package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
	portsstorage "github.com/hroffice/hroffice_backend/internal/core/ports/storage"
)

func newTestStore(t *testing.T) *LocalFileStorage {
	t.Helper()
	store, err := NewLocalFileStorage(t.TempDir(), "http://localhost:8080/", []byte("test-secret"))
	require.NoError(t, err)
	return store
}

func TestNewLocalFileStorage_RequiresSecret(t *testing.T) {
	_, err := NewLocalFileStorage(t.TempDir(), "http://localhost:8080", nil)
	assert.Error(t, err)
}

func TestPutStatDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	info, err := store.PutObject(ctx, []byte("receipt bytes"), portsstorage.ObjectMetadata{FileName: "gas.jpg"})
	require.NoError(t, err)
	assert.NotEmpty(t, info.FileRef)
	assert.True(t, strings.HasSuffix(info.FileRef, ".jpg"), "fileRef keeps the extension, got %s", info.FileRef)
	assert.Equal(t, int64(len("receipt bytes")), info.Size)

	stat, err := store.StatObject(ctx, info.FileRef)
	require.NoError(t, err)
	assert.Equal(t, info.Size, stat.Size)

	require.NoError(t, store.DeleteObject(ctx, info.FileRef))
	_, err = store.StatObject(ctx, info.FileRef)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Deleting again must not fail; cleanup may race a previous cleanup.
	assert.NoError(t, store.DeleteObject(ctx, info.FileRef))
}

func TestPutObject_UniqueRefs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	a, err := store.PutObject(ctx, []byte("one"), portsstorage.ObjectMetadata{FileName: "same.pdf"})
	require.NoError(t, err)
	b, err := store.PutObject(ctx, []byte("two"), portsstorage.ObjectMetadata{FileName: "same.pdf"})
	require.NoError(t, err)
	assert.NotEqual(t, a.FileRef, b.FileRef, "same upload name must never overwrite")
}

func TestObjectPath_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, ref := range []string{"", "../etc/passwd", "a/b", `a\b`, "..", "x..y"} {
		_, err := store.StatObject(ctx, ref)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "ref %q must be rejected", ref)
	}
}

func TestSignedURL_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	info, err := store.PutObject(ctx, []byte("x"), portsstorage.ObjectMetadata{FileName: "r.png"})
	require.NoError(t, err)

	signed, err := store.SignedURL(ctx, info.FileRef, 15*time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(signed, "http://localhost:8080/receipts/"), "got %s", signed)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	expires := u.Query().Get("expires")
	sig := u.Query().Get("sig")

	assert.NoError(t, store.VerifySignature(info.FileRef, expires, sig))

	// Tampering with any component invalidates the link.
	assert.ErrorIs(t, store.VerifySignature("other-ref", expires, sig), apperrors.ErrForbidden)
	assert.ErrorIs(t, store.VerifySignature(info.FileRef, expires, "deadbeef"), apperrors.ErrForbidden)
	assert.ErrorIs(t, store.VerifySignature(info.FileRef, "not-a-number", sig), apperrors.ErrValidation)
}

func TestSignedURL_MissingObject(t *testing.T) {
	store := newTestStore(t)
	_, err := store.SignedURL(context.Background(), "no-such-object.png", time.Minute)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestVerifySignature_Expired(t *testing.T) {
	store := newTestStore(t)
	expiresAt := time.Now().Add(-time.Minute).Unix()
	sig := store.sign("some-ref", expiresAt)
	err := store.VerifySignature("some-ref", fmt.Sprintf("%d", expiresAt), sig)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
