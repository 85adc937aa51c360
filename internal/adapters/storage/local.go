// Package storage provides the filesystem-backed receipt store. Objects are
// addressed by an opaque fileRef and downloaded through HMAC-signed, expiring
// URLs so receipt paths are never guessable from metadata alone.
package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hroffice/hroffice_backend/internal/apperrors"
	portsstorage "github.com/hroffice/hroffice_backend/internal/core/ports/storage"
)

// LocalFileStorage implements ReceiptStorage on a local directory.
type LocalFileStorage struct {
	baseDir       string
	baseURL       string
	signingSecret []byte
}

// NewLocalFileStorage creates the store rooted at baseDir. baseURL is the
// public prefix signed download links are built on.
func NewLocalFileStorage(baseDir, baseURL string, signingSecret []byte) (*LocalFileStorage, error) {
	if len(signingSecret) == 0 {
		return nil, fmt.Errorf("receipt storage signing secret must not be empty")
	}
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create receipt storage dir %s: %w", baseDir, err)
	}
	return &LocalFileStorage{
		baseDir:       baseDir,
		baseURL:       strings.TrimRight(baseURL, "/"),
		signingSecret: signingSecret,
	}, nil
}

var _ portsstorage.ReceiptStorage = (*LocalFileStorage)(nil)

// objectPath resolves a fileRef to a path inside baseDir, rejecting refs that
// would escape it.
func (s *LocalFileStorage) objectPath(fileRef string) (string, error) {
	if fileRef == "" || strings.ContainsAny(fileRef, "/\\") || strings.Contains(fileRef, "..") {
		return "", fmt.Errorf("%w: malformed file reference", apperrors.ErrValidation)
	}
	path := filepath.Join(s.baseDir, fileRef)
	if !strings.HasPrefix(filepath.Clean(path), filepath.Clean(s.baseDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: malformed file reference", apperrors.ErrValidation)
	}
	return path, nil
}

// PutObject writes the content under a fresh opaque name. The original file
// name only contributes its extension, so uploads cannot collide or overwrite.
func (s *LocalFileStorage) PutObject(ctx context.Context, content []byte, meta portsstorage.ObjectMetadata) (portsstorage.ObjectInfo, error) {
	ext := strings.ToLower(filepath.Ext(meta.FileName))
	if len(ext) > 10 {
		ext = ""
	}
	fileRef := uuid.NewString() + ext

	path, err := s.objectPath(fileRef)
	if err != nil {
		return portsstorage.ObjectInfo{}, err
	}
	if err := os.WriteFile(path, content, 0o640); err != nil {
		return portsstorage.ObjectInfo{}, fmt.Errorf("failed to write receipt object: %w", err)
	}

	contentType := meta.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}
	return portsstorage.ObjectInfo{
		FileRef:     fileRef,
		Size:        int64(len(content)),
		ContentType: contentType,
	}, nil
}

// StatObject confirms the object exists and reports its size.
func (s *LocalFileStorage) StatObject(ctx context.Context, fileRef string) (portsstorage.ObjectInfo, error) {
	path, err := s.objectPath(fileRef)
	if err != nil {
		return portsstorage.ObjectInfo{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return portsstorage.ObjectInfo{}, fmt.Errorf("%w: receipt object %s", apperrors.ErrNotFound, fileRef)
		}
		return portsstorage.ObjectInfo{}, fmt.Errorf("failed to stat receipt object %s: %w", fileRef, err)
	}
	return portsstorage.ObjectInfo{
		FileRef:     fileRef,
		Size:        info.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(fileRef)),
	}, nil
}

// sign computes the download signature for a fileRef valid until expiresAt.
func (s *LocalFileStorage) sign(fileRef string, expiresAt int64) string {
	mac := hmac.New(sha256.New, s.signingSecret)
	fmt.Fprintf(mac, "%s|%d", fileRef, expiresAt)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignedURL builds an expiring download link for the object.
func (s *LocalFileStorage) SignedURL(ctx context.Context, fileRef string, expiry time.Duration) (string, error) {
	if _, err := s.StatObject(ctx, fileRef); err != nil {
		return "", err
	}
	expiresAt := time.Now().Add(expiry).Unix()
	sig := s.sign(fileRef, expiresAt)
	return fmt.Sprintf("%s/receipts/%s?expires=%d&sig=%s", s.baseURL, fileRef, expiresAt, sig), nil
}

// VerifySignature checks a presented download signature. Used by the handler
// that serves receipt bytes.
func (s *LocalFileStorage) VerifySignature(fileRef, expires, sig string) error {
	expiresAt, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: malformed expiry", apperrors.ErrValidation)
	}
	if time.Now().Unix() > expiresAt {
		return fmt.Errorf("%w: download link expired", apperrors.ErrForbidden)
	}
	expected := s.sign(fileRef, expiresAt)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return fmt.Errorf("%w: invalid download signature", apperrors.ErrForbidden)
	}
	return nil
}

// Open returns the object's path for streaming a verified download.
func (s *LocalFileStorage) Open(fileRef string) (string, error) {
	path, err := s.objectPath(fileRef)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: receipt object %s", apperrors.ErrNotFound, fileRef)
		}
		return "", fmt.Errorf("failed to stat receipt object %s: %w", fileRef, err)
	}
	return path, nil
}

// DeleteObject removes the object. Deleting a missing object is not an error:
// cleanup after an edit may race a previous cleanup.
func (s *LocalFileStorage) DeleteObject(ctx context.Context, fileRef string) error {
	path, err := s.objectPath(fileRef)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete receipt object %s: %w", fileRef, err)
	}
	return nil
}
