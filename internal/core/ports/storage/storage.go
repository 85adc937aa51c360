package storage

import (
	"context"
	"time"
)

// ObjectMetadata accompanies an upload.
type ObjectMetadata struct {
	FileName    string
	ContentType string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	FileRef     string
	Size        int64
	ContentType string
}

// ReceiptStorage is the external collaborator owning receipt bytes. The core
// stores only FileRef metadata, never raw content. Metadata writes must not be
// considered durable until the object's existence is confirmed
// (upload-then-record, never record-then-upload).
type ReceiptStorage interface {
	PutObject(ctx context.Context, content []byte, meta ObjectMetadata) (ObjectInfo, error)
	StatObject(ctx context.Context, fileRef string) (ObjectInfo, error)
	SignedURL(ctx context.Context, fileRef string, expiry time.Duration) (string, error)
	DeleteObject(ctx context.Context, fileRef string) error
}
