// Package blobstore keeps the bytes of uploaded documents.
package blobstore

import (
	"context"
	"errors"
	"io"
	"path"
)

// ErrNotFound is returned when no blob exists under a key.
var ErrNotFound = errors.New("blob not found")

// Store persists opaque blobs by key.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// DocumentKey is where a user's uploaded document lives.
func DocumentKey(ownerID, documentID string) string {
	return path.Join("documents", ownerID, documentID)
}
