// Package minio implements blobstore.BlobStore for MinIO and other
// S3-compatible object storage.
package minio

import (
	"bytes"
	"context"
	"path"

	"github.com/minio/minio-go/v7"
)

// Store writes blobs to a bucket on an S3-compatible endpoint.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore creates a new object-store target.
// rootPrefix is prepended to all keys (e.g. "asm/2026-08/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Put writes a blob. S3 object writes are atomic per key.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name),
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	return err
}
