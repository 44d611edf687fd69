package blobstore

import "context"

// BlobStore is the write-side abstraction for export targets.
// Implementations must write the blob atomically: a reader never observes
// a partially written object under name.
type BlobStore interface {
	// Put writes data under name, replacing any existing blob.
	Put(ctx context.Context, name string, data []byte) error
}
