// Package blobstore abstracts where exported segment files land.
//
// The export loop produces one immutable blob per segment; a BlobStore
// only needs atomic whole-blob writes. Built-in implementations:
//
//   - LocalStore: local filesystem, tmp-file + rename so a crashed run
//     never leaves a half-written segment file
//   - minio.Store: S3-compatible object storage for publishing exports
//     to shared infrastructure
package blobstore
