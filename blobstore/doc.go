// Package blobstore abstracts where grid snapshots are kept.
//
// A BlobStore holds immutable, named blobs. gridstore writes one blob per
// snapshot plus a small CURRENT pointer naming the latest one.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and ephemeral pipelines
//   - LocalStore: local filesystem, reads through a read-only mmap
//   - s3.Store / s3.DDBCommitStore: Amazon S3, optionally with a DynamoDB commit log
//   - minio.Store: MinIO and other S3-compatible services
//   - CachingStore: in-memory LRU in front of any of the above
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Create(ctx, name) (WritableBlob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Blobs that can expose their bytes without copying implement Mappable;
// ReadAll uses it when present.
package blobstore
