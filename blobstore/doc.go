// Package blobstore provides read access to the blobs that hold delimited
// text records.
//
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with mmap support
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 with range reads and parallel downloads
//   - minio.Store: MinIO and other S3-compatible services
//
// Use ReadAll to fetch a whole blob; it picks the fastest path the store
// offers (Downloader, then Mappable, then a ranged read).
package blobstore
