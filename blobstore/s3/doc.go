// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("records/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	data, err := blobstore.ReadAll(ctx, store, "people.csv.zst")
//
// # Features
//
//   - Range reads for partial fetches
//   - Parallel part downloads via the s3 transfer manager
//   - Automatic pagination for listing
//   - Configurable prefix and custom endpoints (LocalStack, Ceph)
package s3
