// Package minio provides a read-only BlobStore backed by the MinIO client.
//
// It works with MinIO and other S3-compatible systems (Ceph, Garage,
// SeaweedFS) without pulling in AWS credentials handling.
//
// # Basic Usage
//
//	store, err := minioblob.Dial("localhost:9000", "records", func(o *minioblob.Options) {
//	    o.AccessKey = "minioadmin"
//	    o.SecretKey = "minioadmin"
//	    o.Secure = false
//	    o.Prefix = "exports/"
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	names, _ := store.List(ctx, "")
//	data, _ := blobstore.ReadAll(ctx, store, names[0])
//
// An existing *minio.Client can be wrapped with NewStore.
package minio
