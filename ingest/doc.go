// Package ingest loads delimited records into a hashtable.Table and reads
// them back.
//
// Each record is keyed by one column (KeyColumn, 4 by default) and stored
// whole as the value. Records are inserted in source order on one
// goroutine, so duplicate keys keep the first record and later rows are
// reported in Report.Duplicates.
//
// # Sources
//
//   - CSVSource: a delimited blob, optionally gzip, zstd or lz4 compressed.
//     Fetch downloads many blobs from a blobstore.BlobStore concurrently.
//   - DynamoSource: items of a DynamoDB table in scan order.
//
// # Usage
//
//	t, _ := hashtable.New[ingest.Record]()
//	sources, err := ingest.Fetch(ctx, store, names)
//	if err != nil { ... }
//	for _, src := range sources {
//	    rep, err := ingest.Load(ctx, t, src)
//	    ...
//	    vrep, err := ingest.Verify(ctx, t, src)
//	    _ = src.Close()
//	}
package ingest
