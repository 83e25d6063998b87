package ingest

import (
	"context"
	"fmt"

	"github.com/hupe1980/hashtable/blobstore"
	"github.com/hupe1980/hashtable/internal/resource"
	"golang.org/x/sync/errgroup"
)

// Fetch downloads the named blobs concurrently and returns one CSVSource
// per name, in the order given.
//
// Concurrency, held (compressed) bytes and read throughput are bounded by
// Options.Resources. Callers must Close every returned source to release
// its memory reservation.
func Fetch(ctx context.Context, store blobstore.BlobStore, names []string, optFns ...func(o *Options)) ([]*CSVSource, error) {
	opts := buildOptions(optFns)
	rc := opts.Resources

	sources := make([]*CSVSource, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rc.FetchWorkers())

	for i, name := range names {
		g.Go(func() error {
			if err := rc.AcquireFetch(gctx); err != nil {
				return err
			}
			defer rc.ReleaseFetch()

			data, err := fetchBlob(gctx, store, name, rc)
			if err != nil {
				return fmt.Errorf("ingest: fetch %s: %w", name, err)
			}

			size := int64(len(data))
			if err := rc.AcquireMemory(size); err != nil {
				return fmt.Errorf("ingest: fetch %s: %w", name, err)
			}

			src := NewCSVSource(name, data, optFns...)
			src.release = func() { rc.ReleaseMemory(size) }
			sources[i] = src
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, src := range sources {
			if src != nil {
				_ = src.Close()
			}
		}
		return nil, err
	}
	return sources, nil
}

// fetchBlob reads the whole blob through blobstore.ReadAll and charges
// its size against the IO limit.
func fetchBlob(ctx context.Context, store blobstore.BlobStore, name string, rc *resource.Controller) ([]byte, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, err
	}
	if err := rc.AcquireIO(ctx, len(data)); err != nil {
		return nil, err
	}
	return data, nil
}
