// Package resource bounds the resources used while ingesting records.
//
// The Controller manages three resource types:
//
//   - Memory: fetched (compressed) blob bytes held at once (non-blocking,
//     fail-fast). Decoded data is not counted.
//   - Concurrency: concurrent blob fetches (weighted semaphore)
//   - IO: read throughput from record sources (token bucket)
//
// Example:
//
//	rc := resource.NewController(resource.Config{
//	    MaxFetchWorkers:    4,
//	    IOLimitBytesPerSec: 50 << 20,
//	})
//
//	if err := rc.AcquireFetch(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseFetch()
//
//	data, err := fetch(ctx)
//	if err := rc.AcquireIO(ctx, len(data)); err != nil {
//	    return err
//	}
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
