package hashtable

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting table metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordPut is called after each Put. inserted is false for duplicate keys.
	RecordPut(inserted bool)

	// RecordGet is called after each lookup (Get, Lookup).
	RecordGet(hit bool)

	// RecordRemove is called after each removal.
	RecordRemove(hit bool)

	// RecordResize is called after each expand or shrink.
	// entries is the number of entries rehashed.
	RecordResize(from, to, entries int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPut(bool)                            {}
func (NoopMetricsCollector) RecordGet(bool)                            {}
func (NoopMetricsCollector) RecordRemove(bool)                         {}
func (NoopMetricsCollector) RecordResize(int, int, int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	PutCount        atomic.Int64
	PutDuplicates   atomic.Int64
	GetCount        atomic.Int64
	GetMisses       atomic.Int64
	RemoveCount     atomic.Int64
	RemoveMisses    atomic.Int64
	ExpandCount     atomic.Int64
	ShrinkCount     atomic.Int64
	RehashedEntries atomic.Int64
	ResizeNanos     atomic.Int64
}

// RecordPut implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPut(inserted bool) {
	b.PutCount.Add(1)
	if !inserted {
		b.PutDuplicates.Add(1)
	}
}

// RecordGet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGet(hit bool) {
	b.GetCount.Add(1)
	if !hit {
		b.GetMisses.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(hit bool) {
	b.RemoveCount.Add(1)
	if !hit {
		b.RemoveMisses.Add(1)
	}
}

// RecordResize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordResize(from, to, entries int, duration time.Duration) {
	if to > from {
		b.ExpandCount.Add(1)
	} else {
		b.ShrinkCount.Add(1)
	}
	b.RehashedEntries.Add(int64(entries))
	b.ResizeNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		PutCount:        b.PutCount.Load(),
		PutDuplicates:   b.PutDuplicates.Load(),
		GetCount:        b.GetCount.Load(),
		GetMisses:       b.GetMisses.Load(),
		RemoveCount:     b.RemoveCount.Load(),
		RemoveMisses:    b.RemoveMisses.Load(),
		ExpandCount:     b.ExpandCount.Load(),
		ShrinkCount:     b.ShrinkCount.Load(),
		RehashedEntries: b.RehashedEntries.Load(),
		ResizeAvgNanos:  b.getAvgResizeNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgResizeNanos() int64 {
	count := b.ExpandCount.Load() + b.ShrinkCount.Load()
	if count == 0 {
		return 0
	}
	return b.ResizeNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	PutCount        int64
	PutDuplicates   int64
	GetCount        int64
	GetMisses       int64
	RemoveCount     int64
	RemoveMisses    int64
	ExpandCount     int64
	ShrinkCount     int64
	RehashedEntries int64
	ResizeAvgNanos  int64
}
