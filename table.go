package hashtable

import (
	"context"
	"iter"
	"slices"
	"time"
)

// MinSize is the smallest bucket count a Table ever has.
const MinSize = 8

// Entry is a key/value pair stored in a bucket.
type Entry[V any] struct {
	Key   Key
	Value V
}

// Table is a hash table with separate chaining.
//
// The bucket count is always a power of two, at least MinSize. Put doubles
// it once the entry count exceeds the bucket count; Remove halves it when
// the entry count drops to a quarter of the bucket count.
//
// A Table is not safe for concurrent use.
type Table[V any] struct {
	size   int
	length int
	slots  [][]Entry[V]

	scheme  Scheme
	shrink  ShrinkPolicy
	metrics MetricsCollector
	logger  *Logger
}

// New creates an empty table with MinSize buckets.
//
// The division scheme is used unless an option selects another one. An
// unknown scheme selector fails with *ErrUnsupportedScheme.
func New[V any](optFns ...Option) (*Table[V], error) {
	opts := options{
		schemeKind:       SchemeDivision,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	scheme, err := opts.resolveScheme()
	if err != nil {
		return nil, err
	}
	if opts.metricsCollector == nil {
		opts.metricsCollector = NoopMetricsCollector{}
	}
	if opts.logger == nil {
		opts.logger = NoopLogger()
	}

	return &Table[V]{
		size:    MinSize,
		slots:   make([][]Entry[V], MinSize),
		scheme:  scheme,
		shrink:  opts.shrink,
		metrics: opts.metricsCollector,
		logger:  opts.logger.WithScheme(scheme.Name()),
	}, nil
}

// Len returns the number of live entries.
func (t *Table[V]) Len() int { return t.length }

// Size returns the number of buckets.
func (t *Table[V]) Size() int { return t.size }

// Scheme returns the hashing scheme in use.
func (t *Table[V]) Scheme() Scheme { return t.scheme }

// LoadFactor returns Len()/Size().
func (t *Table[V]) LoadFactor() float64 {
	return float64(t.length) / float64(t.size)
}

func (t *Table[V]) index(key Key) int {
	idx := t.scheme.Index(key.Code(), t.size)
	if idx < 0 || idx >= t.size {
		panic(&ErrIndexOutOfRange{
			Scheme: t.scheme.Name(),
			Key:    key,
			Index:  idx,
			Size:   t.size,
		})
	}
	return idx
}

// Get returns the value stored under key, or def if key is absent.
func (t *Table[V]) Get(key Key, def V) V {
	if v, ok := t.Lookup(key); ok {
		return v
	}
	return def
}

// Lookup returns the value stored under key and whether it was found.
func (t *Table[V]) Lookup(key Key) (V, bool) {
	v, ok := t.lookup(key)
	t.metrics.RecordGet(ok)
	return v, ok
}

func (t *Table[V]) lookup(key Key) (V, bool) {
	for _, e := range t.slots[t.index(key)] {
		if e.Key == key {
			return e.Value, true
		}
	}
	var zero V
	return zero, false
}

// Exist reports whether key is present.
func (t *Table[V]) Exist(key Key) bool {
	_, ok := t.lookup(key)
	return ok
}

// Put inserts key with value. If key is already present the table is left
// unchanged and Put returns false: the first write wins.
func (t *Table[V]) Put(key Key, value V) bool {
	inserted := t.put(key, value)
	t.metrics.RecordPut(inserted)
	return inserted
}

func (t *Table[V]) put(key Key, value V) bool {
	if t.Exist(key) {
		return false
	}
	idx := t.index(key)
	t.slots[idx] = append(t.slots[idx], Entry[V]{Key: key, Value: value})
	t.length++
	if t.length > t.size {
		t.expand()
	}
	return true
}

// Remove deletes key and returns the removed entry. The second result is
// false if key was absent.
func (t *Table[V]) Remove(key Key) (Entry[V], bool) {
	idx := t.index(key)
	slot := t.slots[idx]

	pos := -1
	for i := range slot {
		if slot[i].Key == key {
			pos = i
		}
	}
	if pos < 0 {
		t.metrics.RecordRemove(false)
		return Entry[V]{}, false
	}

	removed := slot[pos]
	t.slots[idx] = slices.Delete(slot, pos, pos+1)
	t.length--
	t.metrics.RecordRemove(true)

	if t.shouldShrink() {
		t.shrinkTable()
	}
	return removed, true
}

// RemoveOr is Remove returning def when key is absent.
func (t *Table[V]) RemoveOr(key Key, def Entry[V]) Entry[V] {
	if e, ok := t.Remove(key); ok {
		return e
	}
	return def
}

func (t *Table[V]) shouldShrink() bool {
	if t.size <= MinSize {
		return false
	}
	quarter := t.size / 4
	if t.shrink == ShrinkThreshold {
		return t.length <= quarter
	}
	return t.length == quarter
}

func (t *Table[V]) expand() {
	t.resize(t.size * 2)
}

// shrinkTable has no floor of its own; callers check shouldShrink first.
func (t *Table[V]) shrinkTable() {
	t.resize(t.size / 2)
}

// resize rebuilds every bucket at newSize, re-inserting each entry through
// put so it lands at its index for the new size.
func (t *Table[V]) resize(newSize int) {
	start := time.Now()
	from := t.size

	entries := make([]Entry[V], 0, t.length)
	for _, slot := range t.slots {
		entries = append(entries, slot...)
	}

	t.size = newSize
	t.length = 0
	t.slots = make([][]Entry[V], newSize)

	for _, e := range entries {
		t.put(e.Key, e.Value)
	}

	t.metrics.RecordResize(from, newSize, len(entries), time.Since(start))
	t.logger.LogResize(context.Background(), from, newSize, len(entries))
}

// All iterates over live entries bucket by bucket. The order carries no
// meaning and changes after a resize. The table must not be modified during
// iteration.
func (t *Table[V]) All() iter.Seq2[Key, V] {
	return func(yield func(Key, V) bool) {
		for _, slot := range t.slots {
			for _, e := range slot {
				if !yield(e.Key, e.Value) {
					return
				}
			}
		}
	}
}
