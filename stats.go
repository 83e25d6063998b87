package hashtable

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Stats describes how entries are spread across buckets.
type Stats struct {
	Size         int
	Len          int
	LoadFactor   float64
	Empty        int
	LongestChain int
	// Occupied holds the index of every non-empty bucket.
	Occupied *roaring.Bitmap
}

// Stats computes a snapshot of the bucket distribution.
func (t *Table[V]) Stats() Stats {
	s := Stats{
		Size:       t.size,
		Len:        t.length,
		LoadFactor: t.LoadFactor(),
		Occupied:   roaring.New(),
	}
	for i, slot := range t.slots {
		if len(slot) == 0 {
			s.Empty++
			continue
		}
		s.Occupied.Add(uint32(i))
		s.LongestChain = max(s.LongestChain, len(slot))
	}
	return s
}

// Collisions returns the number of entries that share a bucket with an
// earlier entry.
func (s Stats) Collisions() int {
	return s.Len - int(s.Occupied.GetCardinality())
}
