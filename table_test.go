package hashtable

import (
	"fmt"
	"testing"

	"github.com/hupe1980/hashtable/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkInvariants verifies the structural guarantees of t.
func checkInvariants[V any](t *testing.T, tbl *Table[V]) {
	t.Helper()

	require.GreaterOrEqual(t, tbl.size, MinSize)
	require.Zero(t, tbl.size&(tbl.size-1), "size %d is not a power of two", tbl.size)
	require.Len(t, tbl.slots, tbl.size)

	total := 0
	seen := make(map[Key]struct{})
	for i, slot := range tbl.slots {
		total += len(slot)
		for _, e := range slot {
			require.Equal(t, i, tbl.scheme.Index(e.Key.Code(), tbl.size), "key %s in wrong bucket", e.Key)
			_, dup := seen[e.Key]
			require.False(t, dup, "duplicate key %s", e.Key)
			seen[e.Key] = struct{}{}
		}
	}
	require.Equal(t, tbl.length, total)
}

func newTable[V any](t *testing.T, opts ...Option) *Table[V] {
	t.Helper()
	tbl, err := New[V](opts...)
	require.NoError(t, err)
	return tbl
}

func TestTable(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		tbl := newTable[int](t)

		assert.Equal(t, 0, tbl.Len())
		assert.Equal(t, MinSize, tbl.Size())
		assert.Equal(t, "division", tbl.Scheme().Name())
		assert.False(t, tbl.Exist(TextKey("test")))
		assert.Equal(t, -1, tbl.Get(IntKey(3), -1))
		checkInvariants(t, tbl)
	})

	t.Run("PutGetRemove", func(t *testing.T) {
		tbl := newTable[any](t)

		assert.False(t, tbl.Exist(TextKey("test")))
		assert.True(t, tbl.Put(TextKey("test"), 42))
		assert.True(t, tbl.Exist(TextKey("test")))
		assert.Equal(t, 42, tbl.Get(TextKey("test"), nil))

		e, ok := tbl.Remove(TextKey("test"))
		require.True(t, ok)
		assert.Equal(t, Entry[any]{Key: TextKey("test"), Value: 42}, e)
		assert.Equal(t, "missing", tbl.Get(TextKey("test"), "missing"))
		assert.Equal(t, 0, tbl.Len())
		checkInvariants(t, tbl)
	})

	t.Run("FirstWriteWins", func(t *testing.T) {
		tbl := newTable[string](t)

		assert.True(t, tbl.Put(IntKey(7), "v1"))
		assert.False(t, tbl.Put(IntKey(7), "v2"))

		assert.Equal(t, "v1", tbl.Get(IntKey(7), ""))
		assert.Equal(t, 1, tbl.Len())
	})

	t.Run("RemoveMiss", func(t *testing.T) {
		tbl := newTable[string](t)
		tbl.Put(IntKey(1), "one")

		_, ok := tbl.Remove(IntKey(9))
		assert.False(t, ok)

		def := Entry[string]{Key: IntKey(-1), Value: "none"}
		assert.Equal(t, def, tbl.RemoveOr(IntKey(9), def))
		assert.Equal(t, Entry[string]{Key: IntKey(1), Value: "one"}, tbl.RemoveOr(IntKey(1), def))
		assert.Equal(t, 0, tbl.Len())
	})

	t.Run("AnagramsShareBucket", func(t *testing.T) {
		tbl := newTable[string](t)

		ab, ba := TextKey("ab"), TextKey("ba")
		require.Equal(t, ab.Code(), ba.Code())

		tbl.Put(ab, "first")
		tbl.Put(ba, "second")

		assert.Equal(t, "first", tbl.Get(ab, ""))
		assert.Equal(t, "second", tbl.Get(ba, ""))
		assert.Len(t, tbl.slots[tbl.index(ab)], 2)

		_, ok := tbl.Remove(ab)
		require.True(t, ok)
		assert.Equal(t, "second", tbl.Get(ba, ""))
		assert.False(t, tbl.Exist(ab))
		checkInvariants(t, tbl)
	})

	t.Run("LookupScansWholeBucket", func(t *testing.T) {
		tbl := newTable[int](t)

		// 1, 9 and 17 collide under division by 8 until the table grows.
		tbl.Put(IntKey(1), 1)
		tbl.Put(IntKey(9), 9)
		tbl.Put(IntKey(17), 17)
		require.Len(t, tbl.slots[1], 3)

		assert.Equal(t, 17, tbl.Get(IntKey(17), -1))
		assert.Equal(t, 9, tbl.Get(IntKey(9), -1))
		assert.True(t, tbl.Exist(IntKey(17)))
	})

	t.Run("IntAndTextKeysAreDistinct", func(t *testing.T) {
		tbl := newTable[string](t)

		require.Equal(t, int64(97), TextKey("a").Code())
		tbl.Put(IntKey(97), "int")
		assert.True(t, tbl.Put(TextKey("a"), "text"))

		assert.Equal(t, "int", tbl.Get(IntKey(97), ""))
		assert.Equal(t, "text", tbl.Get(TextKey("a"), ""))
		assert.Equal(t, 2, tbl.Len())
	})

	t.Run("NegativeKeys", func(t *testing.T) {
		tbl := newTable[int64](t)

		for k := int64(-20); k < 0; k++ {
			tbl.Put(IntKey(k), k*10)
		}
		for k := int64(-20); k < 0; k++ {
			assert.Equal(t, k*10, tbl.Get(IntKey(k), 0))
		}
		checkInvariants(t, tbl)
	})
}

func TestTable_Expand(t *testing.T) {
	tbl := newTable[string](t)

	for k := range int64(8) {
		tbl.Put(IntKey(k), fmt.Sprintf("v%d", k))
	}
	assert.Equal(t, 8, tbl.Len())
	assert.Equal(t, 8, tbl.Size())

	tbl.Put(IntKey(8), "v8")
	assert.Equal(t, 9, tbl.Len())
	assert.Equal(t, 16, tbl.Size())

	for k := range int64(9) {
		assert.Equal(t, fmt.Sprintf("v%d", k), tbl.Get(IntKey(k), ""))
	}
	checkInvariants(t, tbl)

	// Growth is driven by the count exceeding the size, not by a ratio.
	for k := int64(9); k < 16; k++ {
		tbl.Put(IntKey(k), "x")
	}
	assert.Equal(t, 16, tbl.Size())
	tbl.Put(IntKey(16), "x")
	assert.Equal(t, 32, tbl.Size())
	checkInvariants(t, tbl)
}

func TestTable_Shrink(t *testing.T) {
	for _, policy := range []ShrinkPolicy{ShrinkExact, ShrinkThreshold} {
		t.Run(fmt.Sprintf("policy=%d", policy), func(t *testing.T) {
			tbl := newTable[int64](t, WithShrinkPolicy(policy))

			for k := range int64(17) {
				tbl.Put(IntKey(k), k)
			}
			require.Equal(t, 32, tbl.Size())

			// Remove down to 9 entries: still above a quarter of 32.
			for k := range int64(8) {
				tbl.Remove(IntKey(k))
			}
			assert.Equal(t, 9, tbl.Len())
			assert.Equal(t, 32, tbl.Size())

			// The 9th removal lands on 32/4 and halves the table.
			tbl.Remove(IntKey(8))
			assert.Equal(t, 8, tbl.Len())
			assert.Equal(t, 16, tbl.Size())
			checkInvariants(t, tbl)

			for k := int64(9); k < 13; k++ {
				tbl.Remove(IntKey(k))
			}
			assert.Equal(t, 4, tbl.Len())
			assert.Equal(t, 8, tbl.Size())

			for k := int64(13); k < 17; k++ {
				_, ok := tbl.Remove(IntKey(k))
				require.True(t, ok)
			}
			assert.Equal(t, 0, tbl.Len())
			assert.Equal(t, MinSize, tbl.Size())
			checkInvariants(t, tbl)
		})
	}
}

func TestTable_NeverBelowMinSize(t *testing.T) {
	tbl := newTable[int](t)

	for k := range int64(8) {
		tbl.Put(IntKey(k), int(k))
	}
	for k := range int64(8) {
		tbl.Remove(IntKey(k))
		assert.Equal(t, MinSize, tbl.Size())
	}
}

func TestTable_RandomOperations(t *testing.T) {
	rng := testutil.NewRNG(4711)
	tbl := newTable[int64](t)
	model := make(map[Key]int64)

	for i := range 5000 {
		var key Key
		if rng.Intn(2) == 0 {
			key = IntKey(rng.SignedInt63n(300))
		} else {
			key = TextKey(rng.Label(1 + rng.Intn(3)))
		}

		switch rng.Intn(3) {
		case 0, 1:
			_, exists := model[key]
			inserted := tbl.Put(key, int64(i))
			assert.Equal(t, !exists, inserted)
			if !exists {
				model[key] = int64(i)
			}
		case 2:
			e, ok := tbl.Remove(key)
			want, exists := model[key]
			require.Equal(t, exists, ok)
			if ok {
				assert.Equal(t, want, e.Value)
				delete(model, key)
			}
		}

		if i%250 == 0 {
			checkInvariants(t, tbl)
		}
	}

	checkInvariants(t, tbl)
	require.Equal(t, len(model), tbl.Len())
	for k, v := range model {
		got, ok := tbl.Lookup(k)
		require.True(t, ok, "key %s", k)
		assert.Equal(t, v, got)
	}
}

func TestTable_DistinctKeysAllRetrievable(t *testing.T) {
	rng := testutil.NewRNG(99)
	tbl := newTable[string](t)

	labels := rng.UniqueLabels(1000, 6)
	for i, l := range labels {
		require.True(t, tbl.Put(TextKey(l), fmt.Sprint(i)))
	}

	assert.Equal(t, len(labels), tbl.Len())
	assert.GreaterOrEqual(t, tbl.Size(), tbl.Len())
	for i, l := range labels {
		assert.Equal(t, fmt.Sprint(i), tbl.Get(TextKey(l), ""))
	}

	rng.Shuffle(len(labels), func(i, j int) { labels[i], labels[j] = labels[j], labels[i] })
	for _, l := range labels {
		_, ok := tbl.Remove(TextKey(l))
		require.True(t, ok)
	}
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, MinSize, tbl.Size())
	checkInvariants(t, tbl)
}

func TestTable_All(t *testing.T) {
	tbl := newTable[int](t)
	for k := range 20 {
		tbl.Put(IntKey(int64(k)), k*k)
	}

	got := make(map[Key]int)
	for k, v := range tbl.All() {
		got[k] = v
	}
	assert.Len(t, got, 20)
	assert.Equal(t, 49, got[IntKey(7)])

	n := 0
	for range tbl.All() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

type badScheme struct{}

func (badScheme) Name() string                { return "bad" }
func (badScheme) Index(code int64, _ int) int { return int(code) }

func TestTable_SchemeOutOfRangePanics(t *testing.T) {
	tbl := newTable[int](t, WithScheme(badScheme{}))

	tbl.Put(IntKey(3), 3)
	assert.Equal(t, 3, tbl.Get(IntKey(3), 0))

	assert.PanicsWithError(t, `scheme "bad" mapped key 100 to index 100 outside [0, 8)`, func() {
		tbl.Put(IntKey(100), 100)
	})
}
