// Package hashtable provides a small associative container using separate
// chaining.
//
// # Quick Start
//
//	t, err := hashtable.New[string]()
//	if err != nil { ... }
//
//	t.Put(hashtable.TextKey("test"), "42")
//	v := t.Get(hashtable.TextKey("test"), "missing")      // "42"
//	e, ok := t.Remove(hashtable.TextKey("test"))         // {"test" 42}, true
//	v = t.Get(hashtable.TextKey("test"), "missing")       // "missing"
//
// # Keys
//
// A Key is either an integer (IntKey) or a text label (TextKey). Text labels
// are reduced to a numeric code by summing their code points, so anagrams
// such as "ab" and "ba" always land in the same bucket. Lookups compare full
// keys, so both stay retrievable.
//
// # Hashing
//
// The bucket index is produced by a Scheme. The only built-in scheme is
// division (code mod size). Selecting an unknown scheme fails New with
// ErrUnsupportedScheme.
//
// # Resizing
//
// The table starts with MinSize (8) buckets. Put doubles the bucket count
// once the number of entries exceeds it. Remove halves the bucket count when
// the number of entries becomes exactly a quarter of it (see ShrinkPolicy),
// never going below MinSize. Every resize rehashes all entries.
//
// # Duplicate Keys
//
// Put never overwrites: inserting an existing key is a no-op and reports
// false. Remove the key first to replace its value.
package hashtable
