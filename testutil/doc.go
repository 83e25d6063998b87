// Package testutil provides testing utilities for hashtable.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded generators for keys and records, and helpers for
// building CSV fixtures.
//
// # Keys
//
//	rng := testutil.NewRNG(seed)
//	ints := rng.UniqueInts(1000, 1<<20)   // distinct, may be negative
//	labels := rng.UniqueLabels(1000, 8)
//
// # Records
//
//	rows := rng.Records(100, 6, 4)        // key in column 4
//	data := testutil.CSV(testutil.Header(6), rows)
package testutil
