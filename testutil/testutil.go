package testutil

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math/rand"
	"sync"
)

const labelAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// SignedInt63n returns a pseudo-random number in [-n, n).
func (r *RNG) SignedInt63n(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Int63n(2*n) - n
}

// UniqueInts returns n distinct integers drawn from [-span, span).
// span must be at least n/2.
func (r *RNG) UniqueInts(n int, span int64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[int64]struct{}, n)
	out := make([]int64, 0, n)
	for len(out) < n {
		v := r.rand.Int63n(2*span) - span
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Label returns a random label of the given length.
func (r *RNG) Label(length int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.labelLocked(length)
}

func (r *RNG) labelLocked(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = labelAlphabet[r.rand.Intn(len(labelAlphabet))]
	}
	return string(b)
}

// UniqueLabels returns n distinct labels of the given length.
func (r *RNG) UniqueLabels(n, length int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		l := r.labelLocked(length)
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// Shuffle shuffles keys in place.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(n, swap)
}

// Records generates n CSV-like records with the given number of columns.
// Column keyCol carries a unique label; other columns carry "c<col>-<row>".
func (r *RNG) Records(n, columns, keyCol int) [][]string {
	keys := r.UniqueLabels(n, 8)
	rows := make([][]string, n)
	for i := range rows {
		row := make([]string, columns)
		for c := range row {
			row[c] = fmt.Sprintf("c%d-%d", c, i)
		}
		row[keyCol] = keys[i]
		rows[i] = row
	}
	return rows
}

// CSV encodes header (if non-nil) followed by rows.
func CSV(header []string, rows [][]string) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if header != nil {
		_ = w.Write(header)
	}
	_ = w.WriteAll(rows)
	return buf.Bytes()
}

// Header returns column names "col0".."colN-1".
func Header(columns int) []string {
	h := make([]string, columns)
	for i := range h {
		h[i] = fmt.Sprintf("col%d", i)
	}
	return h
}
