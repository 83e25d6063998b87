package hashtable

import (
	"strconv"
)

// KeyKind identifies the variant held by a Key.
type KeyKind uint8

const (
	// KindInt marks an integer key.
	KindInt KeyKind = iota + 1
	// KindText marks a text label key.
	KindText
)

// String returns the kind name.
func (k KeyKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Key is a table key: either an integer or a text label.
//
// Keys are comparable with ==. An integer key never equals a text key,
// even when both reduce to the same numeric code.
//
// The zero Key is neither variant. It has code 0 and prints as <invalid>;
// it never equals IntKey(0). Build keys with IntKey or TextKey.
type Key struct {
	kind KeyKind
	n    int64
	s    string
}

// IntKey returns an integer key.
func IntKey(n int64) Key {
	return Key{kind: KindInt, n: n}
}

// TextKey returns a text label key.
func TextKey(s string) Key {
	return Key{kind: KindText, s: s}
}

// Kind returns the key variant.
func (k Key) Kind() KeyKind { return k.kind }

// Int returns the integer value and whether k is an integer key.
func (k Key) Int() (int64, bool) {
	return k.n, k.kind == KindInt
}

// Text returns the label and whether k is a text key.
func (k Key) Text() (string, bool) {
	return k.s, k.kind == KindText
}

// Code reduces the key to the numeric code fed into the hashing scheme.
//
// Text labels reduce to the sum of their code points, so anagrams share a
// code. Each byte of an invalid UTF-8 sequence counts as U+FFFD (65533),
// not as its byte value.
func (k Key) Code() int64 {
	if k.kind != KindText {
		return k.n
	}
	var sum int64
	for _, r := range k.s {
		sum += int64(r)
	}
	return sum
}

func (k Key) String() string {
	switch k.kind {
	case KindText:
		return strconv.Quote(k.s)
	case KindInt:
		return strconv.FormatInt(k.n, 10)
	default:
		return "<invalid>"
	}
}
