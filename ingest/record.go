package ingest

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/hashtable"
)

// Record is one row read from a source. The whole record is stored as the
// table value.
type Record struct {
	// Source names the blob or table the record came from.
	Source string
	// Line is the 1-based position of the record in its source.
	Line   int
	Fields []string
}

// Source yields records in a deterministic order.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string
	// Scan calls fn for each record in order. A non-nil error from fn
	// stops the scan and is returned.
	Scan(ctx context.Context, fn func(Record) error) error
}

// Key derives the table key of r from the configured column.
func (o Options) Key(r Record) (hashtable.Key, error) {
	if o.KeyColumn < 0 || o.KeyColumn >= len(r.Fields) {
		return hashtable.Key{}, keyColumnError(r, o.KeyColumn)
	}
	field := r.Fields[o.KeyColumn]

	switch o.KeyKind {
	case KeyInt:
		n, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
		if err != nil {
			return hashtable.Key{}, &ErrInvalidKey{Source: r.Source, Line: r.Line, Value: field, Err: err}
		}
		return hashtable.IntKey(n), nil
	case KeyAuto:
		if n, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64); err == nil {
			return hashtable.IntKey(n), nil
		}
	}
	return hashtable.TextKey(field), nil
}

// Equal reports whether r and other carry the same origin and fields.
func (r Record) Equal(other Record) bool {
	return r.Source == other.Source && r.Line == other.Line && slices.Equal(r.Fields, other.Fields)
}
