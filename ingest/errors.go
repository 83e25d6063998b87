package ingest

import (
	"errors"
	"fmt"
)

// ErrKeyColumn is returned when a record has no field at the key column.
var ErrKeyColumn = errors.New("ingest: record has no key column")

// ErrInvalidKey is returned when an integer key column does not parse.
type ErrInvalidKey struct {
	Source string
	Line   int
	Value  string
	Err    error
}

func (e *ErrInvalidKey) Error() string {
	return fmt.Sprintf("ingest: %s:%d: invalid integer key %q: %v", e.Source, e.Line, e.Value, e.Err)
}

func (e *ErrInvalidKey) Unwrap() error {
	return e.Err
}

func keyColumnError(r Record, col int) error {
	return fmt.Errorf("%w: %s:%d has %d fields, key column is %d", ErrKeyColumn, r.Source, r.Line, len(r.Fields), col)
}
