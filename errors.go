package hashtable

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedSchemeSentinel matches every *ErrUnsupportedScheme via errors.Is.
	ErrUnsupportedSchemeSentinel = errors.New("unsupported hashing scheme")

	// ErrNilScheme is returned when WithScheme is given a nil Scheme.
	ErrNilScheme = errors.New("nil hashing scheme")
)

// ErrUnsupportedScheme indicates an unknown hashing scheme selector.
type ErrUnsupportedScheme struct {
	Name string
}

func (e *ErrUnsupportedScheme) Error() string {
	return fmt.Sprintf("unsupported hashing scheme: %q", e.Name)
}

// Is reports whether target is ErrUnsupportedSchemeSentinel.
func (e *ErrUnsupportedScheme) Is(target error) bool {
	return target == ErrUnsupportedSchemeSentinel
}

// ErrIndexOutOfRange is the panic value raised when a Scheme returns an
// index outside the bucket array.
type ErrIndexOutOfRange struct {
	Scheme string
	Key    Key
	Index  int
	Size   int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("scheme %q mapped key %s to index %d outside [0, %d)", e.Scheme, e.Key, e.Index, e.Size)
}
