package hashtable

// Scheme maps a key's numeric code to a bucket index.
//
// Index must return a value in [0, size) for every code.
type Scheme interface {
	Name() string
	Index(code int64, size int) int
}

// SchemeKind enumerates the built-in hashing schemes.
type SchemeKind uint8

const (
	// SchemeDivision selects division hashing: code mod size.
	SchemeDivision SchemeKind = iota + 1
)

var schemeNames = map[string]SchemeKind{
	"division": SchemeDivision,
}

// ParseScheme resolves a scheme selector name.
func ParseScheme(name string) (SchemeKind, error) {
	kind, ok := schemeNames[name]
	if !ok {
		return 0, &ErrUnsupportedScheme{Name: name}
	}
	return kind, nil
}

// String returns the selector name of the scheme.
func (k SchemeKind) String() string {
	for name, kind := range schemeNames {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// Scheme returns the implementation for k.
func (k SchemeKind) Scheme() (Scheme, error) {
	switch k {
	case SchemeDivision:
		return Division{}, nil
	default:
		return nil, &ErrUnsupportedScheme{Name: k.String()}
	}
}

// Division is remainder hashing against the current bucket count.
type Division struct{}

// Name implements Scheme.
func (Division) Name() string { return "division" }

// Index implements Scheme. The remainder is always non-negative.
func (Division) Index(code int64, size int) int {
	idx := code % int64(size)
	if idx < 0 {
		idx += int64(size)
	}
	return int(idx)
}
