package ingest

import (
	"fmt"
	"strings"

	"github.com/hupe1980/hashtable"
	"github.com/hupe1980/hashtable/internal/resource"
)

// KeyKind controls how the key column is turned into a hashtable.Key.
type KeyKind uint8

const (
	// KeyText uses the column verbatim as a text key.
	KeyText KeyKind = iota
	// KeyInt parses the column as a base-10 integer key.
	KeyInt
	// KeyAuto uses an integer key when the column parses as one and a text
	// key otherwise.
	KeyAuto
)

func (k KeyKind) String() string {
	switch k {
	case KeyText:
		return "text"
	case KeyInt:
		return "int"
	case KeyAuto:
		return "auto"
	default:
		return fmt.Sprintf("KeyKind(%d)", uint8(k))
	}
}

// ParseKeyKind resolves "text", "int" or "auto".
func ParseKeyKind(s string) (KeyKind, error) {
	switch strings.ToLower(s) {
	case "text", "":
		return KeyText, nil
	case "int":
		return KeyInt, nil
	case "auto":
		return KeyAuto, nil
	}
	return 0, fmt.Errorf("ingest: unknown key kind %q", s)
}

// Options contains configuration for loading records.
type Options struct {
	// KeyColumn is the zero-based field index used as the key.
	KeyColumn int
	// KeyKind selects how the key field is interpreted.
	KeyKind KeyKind
	// Header skips the first row of delimited sources.
	Header bool
	// Comma is the field delimiter of delimited sources.
	Comma rune
	// Codec names the compression of delimited blobs ("none", "gzip",
	// "zstd", "lz4"). Empty or "auto" detects it from the blob name's
	// extension, then from the leading magic bytes.
	Codec string
	// Logger receives load and verify summaries. Nil disables logging.
	Logger *hashtable.Logger
	// Resources bounds concurrent fetches, held bytes and read throughput.
	// Nil means one fetch at a time with no byte or throughput limits.
	Resources *resource.Controller
}

// DefaultOptions returns default ingest options: key in column 4, text
// keys, comma separated with a header row.
var DefaultOptions = Options{
	KeyColumn: 4,
	KeyKind:   KeyText,
	Header:    true,
	Comma:     ',',
}

func buildOptions(optFns []func(o *Options)) Options {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = hashtable.NoopLogger()
	}
	if opts.Comma == 0 {
		opts.Comma = ','
	}
	return opts
}
