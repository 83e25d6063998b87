package hashtable

import (
	"log/slog"
)

// ShrinkPolicy decides when Remove halves the table.
type ShrinkPolicy uint8

const (
	// ShrinkExact shrinks only when the entry count lands exactly on a
	// quarter of the bucket count.
	ShrinkExact ShrinkPolicy = iota
	// ShrinkThreshold shrinks whenever the entry count is at or below a
	// quarter of the bucket count.
	ShrinkThreshold
)

type options struct {
	scheme           Scheme
	customScheme     bool
	schemeKind       SchemeKind
	schemeName       string
	byName           bool
	shrink           ShrinkPolicy
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Table.
type Option func(*options)

// WithSchemeKind selects a built-in hashing scheme.
//
// Unknown kinds make New fail with ErrUnsupportedScheme.
func WithSchemeKind(kind SchemeKind) Option {
	return func(o *options) {
		o.schemeKind = kind
		o.byName = false
		o.customScheme = false
	}
}

// WithSchemeName selects a built-in hashing scheme by selector name
// (currently only "division").
func WithSchemeName(name string) Option {
	return func(o *options) {
		o.schemeName = name
		o.byName = true
		o.customScheme = false
	}
}

// WithScheme installs a custom hashing scheme.
func WithScheme(s Scheme) Option {
	return func(o *options) {
		o.scheme = s
		o.byName = false
		o.customScheme = true
	}
}

// WithShrinkPolicy configures the shrink trigger used by Remove.
// The default is ShrinkExact.
func WithShrinkPolicy(p ShrinkPolicy) Option {
	return func(o *options) {
		o.shrink = p
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &hashtable.BasicMetricsCollector{}
//	t, _ := hashtable.New[string](hashtable.WithMetricsCollector(metrics))
//	// ... use t ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for resize events.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func (o *options) resolveScheme() (Scheme, error) {
	switch {
	case o.customScheme:
		if o.scheme == nil {
			return nil, ErrNilScheme
		}
		return o.scheme, nil
	case o.byName:
		kind, err := ParseScheme(o.schemeName)
		if err != nil {
			return nil, err
		}
		return kind.Scheme()
	default:
		return o.schemeKind.Scheme()
	}
}
