// Command hashtable loads delimited records into a chained hash table keyed
// by one column and optionally reads every record back.
//
//	hashtable load -source local -root ./data people.csv
//	hashtable load -source s3 -bucket exports -prefix 2024/ -verify
//	hashtable load -source minio -endpoint localhost:9000 -bucket records -insecure
//	hashtable load -source dynamodb -table people -attributes id,name,city,zip,email
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/hupe1980/hashtable"
	"github.com/hupe1980/hashtable/blobstore"
	minioblob "github.com/hupe1980/hashtable/blobstore/minio"
	s3blob "github.com/hupe1980/hashtable/blobstore/s3"
	"github.com/hupe1980/hashtable/ingest"
	"github.com/hupe1980/hashtable/internal/compress"
	"github.com/hupe1980/hashtable/internal/resource"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: hashtable load [flags] [NAME...]")
	}
	switch args[0] {
	case "load":
		cfg, err := parseLoad(args[1:], stderr)
		if err != nil {
			return err
		}
		return load(ctx, cfg, stdout, stderr)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

type loadConfig struct {
	source     string
	root       string
	bucket     string
	prefix     string
	endpoint   string
	accessKey  string
	secretKey  string
	insecure   bool
	table      string
	attributes []string

	keyColumn int
	keyKind   ingest.KeyKind
	header    bool
	comma     rune
	codec     string
	scheme    string

	fetchWorkers int64
	ioLimit      int64
	memoryLimit  int64

	logFormat string
	logLevel  slog.Level
	verify    bool

	names []string
}

func parseLoad(args []string, stderr io.Writer) (*loadConfig, error) {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := &loadConfig{}
	var attributes, keyKind, comma, logLevel string
	fs.StringVar(&cfg.source, "source", "local", "record source: local, s3, minio or dynamodb")
	fs.StringVar(&cfg.root, "root", ".", "root directory for -source local")
	fs.StringVar(&cfg.bucket, "bucket", "", "bucket for -source s3 and minio")
	fs.StringVar(&cfg.prefix, "prefix", "", "key prefix inside the bucket or root")
	fs.StringVar(&cfg.endpoint, "endpoint", "", "S3-compatible endpoint (required for minio)")
	fs.StringVar(&cfg.accessKey, "access-key", os.Getenv("MINIO_ACCESS_KEY"), "minio access key")
	fs.StringVar(&cfg.secretKey, "secret-key", os.Getenv("MINIO_SECRET_KEY"), "minio secret key")
	fs.BoolVar(&cfg.insecure, "insecure", false, "use plain HTTP for minio")
	fs.StringVar(&cfg.table, "table", "", "DynamoDB table for -source dynamodb")
	fs.StringVar(&attributes, "attributes", "", "comma separated DynamoDB attributes, in field order")
	fs.IntVar(&cfg.keyColumn, "key-column", ingest.DefaultOptions.KeyColumn, "zero-based key column")
	fs.StringVar(&keyKind, "key-kind", "text", "key interpretation: text, int or auto")
	fs.BoolVar(&cfg.header, "header", true, "skip the first row of each blob")
	fs.StringVar(&comma, "comma", ",", "field delimiter")
	fs.StringVar(&cfg.codec, "codec", "auto", "blob compression: auto, none, gzip, zstd or lz4")
	fs.StringVar(&cfg.scheme, "scheme", "division", "hashing scheme")
	fs.Int64Var(&cfg.fetchWorkers, "fetch-workers", 4, "concurrent blob downloads")
	fs.Int64Var(&cfg.ioLimit, "io-limit", 0, "read throughput limit in bytes per second (0 = unlimited)")
	fs.Int64Var(&cfg.memoryLimit, "memory-limit", 0, "fetched (compressed) blob bytes held at once; decoded data is not counted (0 = unlimited)")
	fs.StringVar(&cfg.logFormat, "log-format", "text", "log format: text or json")
	fs.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.BoolVar(&cfg.verify, "verify", false, "read every record back after loading")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.names = fs.Args()

	var err error
	if cfg.keyKind, err = ingest.ParseKeyKind(keyKind); err != nil {
		return nil, err
	}
	if err := cfg.logLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid -log-level: %w", err)
	}
	if utf8.RuneCountInString(comma) != 1 {
		return nil, fmt.Errorf("invalid -comma %q: must be a single character", comma)
	}
	cfg.comma, _ = utf8.DecodeRuneInString(comma)
	if cfg.codec != "auto" {
		if _, err := compress.ParseCodec(cfg.codec); err != nil {
			return nil, fmt.Errorf("invalid -codec: %w", err)
		}
	}
	if attributes != "" {
		cfg.attributes = strings.Split(attributes, ",")
	}

	switch cfg.source {
	case "local":
	case "s3":
		if cfg.bucket == "" {
			return nil, errors.New("-bucket is required for -source s3")
		}
	case "minio":
		if cfg.bucket == "" || cfg.endpoint == "" {
			return nil, errors.New("-bucket and -endpoint are required for -source minio")
		}
	case "dynamodb":
		if cfg.table == "" || len(cfg.attributes) == 0 {
			return nil, errors.New("-table and -attributes are required for -source dynamodb")
		}
	default:
		return nil, fmt.Errorf("unknown -source %q", cfg.source)
	}
	return cfg, nil
}

func (c *loadConfig) logger(w io.Writer) *hashtable.Logger {
	opts := &slog.HandlerOptions{Level: c.logLevel}
	if c.logFormat == "json" {
		return hashtable.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return hashtable.NewLogger(slog.NewTextHandler(w, opts))
}

func load(ctx context.Context, cfg *loadConfig, stdout, stderr io.Writer) error {
	logger := cfg.logger(stderr)
	metrics := &hashtable.BasicMetricsCollector{}

	tbl, err := hashtable.New[ingest.Record](
		hashtable.WithSchemeName(cfg.scheme),
		hashtable.WithLogger(logger),
		hashtable.WithMetricsCollector(metrics),
	)
	if err != nil {
		return err
	}

	rc := resource.NewController(resource.Config{
		MaxFetchWorkers:    cfg.fetchWorkers,
		IOLimitBytesPerSec: cfg.ioLimit,
		MemoryLimitBytes:   cfg.memoryLimit,
	})
	opts := func(o *ingest.Options) {
		o.KeyColumn = cfg.keyColumn
		o.KeyKind = cfg.keyKind
		o.Header = cfg.header
		o.Comma = cfg.comma
		o.Codec = cfg.codec
		o.Logger = logger
		o.Resources = rc
	}

	sources, err := openSources(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer func() {
		for _, src := range sources {
			if c, ok := src.(io.Closer); ok {
				_ = c.Close()
			}
		}
	}()

	var rows, duplicates, missing, shadowed uint64
	for _, src := range sources {
		rep, err := ingest.Load(ctx, tbl, src, opts)
		if err != nil {
			return err
		}
		rows += uint64(rep.Rows)
		duplicates += rep.Duplicates.GetCardinality()
	}
	if cfg.verify {
		for _, src := range sources {
			rep, err := ingest.Verify(ctx, tbl, src, opts)
			if err != nil {
				return err
			}
			missing += rep.Missing.GetCardinality()
			shadowed += rep.Shadowed.GetCardinality()
		}
	}

	st := tbl.Stats()
	ms := metrics.GetStats()
	fmt.Fprintf(stdout, "sources=%d rows=%d entries=%d duplicates=%d\n", len(sources), rows, st.Len, duplicates)
	fmt.Fprintf(stdout, "size=%d load_factor=%.2f longest_chain=%d collisions=%d resizes=%d\n",
		st.Size, st.LoadFactor, st.LongestChain, st.Collisions(), ms.ExpandCount+ms.ShrinkCount)
	if cfg.verify {
		fmt.Fprintf(stdout, "verified=%d missing=%d shadowed=%d\n", rows, missing, shadowed)
		if missing > 0 {
			return fmt.Errorf("verify: %d records missing", missing)
		}
	}
	return nil
}

func openSources(ctx context.Context, cfg *loadConfig, opts func(*ingest.Options)) ([]ingest.Source, error) {
	if cfg.source == "dynamodb" {
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, err
		}
		client := dynamodb.NewFromConfig(awsCfg)
		return []ingest.Source{ingest.NewDynamoSource(client, cfg.table, cfg.attributes)}, nil
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	names := cfg.names
	if len(names) == 0 {
		if names, err = store.List(ctx, listPrefix(cfg)); err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("no blobs found under %q", cfg.prefix)
		}
	} else if cfg.source == "local" && cfg.prefix != "" {
		for i, name := range names {
			names[i] = strings.TrimSuffix(cfg.prefix, "/") + "/" + name
		}
	}

	fetched, err := ingest.Fetch(ctx, store, names, opts)
	if err != nil {
		return nil, err
	}
	sources := make([]ingest.Source, len(fetched))
	for i, src := range fetched {
		sources[i] = src
	}
	return sources, nil
}

// listPrefix returns the List prefix. Remote stores already scope keys to
// their root prefix; the local store lists relative to -root.
func listPrefix(cfg *loadConfig) string {
	if cfg.source == "local" {
		return cfg.prefix
	}
	return ""
}

func openStore(ctx context.Context, cfg *loadConfig) (blobstore.BlobStore, error) {
	switch cfg.source {
	case "s3":
		optFns := []func(*s3blob.Options){s3blob.WithPrefix(cfg.prefix)}
		if cfg.endpoint != "" {
			optFns = append(optFns, s3blob.WithEndpoint(cfg.endpoint))
		}
		return s3blob.New(ctx, cfg.bucket, optFns...)
	case "minio":
		return minioblob.Dial(cfg.endpoint, cfg.bucket, func(o *minioblob.Options) {
			o.AccessKey = cfg.accessKey
			o.SecretKey = cfg.secretKey
			o.Secure = !cfg.insecure
			o.Prefix = cfg.prefix
		})
	default:
		return blobstore.NewLocalStore(cfg.root), nil
	}
}
