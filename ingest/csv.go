package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/hashtable/internal/compress"
)

// CSVSource reads delimited records from an in-memory blob.
type CSVSource struct {
	name   string
	data   []byte
	codec  compress.Codec
	err    error
	comma  rune
	header bool

	release func()
}

// NewCSVSource creates a source over data. Unless Options.Codec names one,
// the compression codec is taken from the name's extension, falling back
// to the stream's magic bytes. An unknown codec name is reported by Scan.
func NewCSVSource(name string, data []byte, optFns ...func(o *Options)) *CSVSource {
	opts := buildOptions(optFns)
	codec, err := detectCodec(name, data, opts.Codec)

	return &CSVSource{
		name:   name,
		data:   data,
		codec:  codec,
		err:    err,
		comma:  opts.Comma,
		header: opts.Header,
	}
}

func detectCodec(name string, data []byte, override string) (compress.Codec, error) {
	if override != "" && !strings.EqualFold(override, "auto") {
		return compress.ParseCodec(override)
	}
	if codec := compress.FromExtension(name); codec != compress.None {
		return codec, nil
	}
	return compress.Sniff(data), nil
}

// Name returns the blob name.
func (s *CSVSource) Name() string { return s.name }

// Codec returns the detected compression codec.
func (s *CSVSource) Codec() compress.Codec { return s.codec }

// Scan decodes the blob and calls fn for every row after the optional
// header. Record.Line is the line the row starts on.
func (s *CSVSource) Scan(ctx context.Context, fn func(Record) error) error {
	if s.err != nil {
		return fmt.Errorf("ingest: %s: %w", s.name, s.err)
	}
	data, err := compress.Decode(s.data, s.codec)
	if err != nil {
		return fmt.Errorf("ingest: %s: %w", s.name, err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = s.comma
	r.FieldsPerRecord = -1

	first := true
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("ingest: %s: %w", s.name, err)
		}
		if first {
			first = false
			if s.header {
				continue
			}
		}
		line, _ := r.FieldPos(0)
		if err := fn(Record{Source: s.name, Line: line, Fields: fields}); err != nil {
			return err
		}
	}
}

// Close releases the memory reserved for the blob when it was fetched
// through a resource controller.
func (s *CSVSource) Close() error {
	if s.release != nil {
		s.release()
		s.release = nil
	}
	s.data = nil
	return nil
}
