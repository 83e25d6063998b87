package ingest

import (
	"context"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/hashtable"
)

// Report summarizes loading one source.
type Report struct {
	Source   string
	Rows     int
	Inserted int
	// Duplicates holds the lines whose key was already present. The
	// earlier record was kept.
	Duplicates *roaring.Bitmap
}

// VerifyReport summarizes reading one source back through a table.
type VerifyReport struct {
	Source string
	Rows   int
	// Missing holds the lines whose key was not found.
	Missing *roaring.Bitmap
	// Shadowed holds the lines whose key resolved to a different record,
	// i.e. a duplicate that lost to an earlier row.
	Shadowed *roaring.Bitmap
}

// Load puts every record of src into t keyed by the configured column.
// Records are inserted in source order on the calling goroutine, so the
// first record for a key wins.
func Load(ctx context.Context, t *hashtable.Table[Record], src Source, optFns ...func(o *Options)) (*Report, error) {
	opts := buildOptions(optFns)
	logger := opts.Logger.WithSource(src.Name())

	rep := &Report{
		Source:     src.Name(),
		Duplicates: roaring.New(),
	}

	err := src.Scan(ctx, func(r Record) error {
		key, err := opts.Key(r)
		if err != nil {
			return err
		}
		rep.Rows++
		if t.Put(key, r) {
			rep.Inserted++
		} else {
			rep.Duplicates.Add(uint32(r.Line))
		}
		return nil
	})

	logger.LogLoad(ctx, rep.Rows, rep.Inserted, int(rep.Duplicates.GetCardinality()), err)
	return rep, err
}

// Verify reads every record of src back through t.Get.
func Verify(ctx context.Context, t *hashtable.Table[Record], src Source, optFns ...func(o *Options)) (*VerifyReport, error) {
	opts := buildOptions(optFns)
	logger := opts.Logger.WithSource(src.Name())

	rep := &VerifyReport{
		Source:   src.Name(),
		Missing:  roaring.New(),
		Shadowed: roaring.New(),
	}

	err := src.Scan(ctx, func(r Record) error {
		key, err := opts.Key(r)
		if err != nil {
			return err
		}
		rep.Rows++
		got, ok := t.Lookup(key)
		switch {
		case !ok:
			rep.Missing.Add(uint32(r.Line))
		case !got.Equal(r):
			rep.Shadowed.Add(uint32(r.Line))
		}
		return nil
	})
	if err != nil {
		return rep, err
	}

	logger.LogVerify(ctx, rep.Rows, int(rep.Missing.GetCardinality()))
	return rep, nil
}
