package ingest

import (
	"bytes"
	"errors"
	"log/slog"
	"strconv"
	"testing"

	"github.com/hupe1980/hashtable"
	"github.com/hupe1980/hashtable/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable(t *testing.T) *hashtable.Table[Record] {
	t.Helper()
	tbl, err := hashtable.New[Record]()
	require.NoError(t, err)
	return tbl
}

func TestOptions_Key(t *testing.T) {
	rec := Record{Source: "s", Line: 3, Fields: []string{"a", " 42 ", "x7"}}

	tests := []struct {
		name string
		col  int
		kind KeyKind
		want hashtable.Key
	}{
		{"Text", 1, KeyText, hashtable.TextKey(" 42 ")},
		{"Int", 1, KeyInt, hashtable.IntKey(42)},
		{"AutoInt", 1, KeyAuto, hashtable.IntKey(42)},
		{"AutoText", 2, KeyAuto, hashtable.TextKey("x7")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{KeyColumn: tt.col, KeyKind: tt.kind}
			got, err := opts.Key(rec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("InvalidInt", func(t *testing.T) {
		_, err := Options{KeyColumn: 2, KeyKind: KeyInt}.Key(rec)
		var ik *ErrInvalidKey
		require.ErrorAs(t, err, &ik)
		assert.Equal(t, 3, ik.Line)
		assert.Equal(t, "x7", ik.Value)
		assert.ErrorIs(t, err, strconv.ErrSyntax)
	})

	t.Run("ShortRecord", func(t *testing.T) {
		_, err := Options{KeyColumn: 4}.Key(rec)
		assert.ErrorIs(t, err, ErrKeyColumn)
		assert.ErrorContains(t, err, "s:3 has 3 fields")
	})
}

func TestParseKeyKind(t *testing.T) {
	for _, k := range []KeyKind{KeyText, KeyInt, KeyAuto} {
		got, err := ParseKeyKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKeyKind("float")
	assert.Error(t, err)
}

func TestLoadVerify(t *testing.T) {
	rng := testutil.NewRNG(42)
	rows := rng.Records(200, 6, 4)
	src := NewCSVSource("records.csv", testutil.CSV(testutil.Header(6), rows))

	tbl := newTable(t)
	rep, err := Load(t.Context(), tbl, src)
	require.NoError(t, err)

	assert.Equal(t, "records.csv", rep.Source)
	assert.Equal(t, 200, rep.Rows)
	assert.Equal(t, 200, rep.Inserted)
	assert.True(t, rep.Duplicates.IsEmpty())
	assert.Equal(t, 200, tbl.Len())
	assert.GreaterOrEqual(t, tbl.Size(), tbl.Len())

	for i, row := range rows {
		got := tbl.Get(hashtable.TextKey(row[4]), Record{})
		assert.Equal(t, row, got.Fields)
		assert.Equal(t, i+2, got.Line)
	}

	vrep, err := Verify(t.Context(), tbl, src)
	require.NoError(t, err)
	assert.Equal(t, 200, vrep.Rows)
	assert.True(t, vrep.Missing.IsEmpty())
	assert.True(t, vrep.Shadowed.IsEmpty())
}

func TestLoad_DuplicateKeysFirstWins(t *testing.T) {
	data := []byte("id,a,b,c,key\n" +
		"1,x,x,x,k1\n" +
		"2,x,x,x,k2\n" +
		"3,x,x,x,k1\n" +
		"4,x,x,x,k3\n" +
		"5,x,x,x,k2\n")
	src := NewCSVSource("dups.csv", data)

	tbl := newTable(t)
	rep, err := Load(t.Context(), tbl, src)
	require.NoError(t, err)

	assert.Equal(t, 5, rep.Rows)
	assert.Equal(t, 3, rep.Inserted)
	assert.Equal(t, []uint32{4, 6}, rep.Duplicates.ToArray())

	assert.Equal(t, "1", tbl.Get(hashtable.TextKey("k1"), Record{}).Fields[0])
	assert.Equal(t, "2", tbl.Get(hashtable.TextKey("k2"), Record{}).Fields[0])

	vrep, err := Verify(t.Context(), tbl, src)
	require.NoError(t, err)
	assert.True(t, vrep.Missing.IsEmpty())
	assert.Equal(t, []uint32{4, 6}, vrep.Shadowed.ToArray())
}

func TestVerify_Missing(t *testing.T) {
	data := []byte("h0,h1\n1,a\n2,b\n")
	src := NewCSVSource("x.csv", data)
	opt := func(o *Options) { o.KeyColumn = 0; o.KeyKind = KeyInt }

	tbl := newTable(t)
	_, err := Load(t.Context(), tbl, src, opt)
	require.NoError(t, err)

	_, ok := tbl.Remove(hashtable.IntKey(2))
	require.True(t, ok)

	var buf bytes.Buffer
	logger := hashtable.NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	vrep, err := Verify(t.Context(), tbl, src, opt, func(o *Options) { o.Logger = logger })
	require.NoError(t, err)
	assert.Equal(t, []uint32{3}, vrep.Missing.ToArray())
	assert.Contains(t, buf.String(), "verify found missing records")
	assert.Contains(t, buf.String(), "source=x.csv")
}

func TestLoad_Errors(t *testing.T) {
	t.Run("ShortRow", func(t *testing.T) {
		src := NewCSVSource("short.csv", []byte("a,b,c,d,e\n1,2,3,4,5\n1,2\n"))
		tbl := newTable(t)

		var buf bytes.Buffer
		logger := hashtable.NewLogger(slog.NewJSONHandler(&buf, nil))

		rep, err := Load(t.Context(), tbl, src, func(o *Options) { o.Logger = logger })
		assert.ErrorIs(t, err, ErrKeyColumn)
		assert.Equal(t, 1, rep.Rows)
		assert.Equal(t, 1, tbl.Len())
		assert.Contains(t, buf.String(), `"msg":"load failed"`)
	})

	t.Run("BadIntKey", func(t *testing.T) {
		src := NewCSVSource("ints.csv", []byte("k\n1\nzwei\n"))
		tbl := newTable(t)

		_, err := Load(t.Context(), tbl, src, func(o *Options) {
			o.KeyColumn = 0
			o.KeyKind = KeyInt
		})
		var ik *ErrInvalidKey
		require.True(t, errors.As(err, &ik))
		assert.Equal(t, "ints.csv", ik.Source)
		assert.Equal(t, 3, ik.Line)
	})
}
