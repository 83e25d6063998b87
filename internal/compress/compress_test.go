package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("id,name,city,zip,email\n1,ann,rome,00100,ann@example.com\n"), 64)

	for _, c := range []Codec{None, Gzip, Zstd, LZ4} {
		t.Run(c.String(), func(t *testing.T) {
			enc, err := Encode(data, c)
			require.NoError(t, err)
			if c != None {
				assert.Less(t, len(enc), len(data))
			}
			assert.Equal(t, c, Sniff(enc))

			dec, err := Decode(enc, c)
			require.NoError(t, err)
			assert.Equal(t, data, dec)
		})
	}
}

func TestFromExtension(t *testing.T) {
	assert.Equal(t, Gzip, FromExtension("people.csv.gz"))
	assert.Equal(t, Zstd, FromExtension("dir/people.csv.zst"))
	assert.Equal(t, Zstd, FromExtension("people.ZSTD"))
	assert.Equal(t, LZ4, FromExtension("people.csv.lz4"))
	assert.Equal(t, None, FromExtension("people.csv"))
}

func TestParseCodec(t *testing.T) {
	c, err := ParseCodec("zst")
	require.NoError(t, err)
	assert.Equal(t, Zstd, c)

	c, err = ParseCodec("")
	require.NoError(t, err)
	assert.Equal(t, None, c)

	_, err = ParseCodec("brotli")
	assert.ErrorIs(t, err, ErrUnknownCodec)
}

func TestDecode_Corrupt(t *testing.T) {
	_, err := Decode([]byte("not gzip"), Gzip)
	assert.Error(t, err)

	_, err = Decode([]byte{1, 2, 3}, Codec(42))
	assert.ErrorIs(t, err, ErrUnknownCodec)
}
