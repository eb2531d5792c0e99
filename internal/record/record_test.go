package record

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	cerrors "github.com/cinderdb/cinder/pkg/errors"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []DataFileEntry{
		{Tstamp: 1234, Key: []byte("hello"), Value: []byte("world")},
		{Tstamp: -5, Key: []byte("k"), Value: []byte{}},
		{Tstamp: 0, Key: []byte("tombstoned"), Value: nil},
	}

	for _, c := range cases {
		encoded := Encode(c)
		got, n, err := Decode(encoded, 1, 0)
		require.NoError(t, err)
		require.Equal(t, len(encoded), n)
		require.Equal(t, c.Tstamp, got.Tstamp)
		require.Equal(t, c.Key, got.Key)
		if c.Value == nil {
			require.Nil(t, got.Value)
		} else {
			require.Equal(t, c.Value, got.Value)
		}
	}
}

func TestDecodeDetectsChecksumMismatch(t *testing.T) {
	encoded := Encode(DataFileEntry{Tstamp: 1, Key: []byte("k"), Value: []byte("v")})
	encoded[len(encoded)-1] ^= 0xFF

	_, _, err := Decode(encoded, 7, 42)
	require.Error(t, err)

	rec, ok := cerrors.AsRecordError(err)
	require.True(t, ok)
	require.Equal(t, uint64(7), rec.FileID())
	require.Equal(t, uint64(42), rec.Pos())
}

func TestDecodeDetectsTruncation(t *testing.T) {
	encoded := Encode(DataFileEntry{Tstamp: 1, Key: []byte("key"), Value: []byte("value")})
	_, _, err := Decode(encoded[:len(encoded)-2], 0, 0)
	require.Error(t, err)
}

func TestReadFromMultipleRecords(t *testing.T) {
	a := Encode(DataFileEntry{Tstamp: 1, Key: []byte("a"), Value: []byte("1")})
	b := Encode(DataFileEntry{Tstamp: 2, Key: []byte("b"), Value: nil})

	buf := bytes.NewBuffer(nil)
	buf.Write(a)
	buf.Write(b)

	first, n1, err := ReadFrom(buf, 0, 0)
	require.NoError(t, err)
	require.Equal(t, len(a), n1)
	require.Equal(t, []byte("1"), first.Value)

	second, n2, err := ReadFrom(buf, 0, uint64(n1))
	require.NoError(t, err)
	require.Equal(t, len(b), n2)
	require.Nil(t, second.Value)
}

func TestHintEntryRoundTrip(t *testing.T) {
	e := HintFileEntry{Tstamp: 99, Len: 123, Pos: 456, Key: []byte("hinted")}
	encoded := EncodeHint(e)

	got, n, err := DecodeHint(encoded, 3, 0)
	require.NoError(t, err)
	require.Equal(t, len(encoded), n)
	require.Equal(t, e, got)
}
