package reader

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cinderdb/cinder/internal/dbcontext"
	"github.com/cinderdb/cinder/internal/keydir"
	"github.com/cinderdb/cinder/internal/logfile"
	"github.com/cinderdb/cinder/internal/record"
	"github.com/cinderdb/cinder/pkg/fileid"
)

func setupStore(t *testing.T) *dbcontext.Context {
	t.Helper()
	dir := t.TempDir()

	f, err := logfile.Create(fileid.DataFileName(dir, 0))
	require.NoError(t, err)
	w, err := logfile.NewWriter(f)
	require.NoError(t, err)

	idx, err := w.Append(record.Encode(record.DataFileEntry{
		Tstamp: 1, Key: []byte("k"), Value: []byte("v"),
	}))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	kd := keydir.New()
	kd.Set([]byte("k"), keydir.Entry{FileID: 0, Pos: idx.Pos, Len: idx.Len, Tstamp: 1})

	return dbcontext.New(dir, kd)
}

func TestReaderGetHitAndMiss(t *testing.T) {
	ctx := setupStore(t)
	r := New(ctx, 4)
	defer r.Close()

	val, ok, err := r.Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", string(val))

	_, ok, err = r.Get([]byte("missing"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPoolAcquireRelease(t *testing.T) {
	ctx := setupStore(t)
	pool := NewPool(ctx, 2, 4)
	defer pool.Close()

	r1 := pool.Acquire()
	r2 := pool.Acquire()
	require.NotSame(t, r1, r2)

	pool.Release(r1)
	r3 := pool.Acquire()
	require.Same(t, r1, r3)

	pool.Release(r2)
	pool.Release(r3)
}
