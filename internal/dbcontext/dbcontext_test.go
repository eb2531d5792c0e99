package dbcontext

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cinderdb/cinder/internal/keydir"
)

func TestKeydirSetReturnsPrevious(t *testing.T) {
	ctx := New("/tmp/store", keydir.New())

	_, ok := ctx.KeydirSet([]byte("k"), keydir.Entry{FileID: 1, Pos: 0, Len: 1})
	require.False(t, ok)

	prev, ok := ctx.KeydirSet([]byte("k"), keydir.Entry{FileID: 2, Pos: 5, Len: 3})
	require.True(t, ok)
	require.Equal(t, uint64(1), prev.FileID)
}

func TestCloseIsIdempotent(t *testing.T) {
	ctx := New("/tmp/store", keydir.New())
	require.False(t, ctx.IsClosed())

	require.True(t, ctx.Close())
	require.True(t, ctx.IsClosed())
	require.False(t, ctx.Close())
}
