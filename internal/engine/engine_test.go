package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	cerrors "github.com/cinderdb/cinder/pkg/errors"
	"github.com/cinderdb/cinder/pkg/logger"
	"github.com/cinderdb/cinder/pkg/options"
)

func testOpts(dir string, mutators ...options.OptionFunc) options.Options {
	fns := append([]options.OptionFunc{
		options.WithDataDir(dir),
		options.WithLogger(logger.Noop()),
	}, mutators...)
	return options.Resolve(fns...)
}

func TestOpenAcquiresLockAndRejectsSecondOpen(t *testing.T) {
	dir := t.TempDir()

	e1, err := Open(testOpts(dir))
	require.NoError(t, err)
	defer e1.Close()

	_, err = Open(testOpts(dir))
	require.Error(t, err)
}

func TestSetGetDeleteLifecycle(t *testing.T) {
	dir := t.TempDir()
	e, err := Open(testOpts(dir))
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, e.Set([]byte("a"), []byte("1")))

	v, ok, err := e.Get([]byte("a"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", string(v))

	deleted, err := e.Delete([]byte("a"))
	require.NoError(t, err)
	require.True(t, deleted)

	_, ok, err = e.Get([]byte("a"))
	require.NoError(t, err)
	require.False(t, ok)
}

// S2 at the engine layer: overwrite, close, reopen, verify that recovery
// yields the latest value.
func TestOverwriteThenReopenRecoversLatestValue(t *testing.T) {
	dir := t.TempDir()
	e, err := Open(testOpts(dir))
	require.NoError(t, err)

	require.NoError(t, e.Set([]byte("k"), []byte("v1")))
	require.NoError(t, e.Set([]byte("k"), []byte("v2")))
	require.NoError(t, e.Close())

	e2, err := Open(testOpts(dir))
	require.NoError(t, err)
	defer e2.Close()

	v, ok, err := e2.Get([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v2", string(v))
}

// S5: after Sync returns, a non-graceful reopen (no Close call on the first
// handle other than releasing resources via Close, since cinder has no
// separate "crash" hook) still observes every synced key.
func TestSyncedWritesSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	e, err := Open(testOpts(dir))
	require.NoError(t, err)

	require.NoError(t, e.Set([]byte("durable"), []byte("value")))
	require.NoError(t, e.Sync())
	require.NoError(t, e.Close())

	e2, err := Open(testOpts(dir))
	require.NoError(t, err)
	defer e2.Close()

	v, ok, err := e2.Get([]byte("durable"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "value", string(v))
}

func TestMergeReturnsUnsupported(t *testing.T) {
	dir := t.TempDir()
	e, err := Open(testOpts(dir))
	require.NoError(t, err)
	defer e.Close()

	err = e.Merge()
	require.ErrorIs(t, err, ErrMergeUnsupported)
}

func TestClosedGateRejectsEveryOperation(t *testing.T) {
	dir := t.TempDir()
	e, err := Open(testOpts(dir))
	require.NoError(t, err)

	require.NoError(t, e.Close())
	require.NoError(t, e.Close(), "Close must be idempotent")

	require.True(t, cerrors.IsClosed(e.Set([]byte("k"), []byte("v"))))
	_, _, err = e.Get([]byte("k"))
	require.True(t, cerrors.IsClosed(err))
	_, err = e.Delete([]byte("k"))
	require.True(t, cerrors.IsClosed(err))
	require.True(t, cerrors.IsClosed(e.Sync()))
	require.True(t, cerrors.IsClosed(e.Merge()))
}

func TestRotationProducesMultipleDataFiles(t *testing.T) {
	dir := t.TempDir()
	e, err := Open(testOpts(dir, options.WithMaxFileSize(1024)))
	require.NoError(t, err)
	defer e.Close()

	for i := 0; i < 200; i++ {
		key := []byte{byte(i), byte(i >> 8)}
		require.NoError(t, e.Set(key, make([]byte, 64)))
	}

	require.Greater(t, e.writer.ActiveFileID(), uint64(0))
}
