package lockfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()

	l, err := Acquire(dir)
	require.NoError(t, err)
	require.NoError(t, l.Release())
}

func TestAcquireFailsWhenAlreadyLocked(t *testing.T) {
	dir := t.TempDir()

	l, err := Acquire(dir)
	require.NoError(t, err)
	defer l.Release()

	_, err = Acquire(dir)
	require.Error(t, err)
}

func TestReleaseOnNilLockIsSafe(t *testing.T) {
	var l *Lock
	require.NoError(t, l.Release())
}
