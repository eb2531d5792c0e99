package filesys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateDirCreatesMissingDir(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "data")

	require.NoError(t, CreateDir(dir, 0o755, true))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestCreateDirForceAllowsExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, CreateDir(dir, 0o755, true))
}

func TestCreateDirWithoutForceRejectsExisting(t *testing.T) {
	dir := t.TempDir()
	err := CreateDir(dir, 0o755, false)
	require.Error(t, err)
}

func TestCreateDirRejectsFilePath(t *testing.T) {
	base := t.TempDir()
	filePath := filepath.Join(base, "not-a-dir")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0o644))

	err := CreateDir(filePath, 0o755, true)
	require.ErrorIs(t, err, ErrIsNotDir)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present")
	require.NoError(t, os.WriteFile(present, nil, 0o644))

	ok, err := Exists(present)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Exists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.False(t, ok)
}
