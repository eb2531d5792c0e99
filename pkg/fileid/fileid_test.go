package fileid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataAndHintFileNames(t *testing.T) {
	require.Equal(t, filepath.Join("dir", "3.bitcask.data"), DataFileName("dir", 3))
	require.Equal(t, filepath.Join("dir", "3.bitcask.hint"), HintFileName("dir", 3))
}

func TestSortedFileIDsSkipsNonDataAndUnparseable(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{
		"0.bitcask.data",
		"2.bitcask.data",
		"1.bitcask.data",
		"1.bitcask.hint",
		"not-a-number.bitcask.data",
		"readme.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	ids, err := SortedFileIDs(dir)
	require.NoError(t, err)
	require.Equal(t, []uint64{0, 1, 2}, ids)
}

func TestSortedFileIDsEmptyDir(t *testing.T) {
	ids, err := SortedFileIDs(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestTimestampIsMonotonicEnough(t *testing.T) {
	a := Timestamp()
	b := Timestamp()
	require.LessOrEqual(t, a, b)
}
