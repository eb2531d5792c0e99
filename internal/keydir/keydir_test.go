package keydir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSetGetDelete(t *testing.T) {
	kd := New()

	_, ok := kd.Get([]byte("k"))
	require.False(t, ok)

	entry := Entry{FileID: 1, Pos: 0, Len: 10, Tstamp: 100}
	prev, had := kd.Set([]byte("k"), entry)
	require.False(t, had)
	require.Zero(t, prev)

	got, ok := kd.Get([]byte("k"))
	require.True(t, ok)
	if diff := cmp.Diff(entry, got); diff != "" {
		t.Fatalf("keydir entry mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 1, kd.Len())

	entry2 := Entry{FileID: 2, Pos: 20, Len: 5, Tstamp: 200}
	prev, had = kd.Set([]byte("k"), entry2)
	require.True(t, had)
	if diff := cmp.Diff(entry, prev); diff != "" {
		t.Fatalf("previous entry mismatch (-want +got):\n%s", diff)
	}

	removed, ok := kd.Delete([]byte("k"))
	require.True(t, ok)
	require.Equal(t, entry2, removed)
	require.Equal(t, 0, kd.Len())

	_, ok = kd.Delete([]byte("k"))
	require.False(t, ok)
}

func TestStatsLiveDeadFragmentation(t *testing.T) {
	stats := NewStats()

	stats.AddLive(1)
	stats.AddLive(1)
	require.Equal(t, FileStats{LiveKeys: 2}, stats.File(1))
	require.Equal(t, float64(0), stats.File(1).Fragmentation())

	stats.Overwrite(1, 50)
	fs := stats.File(1)
	require.Equal(t, uint64(1), fs.LiveKeys)
	require.Equal(t, uint64(1), fs.DeadKeys)
	require.Equal(t, uint64(50), fs.DeadBytes)
	require.InDelta(t, 0.5, fs.Fragmentation(), 0.0001)

	stats.AddDead(2, 30)
	require.Equal(t, FileStats{DeadKeys: 1, DeadBytes: 30}, stats.File(2))
	require.Equal(t, float64(1), stats.File(2).Fragmentation())

	ids := stats.FileIDs()
	require.ElementsMatch(t, []uint64{1, 2}, ids)
}
