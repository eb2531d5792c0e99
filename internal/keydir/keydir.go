// Package keydir implements the in-memory key directory — the index that
// maps every live key to the location of its most recent value on disk —
// and the per-file liveness statistics recovery and the writer maintain to
// support future compaction. Ported from original_source/src/context.rs
// (the keydir itself) and log.rs (LogStatistics).
package keydir

import "sync"

// Entry records where a key's current value lives: which file, at what
// byte offset, how many bytes the encoded record occupies, and the
// timestamp it was written with.
type Entry struct {
	FileID uint64
	Pos    uint64
	Len    uint64
	Tstamp int64
}

// KeyDir is a concurrent map from key to Entry. All access goes through a
// single RWMutex; the workload is read-heavy (many Get callers) with writes
// serialized through the one writer goroutine.
type KeyDir struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New creates an empty key directory.
func New() *KeyDir {
	return &KeyDir{entries: make(map[string]Entry)}
}

// Get returns the entry for key and whether it was present.
func (k *KeyDir) Get(key []byte) (Entry, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	e, ok := k.entries[string(key)]
	return e, ok
}

// Set installs entry for key and returns the entry it replaced, if any.
func (k *KeyDir) Set(key []byte, entry Entry) (Entry, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	prev, ok := k.entries[string(key)]
	k.entries[string(key)] = entry
	return prev, ok
}

// Delete removes key and returns the entry it held, if any.
func (k *KeyDir) Delete(key []byte) (Entry, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	prev, ok := k.entries[string(key)]
	delete(k.entries, string(key))
	return prev, ok
}

// Len returns the number of live keys.
func (k *KeyDir) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.entries)
}

// Stats tracks, per data file, how many of its records are still the
// current value for their key versus shadowed by a later write or a
// tombstone, plus the byte cost of the dead ones.
type Stats struct {
	mu    sync.Mutex
	files map[uint64]*FileStats
}

// FileStats is the liveness count for a single data file.
type FileStats struct {
	LiveKeys  uint64
	DeadKeys  uint64
	DeadBytes uint64
}

// Fragmentation returns the fraction of this file's records that are dead,
// in [0,1]. A file with no dead records has zero fragmentation.
func (f *FileStats) Fragmentation() float64 {
	if f.DeadKeys == 0 {
		return 0
	}
	total := f.DeadKeys + f.LiveKeys
	return float64(f.DeadKeys) / float64(total)
}

// NewStats creates an empty per-file statistics tracker.
func NewStats() *Stats {
	return &Stats{files: make(map[uint64]*FileStats)}
}

func (s *Stats) file(fileID uint64) *FileStats {
	fs, ok := s.files[fileID]
	if !ok {
		fs = &FileStats{}
		s.files[fileID] = fs
	}
	return fs
}

// AddLive records a newly-written record as the live value for its key.
func (s *Stats) AddLive(fileID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.file(fileID).LiveKeys++
}

// AddDead records nbytes in fileID as already-dead at write time — used
// for every tombstone, both when the writer appends one and when recovery
// replays one.
func (s *Stats) AddDead(fileID, nbytes uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fs := s.file(fileID)
	fs.DeadKeys++
	fs.DeadBytes += nbytes
}

// Overwrite moves one record in fileID from live to dead — the old location
// of a key whose new value (or tombstone) was just written elsewhere.
func (s *Stats) Overwrite(fileID, nbytes uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fs := s.file(fileID)
	if fs.LiveKeys > 0 {
		fs.LiveKeys--
	}
	fs.DeadKeys++
	fs.DeadBytes += nbytes
}

// File returns a snapshot of fileID's statistics.
func (s *Stats) File(fileID uint64) FileStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fs, ok := s.files[fileID]; ok {
		return *fs
	}
	return FileStats{}
}

// FileIDs returns the set of file-ids with recorded statistics.
func (s *Stats) FileIDs() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uint64, 0, len(s.files))
	for id := range s.files {
		ids = append(ids, id)
	}
	return ids
}
