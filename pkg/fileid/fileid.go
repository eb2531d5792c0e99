// Package fileid maps a data directory and a file-id to the on-disk paths
// cinder uses for data and hint files, enumerates existing file-ids, and
// provides the wall-clock timestamp source every appended record carries.
//
// Filenames follow a fixed, unprefixed scheme — "<fileid>.bitcask.data" and
// "<fileid>.bitcask.hint" — so SortedFileIDs can recover the id space by
// parsing filenames alone, without a side index.
package fileid

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	dataFileExt = "data"
	hintFileExt = "hint"
)

// DataFileName returns the path of the data file for fileid within dir.
func DataFileName(dir string, id uint64) string {
	return filepath.Join(dir, strconv.FormatUint(id, 10)+".bitcask."+dataFileExt)
}

// HintFileName returns the path of the hint file for fileid within dir.
func HintFileName(dir string, id uint64) string {
	return filepath.Join(dir, strconv.FormatUint(id, 10)+".bitcask."+hintFileExt)
}

// SortedFileIDs enumerates every data file in dir, parses the file-id from
// its name, and returns the surviving ids in ascending order. Hint files,
// non-bitcask files, and names that don't parse as a non-negative integer
// before the first "." are silently skipped — the data file is always the
// authoritative enumeration; hint files merely accompany one.
func SortedFileIDs(dir string) ([]uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint64]struct{}, len(entries))
	ids := make([]uint64, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) != "."+dataFileExt {
			continue
		}

		stem := strings.TrimSuffix(name, "."+dataFileExt)
		idPart, _, _ := strings.Cut(stem, ".")

		id, err := strconv.ParseUint(idPart, 10, 64)
		if err != nil {
			continue
		}

		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Timestamp returns the local wall clock in nanoseconds as a signed 64-bit
// integer. It is stored in every record and key-directory entry for audit;
// recovery replays records in file order without comparing timestamps, and
// it is never used to order user operations.
func Timestamp() int64 {
	return time.Now().UnixNano()
}
