package logfile

import (
	"container/list"
	"io"
	"os"
	"sync"

	"github.com/cinderdb/cinder/pkg/fileid"
)

// Dir is a fixed-capacity LRU cache of open, mmap'd Readers keyed by
// file-id, mirroring original_source/src/log.rs's LogDir. No example repo
// in the pack imports a third-party LRU library, so this is the one
// deliberately hand-rolled data structure in cinder — see DESIGN.md.
type Dir struct {
	mu       sync.Mutex
	dataDir  string
	capacity int
	order    *list.List
	items    map[uint64]*list.Element
}

type dirEntry struct {
	fileID uint64
	reader *Reader
}

// NewDir creates an LRU cache of at most capacity open readers rooted at
// dataDir.
func NewDir(dataDir string, capacity int) *Dir {
	if capacity < 1 {
		capacity = 1
	}
	return &Dir{
		dataDir:  dataDir,
		capacity: capacity,
		order:    list.New(),
		items:    make(map[uint64]*list.Element),
	}
}

func (d *Dir) get(fileID uint64) (*Reader, error) {
	if el, ok := d.items[fileID]; ok {
		d.order.MoveToFront(el)
		return el.Value.(*dirEntry).reader, nil
	}

	f, err := os.OpenFile(fileid.DataFileName(d.dataDir, fileID), os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	reader, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	el := d.order.PushFront(&dirEntry{fileID: fileID, reader: reader})
	d.items[fileID] = el

	if d.order.Len() > d.capacity {
		oldest := d.order.Back()
		if oldest != nil {
			d.order.Remove(oldest)
			evicted := oldest.Value.(*dirEntry)
			delete(d.items, evicted.fileID)
			_ = evicted.reader.Close()
		}
	}

	return reader, nil
}

// Read returns the len bytes at pos in fileID, opening (or reusing a cached
// open handle to) that data file as needed.
func (d *Dir) Read(fileID, length, pos uint64) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	reader, err := d.get(fileID)
	if err != nil {
		return nil, err
	}
	return reader.At(length, pos)
}

// Copy streams the len bytes at pos in fileID into dst.
func (d *Dir) Copy(fileID, length, pos uint64, dst io.Writer) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	reader, err := d.get(fileID)
	if err != nil {
		return 0, err
	}
	return reader.CopyRaw(length, pos, dst)
}

// Close closes every cached reader.
func (d *Dir) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var first error
	for _, el := range d.items {
		if err := el.Value.(*dirEntry).reader.Close(); err != nil && first == nil {
			first = err
		}
	}
	d.items = make(map[uint64]*list.Element)
	d.order.Init()
	return first
}
