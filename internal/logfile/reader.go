package logfile

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Reader is a single mmap-backed view onto one data file, grounded in
// original_source/src/log.rs's LogReader. It remaps when a caller asks for
// bytes past the current mapping's length — the file has grown since the
// mapping was taken, which only happens for the active file being appended
// to concurrently with reads.
type Reader struct {
	file   *os.File
	data   []byte
	mapped bool
}

// NewReader mmaps file read-only for the lifetime of the returned Reader.
// Mapping an empty file is legal and yields a zero-length mapping; At/CopyRaw
// on it will simply trigger a remap once data exists.
func NewReader(file *os.File) (*Reader, error) {
	r := &Reader{file: file}
	if err := r.mapCurrent(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reader) mapCurrent() error {
	if r.mapped {
		_ = unix.Munmap(r.data)
		r.data = nil
		r.mapped = false
	}

	info, err := r.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size == 0 {
		r.data = []byte{}
		return nil
	}

	data, err := unix.Mmap(int(r.file.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return err
	}
	r.data = data
	r.mapped = true
	return nil
}

func (r *Reader) ensureMapped(end int) error {
	if end <= len(r.data) {
		return nil
	}
	return r.mapCurrent()
}

// At returns a copy of the len bytes at pos. The returned slice is owned by
// the caller — mmap'd memory is never handed out past a remap, which could
// unmap it out from under a held reference.
func (r *Reader) At(length, pos uint64) ([]byte, error) {
	start := int(pos)
	end := start + int(length)

	if err := r.ensureMapped(end); err != nil {
		return nil, err
	}
	if end > len(r.data) {
		return nil, io.ErrUnexpectedEOF
	}

	out := make([]byte, length)
	copy(out, r.data[start:end])
	return out, nil
}

// CopyRaw copies the len bytes at pos into dst with a single Write of the
// mapped bytes, without an intermediate buffer.
func (r *Reader) CopyRaw(length, pos uint64, dst io.Writer) (int64, error) {
	start := int(pos)
	end := start + int(length)

	if err := r.ensureMapped(end); err != nil {
		return 0, err
	}
	if end > len(r.data) {
		return 0, io.ErrUnexpectedEOF
	}

	n, err := dst.Write(r.data[start:end])
	return int64(n), err
}

// Close unmaps the reader's view and closes its file handle.
func (r *Reader) Close() error {
	if r.mapped {
		_ = unix.Munmap(r.data)
		r.data = nil
		r.mapped = false
	}
	return r.file.Close()
}
