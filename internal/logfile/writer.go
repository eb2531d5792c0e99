package logfile

import (
	"os"

	"github.com/cinderdb/cinder/internal/pio"
)

// Index is the location and size of a just-appended record.
type Index struct {
	Len uint64
	Pos uint64
}

// Writer appends length-delimited byte records to a single data file,
// tracking the absolute file offset the way original_source/src/log.rs's
// LogWriter does over a BufWriterWithPos.
type Writer struct {
	w *pio.Writer
}

// NewWriter wraps f (already opened for append) as a log writer.
func NewWriter(f *os.File) (*Writer, error) {
	w, err := pio.NewWriter(f)
	if err != nil {
		return nil, err
	}
	return &Writer{w: w}, nil
}

// Append writes the already-encoded record bytes and returns the length and
// position the caller should store in the key directory. The write is
// flushed to the OS before returning so Pos()/size-based rotation checks
// observe it immediately; Sync (fsync) is a separate, explicit call.
func (w *Writer) Append(encoded []byte) (Index, error) {
	pos := uint64(w.w.Pos())
	if _, err := w.w.Write(encoded); err != nil {
		return Index{}, err
	}
	if err := w.w.Flush(); err != nil {
		return Index{}, err
	}
	return Index{Len: uint64(w.w.Pos()) - pos, Pos: pos}, nil
}

// Pos returns the current end-of-file offset.
func (w *Writer) Pos() uint64 {
	return uint64(w.w.Pos())
}

// Sync flushes and fsyncs the underlying file.
func (w *Writer) Sync() error {
	return w.w.Sync()
}

// File returns the underlying *os.File, for stat calls.
func (w *Writer) File() *os.File {
	return w.w.File()
}
