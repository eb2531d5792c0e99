// Package pio provides buffered readers and writers that track their own
// absolute byte offset, ported from the position-tracking wrappers in
// original_source/src/bufio.rs. Every append and every replay needs to know
// the exact file offset a record started at — for the writer, that offset
// becomes the KeyDirEntry's Pos. The Reader offers the same tracking for
// sequential reads; recovery does not use it and counts offsets itself.
package pio

import (
	"bufio"
	"io"
	"os"
)

// Reader wraps a buffered *os.File reader that tracks the absolute position
// of the next byte it will return.
type Reader struct {
	pos    int64
	file   *os.File
	reader *bufio.Reader
}

// NewReader opens f for position-tracked buffered reads starting at f's
// current offset.
func NewReader(f *os.File) (*Reader, error) {
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	return &Reader{pos: pos, file: f, reader: bufio.NewReader(f)}, nil
}

// Pos returns the absolute offset of the next byte Read will return.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.pos += int64(n)
	return n, err
}

// Seek repositions the reader, discarding any buffered bytes.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	pos, err := r.file.Seek(offset, whence)
	if err != nil {
		return pos, err
	}
	r.pos = pos
	r.reader.Reset(r.file)
	return pos, nil
}

// Writer wraps a buffered *os.File writer opened for append, tracking the
// absolute position of the next byte it will write.
type Writer struct {
	pos    int64
	file   *os.File
	writer *bufio.Writer
}

// NewWriter opens f for position-tracked buffered append writes, seeking to
// the current end of file.
func NewWriter(f *os.File) (*Writer, error) {
	pos, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	return &Writer{pos: pos, file: f, writer: bufio.NewWriter(f)}, nil
}

// Pos returns the absolute offset the next Write will start at.
func (w *Writer) Pos() int64 {
	return w.pos
}

// File returns the underlying file, for Sync and stat calls.
func (w *Writer) File() *os.File {
	return w.file
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.writer.Write(p)
	w.pos += int64(n)
	return n, err
}

// Flush pushes buffered bytes to the underlying file without fsyncing.
func (w *Writer) Flush() error {
	return w.writer.Flush()
}

// Sync flushes buffered bytes and fsyncs the underlying file.
func (w *Writer) Sync() error {
	if err := w.writer.Flush(); err != nil {
		return err
	}
	return w.file.Sync()
}
