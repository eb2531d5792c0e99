// Package writer implements cinder's single mutating path: appending Put
// and Delete records to the active data file, maintaining the key
// directory and per-file statistics, and rotating to a new active file once
// the configured size threshold is crossed. Ported from
// original_source/src/writer.rs, with the placeholder 4096-byte rotation
// threshold replaced by the configurable MaxFileSize.
package writer

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cinderdb/cinder/internal/dbcontext"
	"github.com/cinderdb/cinder/internal/keydir"
	"github.com/cinderdb/cinder/internal/logfile"
	cerrors "github.com/cinderdb/cinder/pkg/errors"
	"github.com/cinderdb/cinder/pkg/fileid"
)

// Writer is the sole mutator of a store's log. It is never shared across
// goroutines directly — callers serialize through Engine, which holds the
// one Writer for the lifetime of the store.
type Writer struct {
	ctx   *dbcontext.Context
	stats *keydir.Stats
	log   *zap.SugaredLogger

	maxFileSize uint64

	activeFileID uint64
	activeFile   *logfile.Writer
	writtenBytes uint64
}

// New wraps an already-open active log writer. Engine.Open passes the stats
// rebuilt by recovery, a freshly created active file whose file-id is one
// past the highest found on disk (0 for a brand-new store), and a
// writtenBytes of 0. stats is writer-private from this point on; no other
// component holds a reference to it.
func New(ctx *dbcontext.Context, stats *keydir.Stats, log *zap.SugaredLogger, maxFileSize uint64, activeFileID uint64, activeFile *logfile.Writer, writtenBytes uint64) *Writer {
	return &Writer{
		ctx:          ctx,
		stats:        stats,
		log:          log,
		maxFileSize:  maxFileSize,
		activeFileID: activeFileID,
		activeFile:   activeFile,
		writtenBytes: writtenBytes,
	}
}

// Put writes key=value and installs it as the current entry for key. If a
// previous entry existed, its bytes are charged to its file as overwritten.
func (w *Writer) Put(key, value []byte) error {
	entry, err := w.write(key, value)
	if err != nil {
		return err
	}

	if prev, ok := w.ctx.KeydirSet(key, entry); ok {
		w.stats.Overwrite(prev.FileID, prev.Len)
	}
	return nil
}

// Delete appends a tombstone for key — always, even if key has no live
// entry, so recovery observes the delete — then removes any live entry
// from the key directory. It reports whether a live entry was removed.
func (w *Writer) Delete(key []byte) (bool, error) {
	if _, err := w.write(key, nil); err != nil {
		return false, err
	}

	prev, ok := w.ctx.KeyDir().Delete(key)
	if ok {
		w.stats.Overwrite(prev.FileID, prev.Len)
	}
	return ok, nil
}

// write appends a DataFileEntry and updates writer-private bookkeeping
// (written_bytes, per-file stats, rotation). It never touches the key
// directory — that is the caller's responsibility, since Put installs the
// new entry while Delete removes it instead.
func (w *Writer) write(key, value []byte) (keydir.Entry, error) {
	tstamp := fileid.Timestamp()

	encoded := encodeEntry(tstamp, key, value)
	idx, err := w.activeFile.Append(encoded)
	if err != nil {
		return keydir.Entry{}, err
	}
	w.writtenBytes += idx.Len

	if value != nil {
		w.stats.AddLive(w.activeFileID)
	} else {
		w.stats.AddDead(w.activeFileID, idx.Len)
	}

	entry := keydir.Entry{FileID: w.activeFileID, Pos: idx.Pos, Len: idx.Len, Tstamp: tstamp}

	if w.writtenBytes > w.maxFileSize {
		if err := w.rotate(); err != nil {
			return entry, err
		}
	}

	return entry, nil
}

// rotate fsyncs the active file, opens a fresh one with the next file-id,
// then closes the old one. The writer lock (held by the caller, internal/lockfile)
// guarantees no other process is creating a file-id concurrently.
func (w *Writer) rotate() error {
	if err := w.activeFile.Sync(); err != nil {
		return err
	}
	oldFile := w.activeFile.File()

	nextID := w.activeFileID + 1
	f, err := logfile.Create(fileid.DataFileName(w.ctx.Path(), nextID))
	if err != nil {
		return err
	}
	nextWriter, err := logfile.NewWriter(f)
	if err != nil {
		f.Close()
		return err
	}

	if err := oldFile.Close(); err != nil {
		w.log.Warnw("failed to close rotated-out data file", "fileid", w.activeFileID, "error", err)
	}

	w.log.Infow("rotated active data file", "previous_fileid", w.activeFileID, "fileid", nextID)

	w.activeFileID = nextID
	w.activeFile = nextWriter
	w.writtenBytes = 0
	return nil
}

// Sync fsyncs the active file.
func (w *Writer) Sync() error {
	if err := w.activeFile.Sync(); err != nil {
		path := w.activeFile.File().Name()
		return cerrors.ClassifySyncError(err, filepath.Base(path), path, int(w.writtenBytes))
	}
	return nil
}

// ActiveFileID returns the file-id currently being appended to.
func (w *Writer) ActiveFileID() uint64 {
	return w.activeFileID
}

// Close syncs and closes the active file. If the active file is still
// empty (a rotation happened but nothing was ever written to the new file,
// or the store was opened and closed without a single write), the empty
// file is removed; failures doing so are logged, not propagated, matching
// the drop-time cleanup behavior described for the original writer.
func (w *Writer) Close() error {
	err := w.activeFile.Sync()

	f := w.activeFile.File()
	path := f.Name()
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}

	if w.writtenBytes == 0 {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			w.log.Warnw("failed to remove empty active data file on close", "path", path, "error", rmErr)
		}
	}

	return err
}
