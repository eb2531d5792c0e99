// Package reader implements a single reader worker and the bounded pool
// that hands them out, ported from original_source/src/reader.rs. Each
// reader owns a private logfile.Dir, trading memory for lock-freedom: no
// two readers ever contend on the same open file handle.
package reader

import (
	"math/rand/v2"
	"time"

	"github.com/cinderdb/cinder/internal/dbcontext"
	"github.com/cinderdb/cinder/internal/logfile"
	"github.com/cinderdb/cinder/internal/record"
)

// Reader looks up keys in the shared key directory and deserializes their
// current value from whichever data file holds it.
type Reader struct {
	ctx   *dbcontext.Context
	files *logfile.Dir
}

// New creates a reader with its own private file-handle cache of capacity
// cacheSize, rooted at ctx's data directory.
func New(ctx *dbcontext.Context, cacheSize int) *Reader {
	return &Reader{ctx: ctx, files: logfile.NewDir(ctx.Path(), cacheSize)}
}

// Get returns the current value for key, or (nil, false) if key has no
// live entry. Tombstones never appear here: delete removes the key
// directory entry, so there is nothing for Get to find.
func (r *Reader) Get(key []byte) ([]byte, bool, error) {
	entry, ok := r.ctx.KeyDir().Get(key)
	if !ok {
		return nil, false, nil
	}

	raw, err := r.files.Read(entry.FileID, entry.Len, entry.Pos)
	if err != nil {
		return nil, false, err
	}

	e, _, err := record.Decode(raw, entry.FileID, entry.Pos)
	if err != nil {
		return nil, false, err
	}

	return e.Value, true, nil
}

// Close releases every file handle this reader has opened.
func (r *Reader) Close() error {
	return r.files.Close()
}

// Pool is a fixed-size set of readers. Acquire pops one with spin-wait and
// exponential backoff when the pool is momentarily empty; Release pushes
// one back unconditionally, so the pool never shrinks even if a caller
// observed an error from the reader it borrowed.
type Pool struct {
	slots chan *Reader
}

// NewPool seeds a pool of n readers, each with its own cacheSize-capacity
// file cache. Reader construction is synchronous and infallible — it only
// allocates in-memory structures, no files are opened until first use.
func NewPool(ctx *dbcontext.Context, n, cacheSize int) *Pool {
	slots := make(chan *Reader, n)
	for i := 0; i < n; i++ {
		slots <- New(ctx, cacheSize)
	}
	return &Pool{slots: slots}
}

const (
	backoffInitial = time.Microsecond * 50
	backoffMax     = time.Millisecond * 5
)

// Acquire returns a reader from the pool, spin-waiting with exponential
// backoff if every reader is currently checked out.
func (p *Pool) Acquire() *Reader {
	backoff := backoffInitial
	for {
		select {
		case r := <-p.slots:
			return r
		default:
		}

		time.Sleep(backoff + time.Duration(rand.Int64N(int64(backoff)+1)))
		if backoff < backoffMax {
			backoff *= 2
			if backoff > backoffMax {
				backoff = backoffMax
			}
		}
	}
}

// Release returns r to the pool. It is unconditional: callers push back
// even a reader that just returned an error, so the pool's capacity never
// drains over time.
func (p *Pool) Release(r *Reader) {
	p.slots <- r
}

// Close closes every reader currently in the pool. Readers checked out at
// call time are not closed, and a reader released after Close returns goes
// back into the pool still open. Engine.Close calls this right after
// closing the writer, without waiting for in-flight Get calls.
func (p *Pool) Close() error {
	var first error
	for {
		select {
		case r := <-p.slots:
			if err := r.Close(); err != nil && first == nil {
				first = err
			}
		default:
			return first
		}
	}
}
