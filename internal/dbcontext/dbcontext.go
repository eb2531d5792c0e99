// Package dbcontext holds the state shared between a store's writer and its
// reader pool: the data directory path, the key directory, and the
// closed-ness of the store. Ported from original_source/src/context.rs.
package dbcontext

import (
	"sync/atomic"

	"github.com/cinderdb/cinder/internal/keydir"
)

// Context is the shared state a writer and every pooled reader hold a
// reference to. It outlives any single writer or reader and is torn down
// exactly once, by Engine.Close. Per-file statistics are deliberately not
// part of the context — they are writer-private, maintained only under the
// writer's own serialization and never read concurrently by pooled readers.
type Context struct {
	path   string
	keydir *keydir.KeyDir
	closed atomic.Bool
}

// New creates a context rooted at path with an already-populated key
// directory, as produced by recovery.
func New(path string, kd *keydir.KeyDir) *Context {
	return &Context{path: path, keydir: kd}
}

// Path returns the store's data directory.
func (c *Context) Path() string {
	return c.path
}

// KeyDir returns the shared key directory.
func (c *Context) KeyDir() *keydir.KeyDir {
	return c.keydir
}

// KeydirSet installs entry for key in the shared key directory and returns
// the entry it replaced, if any. The writer uses the replaced entry to
// charge its old file as newly dead bytes.
func (c *Context) KeydirSet(key []byte, entry keydir.Entry) (keydir.Entry, bool) {
	return c.keydir.Set(key, entry)
}

// Close marks the context closed. It is idempotent; only the first caller
// gets true back, so Engine.Close can use it to run teardown exactly once.
func (c *Context) Close() bool {
	return c.closed.CompareAndSwap(false, true)
}

// IsClosed reports whether Close has already run.
func (c *Context) IsClosed() bool {
	return c.closed.Load()
}
