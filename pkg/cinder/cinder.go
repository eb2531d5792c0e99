// Package cinder is the public surface of an embedded, single-node,
// persistent key/value store. Open a directory, get back a Handle, and
// Set/Get/Delete/Sync/Close against it. Handles are cheap to clone — they
// wrap shared references to the same underlying engine, the way the
// teacher's own pkg/ignite.Store was shaped before this rewrite replaced
// its stubbed Set/Get/Delete/SetX with a working Bitcask engine.
package cinder

import (
	"github.com/cinderdb/cinder/internal/engine"
	cerrors "github.com/cinderdb/cinder/pkg/errors"
	"github.com/cinderdb/cinder/pkg/options"
)

// Handle is a cloneable reference to an open store. Every Handle obtained
// from the same Open call (directly or via Clone) shares the same engine;
// closing one closes the store for all of them.
type Handle struct {
	eng *engine.Engine
}

// Open opens (and, if necessary, recovers) a store rooted at dir.
func Open(dir string, opts ...options.OptionFunc) (*Handle, error) {
	resolved := options.Resolve(append([]options.OptionFunc{options.WithDataDir(dir)}, opts...)...)

	eng, err := engine.Open(resolved)
	if err != nil {
		return nil, err
	}
	return &Handle{eng: eng}, nil
}

// Clone returns a new Handle sharing this one's underlying engine.
func (h *Handle) Clone() *Handle {
	return &Handle{eng: h.eng}
}

// Set installs value as the current value for key. key must be non-empty.
func (h *Handle) Set(key, value []byte) error {
	if len(key) == 0 {
		return cerrors.NewRequiredFieldError("key")
	}
	return h.eng.Set(key, value)
}

// Get returns the current value for key and whether it was found.
func (h *Handle) Get(key []byte) ([]byte, bool, error) {
	if len(key) == 0 {
		return nil, false, cerrors.NewRequiredFieldError("key")
	}
	return h.eng.Get(key)
}

// Delete removes key, reporting whether a live entry existed.
func (h *Handle) Delete(key []byte) (bool, error) {
	if len(key) == 0 {
		return false, cerrors.NewRequiredFieldError("key")
	}
	return h.eng.Delete(key)
}

// Sync forces the active data file to durable storage.
func (h *Handle) Sync() error {
	return h.eng.Sync()
}

// Merge is a documented placeholder: cinder does not implement online
// compaction. It returns engine.ErrMergeUnsupported on an open store and
// the closed error on a closed one.
func (h *Handle) Merge() error {
	return h.eng.Merge()
}

// Close marks the store closed and releases its resources. Safe to call
// more than once; only the first call does any work.
func (h *Handle) Close() error {
	return h.eng.Close()
}
