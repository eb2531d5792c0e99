// Package lockfile enforces the "exactly one writer" invariant across OS
// processes, not just goroutines, by taking an exclusive advisory lock on a
// file inside the store's data directory via github.com/gofrs/flock.
package lockfile

import (
	"path/filepath"

	"github.com/gofrs/flock"

	cerrors "github.com/cinderdb/cinder/pkg/errors"
)

const lockFileName = ".cinder.lock"

// Lock wraps an acquired exclusive flock on a store directory.
type Lock struct {
	f *flock.Flock
}

// Acquire takes a non-blocking exclusive lock on dir. If another process (or
// an earlier Open of this same process) already holds it, Acquire returns an
// error without blocking — cinder surfaces a clear "already locked" failure
// rather than hanging.
func Acquire(dir string) (*Lock, error) {
	f := flock.New(filepath.Join(dir, lockFileName))

	ok, err := f.TryLock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, cerrors.NewStorageError(nil, cerrors.ErrorCodeIO, "data directory is locked by another process").
			WithDetail("dir", dir)
	}
	return &Lock{f: f}, nil
}

// Release unlocks the directory. Safe to call on a nil *Lock.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	return l.f.Unlock()
}
