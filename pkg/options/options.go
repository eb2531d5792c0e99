// Package options provides data structures and functions for configuring a
// cinder store. It defines the parameters that control storage behavior and
// performance: the data directory, the active-file rotation threshold, the
// size of the reader pool, and each reader's private file-handle cache.
package options

import (
	"strings"

	"go.uber.org/zap"

	"github.com/cinderdb/cinder/pkg/logger"
)

// Options defines the configuration parameters for a cinder store. It
// provides control over storage layout and the concurrency model described
// in the store's design: a bounded pool of readers, each with a bounded
// private cache of open file readers.
type Options struct {
	// DataDir is the directory a store's data and hint files live in.
	// Open creates it (and any missing parents) if it does not exist; it
	// must be writable, and cinder creates no subdirectories inside it.
	//
	// Default: "/var/lib/cinder"
	DataDir string `json:"dataDir"`

	// MaxFileSize is the byte threshold past which the writer rotates to a
	// new active data file. Rotation is decided after an append completes,
	// so a single record is never split across files but the active file
	// can end up slightly larger than this threshold.
	//
	// Default: 16 MiB
	MaxFileSize uint64 `json:"maxFileSize"`

	// Concurrency is the fixed size of the reader pool. At most this many
	// Get calls execute in parallel; callers beyond that spin-wait with
	// backoff for a reader to be returned to the pool.
	//
	// Default: 4
	Concurrency int `json:"concurrency"`

	// ReaderCacheSize is the capacity of each pooled reader's private LRU
	// cache of open (fileid -> mmap'd reader) entries.
	//
	// Default: 16
	ReaderCacheSize int `json:"readerCacheSize"`

	// Logger receives structured logs from every cinder component. If nil,
	// Open installs a production zap logger named "cinder".
	Logger *zap.SugaredLogger `json:"-"`
}

// OptionFunc is a function type that modifies a store's configuration.
type OptionFunc func(*Options)

// WithDataDir sets the directory a store's files live in.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithMaxFileSize sets the active-file rotation threshold, in bytes.
func WithMaxFileSize(size uint64) OptionFunc {
	return func(o *Options) {
		if size > 0 {
			o.MaxFileSize = size
		}
	}
}

// WithConcurrency sets the number of readers in the pool.
func WithConcurrency(n int) OptionFunc {
	return func(o *Options) {
		if n > 0 {
			o.Concurrency = n
		}
	}
}

// WithReaderCacheSize sets the capacity of each reader's private file cache.
func WithReaderCacheSize(n int) OptionFunc {
	return func(o *Options) {
		if n > 0 {
			o.ReaderCacheSize = n
		}
	}
}

// WithLogger overrides the default production logger.
func WithLogger(log *zap.SugaredLogger) OptionFunc {
	return func(o *Options) {
		if log != nil {
			o.Logger = log
		}
	}
}

// Resolve applies opts on top of the package defaults and fills in a logger
// if the caller didn't provide one. Open calls this so that every other
// component can assume a fully-populated Options.
func Resolve(opts ...OptionFunc) Options {
	o := NewDefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = logger.New("cinder")
	}
	return o
}
