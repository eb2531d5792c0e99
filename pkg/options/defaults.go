package options

const (
	// DefaultDataDir is the base directory cinder stores its data files in
	// if no other directory is specified during initialization.
	DefaultDataDir = "/var/lib/cinder"

	// DefaultMaxFileSize is the active-file rotation threshold (16 MiB).
	DefaultMaxFileSize uint64 = 16 * 1024 * 1024

	// DefaultConcurrency is the number of readers in the pool.
	DefaultConcurrency = 4

	// DefaultReaderCacheSize is the capacity of each reader's private
	// file-handle LRU cache.
	DefaultReaderCacheSize = 16
)

// NewDefaultOptions returns the package defaults. Logger is left nil;
// Resolve fills it in with a production logger if the caller didn't supply
// one via WithLogger.
func NewDefaultOptions() Options {
	return Options{
		DataDir:         DefaultDataDir,
		MaxFileSize:     DefaultMaxFileSize,
		Concurrency:     DefaultConcurrency,
		ReaderCacheSize: DefaultReaderCacheSize,
	}
}
