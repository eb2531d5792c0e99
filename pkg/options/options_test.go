package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveAppliesDefaultsAndOverrides(t *testing.T) {
	o := Resolve(WithDataDir("/tmp/cinder"), WithMaxFileSize(1024), WithConcurrency(8))

	require.Equal(t, "/tmp/cinder", o.DataDir)
	require.Equal(t, uint64(1024), o.MaxFileSize)
	require.Equal(t, 8, o.Concurrency)
	require.Equal(t, DefaultReaderCacheSize, o.ReaderCacheSize)
	require.NotNil(t, o.Logger)
}

func TestWithFunctionsIgnoreZeroValues(t *testing.T) {
	o := Resolve(WithDataDir("  "), WithMaxFileSize(0), WithConcurrency(0), WithReaderCacheSize(0))

	require.Equal(t, DefaultDataDir, o.DataDir)
	require.Equal(t, DefaultMaxFileSize, o.MaxFileSize)
	require.Equal(t, DefaultConcurrency, o.Concurrency)
	require.Equal(t, DefaultReaderCacheSize, o.ReaderCacheSize)
}

func TestLoadFileAppliesHuJSONConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cinder.hujson")

	contents := `{
		// data directory for the store
		"dataDir": "` + filepath.ToSlash(filepath.Join(dir, "data")) + `",
		"maxFileSize": 2048,
		"concurrency": 2,
		// trailing comma is allowed by HuJSON
	}`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	opt, err := LoadFile(path)
	require.NoError(t, err)

	o := Resolve(opt)
	require.Equal(t, filepath.Join(dir, "data"), o.DataDir)
	require.Equal(t, uint64(2048), o.MaxFileSize)
	require.Equal(t, 2, o.Concurrency)
	require.Equal(t, DefaultReaderCacheSize, o.ReaderCacheSize)
}

func TestLoadFileMissingPath(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.hujson"))
	require.Error(t, err)
}
