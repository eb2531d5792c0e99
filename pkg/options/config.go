package options

import (
	"encoding/json"
	"os"

	"github.com/tailscale/hujson"
)

// fileConfig mirrors the subset of Options that makes sense to load from a
// config file — Logger is constructed in code, never serialized.
type fileConfig struct {
	DataDir         string `json:"dataDir"`
	MaxFileSize     uint64 `json:"maxFileSize"`
	Concurrency     int    `json:"concurrency"`
	ReaderCacheSize int    `json:"readerCacheSize"`
}

// LoadFile reads a HuJSON (JSON-with-comments-and-trailing-commas) config
// file at path and returns an OptionFunc that applies whichever fields were
// present, leaving the rest at their current value. Pass it alongside other
// OptionFuncs to cinder.Open; later options in the argument list win, so
// LoadFile can be overridden by an explicit With* call listed after it.
func LoadFile(path string) (OptionFunc, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	standardized, err := hujson.Standardize(raw)
	if err != nil {
		return nil, err
	}

	var cfg fileConfig
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return nil, err
	}

	return func(o *Options) {
		if cfg.DataDir != "" {
			o.DataDir = cfg.DataDir
		}
		if cfg.MaxFileSize > 0 {
			o.MaxFileSize = cfg.MaxFileSize
		}
		if cfg.Concurrency > 0 {
			o.Concurrency = cfg.Concurrency
		}
		if cfg.ReaderCacheSize > 0 {
			o.ReaderCacheSize = cfg.ReaderCacheSize
		}
	}, nil
}
