// Package logger builds the structured logger every cinder component takes
// as a constructor dependency: New for a production logger, Noop for one
// that discards everything.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a production-configured zap logger scoped to name (typically
// the component or service opening the store, e.g. "cinder" or a caller's
// own service name) and returns it as a SugaredLogger, the ergonomic
// key-value API the rest of the module is built against.
func New(name string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := cfg.Build()
	if err != nil {
		// Build only fails on a malformed config; ours is static and known
		// good, so falling back to a no-op logger here would only hide a
		// programming error. Panicking at construction time is preferable
		// to silently running without logs.
		panic(err)
	}

	return log.Named(name).Sugar()
}

// Noop returns a logger that discards everything, for tests and callers
// that don't want cinder's own logging mixed into theirs.
func Noop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
