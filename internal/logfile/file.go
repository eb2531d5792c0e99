package logfile

import "os"

// Create opens path as a brand-new append-only data or hint file. It fails
// if path already exists — cinder never reuses or truncates a file-id.
func Create(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
}

// OpenAppend reopens an existing data file for further appends. Engine.Open
// does not use it: it always starts a fresh active file at the file-id after
// the highest one recovery found.
func OpenAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
}

// Open opens path read-only.
func Open(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDONLY, 0)
}
