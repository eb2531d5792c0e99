package errors

// RecordError is a specialized error type for record encode/decode failures.
// It embeds baseError to inherit chaining and structured details, then adds
// the location context needed to tell a transient I/O problem apart from a
// genuinely corrupt on-disk record.
type RecordError struct {
	*baseError

	fileID uint64 // Which data or hint file the record came from.
	pos    uint64 // Byte offset within the file where the record starts.
}

// NewRecordError creates a new record-specific error.
func NewRecordError(err error, code ErrorCode, msg string) *RecordError {
	return &RecordError{baseError: NewBaseError(err, code, msg)}
}

// WithMessage updates the error message while preserving the RecordError type.
func (re *RecordError) WithMessage(msg string) *RecordError {
	re.baseError.WithMessage(msg)
	return re
}

// WithDetail adds contextual information while preserving the RecordError type.
func (re *RecordError) WithDetail(key string, value any) *RecordError {
	re.baseError.WithDetail(key, value)
	return re
}

// WithFileID records which file the offending record lives in.
func (re *RecordError) WithFileID(fileID uint64) *RecordError {
	re.fileID = fileID
	return re
}

// WithPos records the byte offset of the offending record.
func (re *RecordError) WithPos(pos uint64) *RecordError {
	re.pos = pos
	return re
}

// FileID returns the file-id the offending record was read from or written to.
func (re *RecordError) FileID() uint64 {
	return re.fileID
}

// Pos returns the byte offset of the offending record within its file.
func (re *RecordError) Pos() uint64 {
	return re.pos
}

// NewChecksumMismatchError creates an error for a record whose stored
// checksum does not match its decoded bytes — the canonical "corruption or
// version skew" signal recovery treats as fatal.
func NewChecksumMismatchError(fileID, pos uint64) *RecordError {
	return NewRecordError(nil, ErrorCodeSerialization, "record checksum mismatch").
		WithFileID(fileID).
		WithPos(pos).
		WithDetail("recovery_action", "refuse_to_open")
}

// NewTruncatedRecordError creates an error for a record whose length-prefixed
// fields run past the bytes actually available at its claimed position.
func NewTruncatedRecordError(fileID, pos uint64, cause error) *RecordError {
	return NewRecordError(cause, ErrorCodeSerialization, "record truncated or malformed").
		WithFileID(fileID).
		WithPos(pos)
}
