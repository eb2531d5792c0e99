package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsAndAsRecordError(t *testing.T) {
	err := NewChecksumMismatchError(3, 128)

	require.True(t, IsRecordError(err))
	rec, ok := AsRecordError(err)
	require.True(t, ok)
	require.Equal(t, uint64(3), rec.FileID())
	require.Equal(t, uint64(128), rec.Pos())
	require.Equal(t, ErrorCodeSerialization, rec.Code())
}

func TestIsClosedWrapsSentinel(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), ErrClosed)
	require.True(t, IsClosed(wrapped))
	require.False(t, IsClosed(errors.New("unrelated")))
}

func TestGetErrorCodeFallsBackToInternal(t *testing.T) {
	require.Equal(t, ErrorCodeInternal, GetErrorCode(errors.New("boom")))
	require.Equal(t, ErrorCodeClosed, GetErrorCode(ErrClosed))
}

func TestGetErrorDetailsEmptyForPlainError(t *testing.T) {
	details := GetErrorDetails(errors.New("boom"))
	require.Empty(t, details)
}

func TestValidationErrorHelpers(t *testing.T) {
	err := NewRequiredFieldError("key")
	require.True(t, IsValidationError(err))

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	require.Equal(t, "key", ve.Field())
	require.Equal(t, "required", ve.Rule())
}
