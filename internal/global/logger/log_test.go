package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, getLogLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, getLogLevel("warn"))
	require.Equal(t, slog.LevelError, getLogLevel("error"))
	require.Equal(t, slog.LevelInfo, getLogLevel("verbose"))
}

func TestNewReturnsSharedLogger(t *testing.T) {
	l := New("Test")
	require.NotNil(t, l)
	require.Same(t, Get(), Get())
}
