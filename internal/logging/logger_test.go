package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("bogus"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
}

func TestErrorFileName(t *testing.T) {
	ts := time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "25-06-20-error.log", ErrorFileName(ts))
}

func TestNewErrorFile_OnlyErrors(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	ts := time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)

	logger, closeFn, err := NewErrorFile(dir, ts)
	require.NoError(t, err)

	logger.Info("should not be written")
	logger.Error("Failed to execute query", zap.String("query", "SELECT 1"), zap.Error(errors.New("boom")))
	require.NoError(t, closeFn())

	data, err := os.ReadFile(filepath.Join(dir, "25-06-20-error.log"))
	require.NoError(t, err)

	content := string(data)
	assert.NotContains(t, content, "should not be written")
	assert.Contains(t, content, ",ERROR,Failed to execute query")
	assert.Contains(t, content, `"query": "SELECT 1"`)
	assert.Contains(t, content, `"error": "boom"`)
	assert.Equal(t, 1, strings.Count(content, "\n"))
}

func TestNewErrorFile_Appends(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		logger, closeFn, err := NewErrorFile(dir, ts)
		require.NoError(t, err)
		logger.Error("connect failed")
		require.NoError(t, closeFn())
	}

	data, err := os.ReadFile(filepath.Join(dir, "25-01-02-error.log"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "connect failed"))
}

func TestNewConsole(t *testing.T) {
	logger := NewConsole("warn", "test")
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}
