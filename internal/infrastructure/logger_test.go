package infrastructure

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wacreport/internal/config"
)

func TestInitializeLogger_FileOutput(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	logPath := filepath.Join(t.TempDir(), "logs", "wacreport_2017-04-03.log")
	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "warn",
		Format:   "json",
		Output:   "file",
		FilePath: logPath,
	})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("informational, below level")
	logger.Warn("data quality problem", slog.String("worksheet", "Doe, Jane"), slog.Int("row", 4))
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	assert.NotContains(t, string(content), "informational, below level")
	assert.Contains(t, string(content), "data quality problem")
	assert.Contains(t, string(content), `"worksheet":"Doe, Jane"`)
}

func TestInitializeLogger_BothKeepsInfoOutOfFile(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	logPath := filepath.Join(t.TempDir(), "logs", "run.log")
	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "both",
		FilePath: logPath,
	})
	require.NoError(t, err)

	logger.Info("informational progress message")
	logger.Warn("data quality problem")
	logger.Error("technical failure")
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	// Informational messages are transient (console only); the run log
	// keeps WARNING and above
	assert.NotContains(t, string(content), "informational progress message")
	assert.Contains(t, string(content), "data quality problem")
	assert.Contains(t, string(content), "technical failure")
}

func TestInitializeLogger_FileClampsInfo(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	logPath := filepath.Join(t.TempDir(), "run.log")
	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "debug",
		Output:   "file",
		FilePath: logPath,
	})
	require.NoError(t, err)

	logger.Debug("debug detail")
	logger.Info("progress")
	logger.Warn("kept")
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	assert.NotContains(t, string(content), "debug detail")
	assert.NotContains(t, string(content), "progress")
	assert.Contains(t, string(content), "kept")
}

func TestPersistLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, persistLevel(slog.LevelDebug))
	assert.Equal(t, slog.LevelWarn, persistLevel(slog.LevelInfo))
	assert.Equal(t, slog.LevelWarn, persistLevel(slog.LevelWarn))
	assert.Equal(t, slog.LevelError, persistLevel(slog.LevelError))
}

func TestInitializeLogger_AppendsAcrossRuns(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")

	for i := 0; i < 2; i++ {
		ResetLoggerForTesting()
		logger, err := InitializeLogger(config.LoggingConfig{
			Level:    "info",
			Output:   "file",
			FilePath: logPath,
		})
		require.NoError(t, err)
		logger.Warn("run entry")
		require.NoError(t, CloseLogFile())
	}
	ResetLoggerForTesting()

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(content), "run entry"))
}

func TestRunIDContext(t *testing.T) {
	runID := NewRunID()
	assert.NotEmpty(t, runID)
	assert.NotEqual(t, runID, NewRunID())

	ctx := WithRunID(context.Background(), runID)
	assert.Equal(t, runID, GetRunID(ctx))
	assert.Empty(t, GetRunID(context.Background()))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.input), tt.input)
	}
}
