package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housingprep/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "debug", want: "DEBUG"},
		{in: "INFO", want: "INFO"},
		{in: "warning", want: "WARN"},
		{in: "error", want: "ERROR"},
		{in: "bogus", want: "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in).String())
		})
	}
}

func TestInitializeLogger_FileOutput(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	logPath := filepath.Join(t.TempDir(), "logs", "test.log")
	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logPath,
	})
	require.NoError(t, err)

	logger.Info("hello", "key", "value")
	require.NoError(t, CloseLogFile())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"key":"value"`)
}

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", GetTraceID(ctx))
	assert.Equal(t, "", GetTraceID(context.Background()))
}

func TestEnsureTraceID(t *testing.T) {
	ctx := EnsureTraceID(context.Background())
	first := GetTraceID(ctx)
	assert.NotEmpty(t, first)

	// An existing trace ID is preserved.
	assert.Equal(t, first, GetTraceID(EnsureTraceID(ctx)))
}
