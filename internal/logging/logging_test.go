package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLogger_JSONWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, Config{Level: "debug", Format: FormatJSON})

	ctx := ContextWithTraceID(context.Background(), "trace-123")
	logger.Info().Ctx(ctx).Str("operation", "resolve").Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "trace-123", line[TraceIDField])
	assert.Equal(t, "resolve", line["operation"])
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, Config{Level: "warn", Format: FormatJSON})
	logger.Info().Msg("dropped")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := ComponentLogger(NewLogger(&buf, Config{Format: FormatJSON}), "dex")
	logger.Info().Msg("x")
	assert.Contains(t, buf.String(), `"component":"dex"`)
}

func TestFromContext(t *testing.T) {
	t.Run("logger in context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, Config{Format: FormatJSON})
		ctx := logger.WithContext(context.Background())
		FromContext(ctx).Info().Msg("from ctx")
		assert.Contains(t, buf.String(), "from ctx")
	})

	t.Run("no logger is safe", func(t *testing.T) {
		assert.NotPanics(t, func() {
			FromContext(context.Background()).Info().Msg("nowhere")
		})
	})
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))

	generated := GetOrGenerateTraceID(ctx)
	assert.Len(t, generated, 26)

	ctx = ContextWithTraceID(ctx, generated)
	assert.Equal(t, generated, GetOrGenerateTraceID(ctx))
	assert.NotEqual(t, generated, GenerateTraceID())
}

func TestNewLoggerWithPath(t *testing.T) {
	t.Run("stderr output", func(t *testing.T) {
		result := NewLoggerWithPath(DefaultConfig())
		assert.False(t, result.UsingFile)
		assert.False(t, result.FallbackUsed)
		require.NoError(t, result.Close())
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "pokedex.log")
		result := NewLoggerWithPath(Config{Level: "info", Format: FormatJSON, Output: OutputFile, File: path})
		require.True(t, result.UsingFile)
		assert.Equal(t, path, result.FilePath)

		result.Logger.Info().Msg("written")
		require.NoError(t, result.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "written")
	})

	t.Run("unwritable file falls back", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "not-a-dir")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

		result := NewLoggerWithPath(Config{Output: OutputFile, File: filepath.Join(blocker, "pokedex.log")})
		assert.False(t, result.UsingFile)
		assert.True(t, result.FallbackUsed)
		assert.NotEmpty(t, result.FallbackReason)
	})
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	PrintLogPathMessage(&buf, "/tmp/x.log")
	PrintFallbackWarning(&buf, "denied")
	assert.Contains(t, buf.String(), "/tmp/x.log")
	assert.Contains(t, buf.String(), "denied")
}

func TestNewLogger_Caller(t *testing.T) {
	var buf bytes.Buffer
	callerLogger := NewLogger(&buf, Config{Format: FormatJSON, Caller: true})
	callerLogger.Info().Msg("where")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Contains(t, line[zerolog.CallerFieldName], "logging_test.go")

	buf.Reset()
	plainLogger := NewLogger(&buf, Config{Format: FormatJSON})
	plainLogger.Info().Msg("where")
	assert.NotContains(t, buf.String(), zerolog.CallerFieldName)
}
