package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormats(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Options{Writer: &buf, Format: "JSON"})
		require.NoError(t, err)
		logger.Warn("skipping record", "file", "hosts.txt", "line", 2)

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "WARN", rec["level"])
		assert.Equal(t, "hosts.txt", rec["file"])
		assert.Equal(t, float64(2), rec["line"])
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Options{Writer: &buf})
		require.NoError(t, err)
		logger.Info("loaded", "count", 3)
		assert.Contains(t, buf.String(), "count=3")
	})

	t.Run("color", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Options{Writer: &buf, Format: FormatColor})
		require.NoError(t, err)
		logger.Info("loaded")
		assert.Contains(t, buf.String(), "loaded")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New(Options{Format: "xml"})
		assert.Error(t, err)
	})
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, Level: slog.LevelWarn})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
