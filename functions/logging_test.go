package functions

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCustomLogger(&buf, "emotion", "warn")

	logger.Info("dropped")
	logger.Warn("kept", slog.Group("analyzeEmotion", "status", 400))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "WARN", entry["severity"])
	assert.Contains(t, entry, "logging.googleapis.com/sourceLocation")
	assert.Equal(t, map[string]any{"service": "emotion"}, entry["logging.googleapis.com/labels"])
	assert.Equal(t, map[string]any{"status": float64(400)}, entry["analyzeEmotion"])
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}
