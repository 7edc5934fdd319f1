package logging

import (
	"bytes"
	"customer-directory/internal/config"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for input, want := range tests {
		assert.Equal(t, want, parseLevel(input), "level %q", input)
	}
}

func TestNewLoggerWritesJSONByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LoggerConfig{Level: "info"}, &buf)

	logger.Info("Customer created", "email", "ada@x.com")
	logger.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "Customer created", entry["msg"])
	assert.Equal(t, "ada@x.com", entry["email"])
}

func TestNewLoggerTextEncoding(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LoggerConfig{Level: "debug", Encoding: "text"}, &buf)

	logger.Debug("Loading customers")

	assert.Contains(t, buf.String(), "msg=\"Loading customers\"")
	assert.Contains(t, buf.String(), "source=")
}
