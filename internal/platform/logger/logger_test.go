// Package logger_test contains tests for the logger package
package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/phrazzld/taskquery-api/internal/config"
	"github.com/phrazzld/taskquery-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogBuffer is a synchronized buffer for capturing log output in tests
type testLogBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (b *testLogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// entries parses every JSON log line written so far.
func (b *testLogBuffer) entries(t *testing.T) []map[string]any {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(b.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "log line is not JSON: %s", line)
		out = append(out, entry)
	}
	return out
}

// restoreDefault puts back the slog default after a test replaces it.
func restoreDefault(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestSetupWithWriter_Levels(t *testing.T) {
	restoreDefault(t)

	tests := []struct {
		level      string
		debugShown bool
		infoShown  bool
		warnShown  bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"WARN", false, false, true},
		{"error", false, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			buf := &testLogBuffer{}
			l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tc.level}, buf)
			require.NoError(t, err)
			require.NotNil(t, l)

			l.Debug("debug message")
			l.Info("info message")
			l.Warn("warn message")

			var msgs []string
			for _, e := range buf.entries(t) {
				msgs = append(msgs, e["msg"].(string))
			}
			assert.Equal(t, tc.debugShown, contains(msgs, "debug message"))
			assert.Equal(t, tc.infoShown, contains(msgs, "info message"))
			assert.Equal(t, tc.warnShown, contains(msgs, "warn message"))
		})
	}
}

func TestSetupWithWriter_InvalidLevelFallsBackToInfo(t *testing.T) {
	restoreDefault(t)

	buf := &testLogBuffer{}
	l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "verbose"}, buf)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("shown", "key", "value")

	entries := buf.entries(t)
	require.Len(t, entries, 2)
	assert.Equal(t, "invalid log level configured, using default level", entries[0]["msg"])
	assert.Equal(t, "verbose", entries[0]["configured_level"])
	assert.Equal(t, "shown", entries[1]["msg"])
	assert.Equal(t, "value", entries[1]["key"])
}

func TestSetupWithWriter_SetsDefault(t *testing.T) {
	restoreDefault(t)

	buf := &testLogBuffer{}
	_, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "info"}, buf)
	require.NoError(t, err)

	slog.Info("through default")
	entries := buf.entries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "through default", entries[0]["msg"])
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, ok := logger.FromContext(ctx)
	assert.False(t, ok)

	fallback := slog.New(slog.NewJSONHandler(&testLogBuffer{}, nil))
	assert.Same(t, fallback, logger.FromContextOrDefault(ctx, fallback))
	assert.NotNil(t, logger.FromContextOrDefault(ctx, nil))

	scoped := slog.New(slog.NewJSONHandler(&testLogBuffer{}, nil)).With("trace_id", "abc")
	ctx = logger.WithLogger(ctx, scoped)

	got, ok := logger.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, scoped, got)
	assert.Same(t, scoped, logger.FromContextOrDefault(ctx, fallback))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, ok := logger.ParseLevel(" Debug ")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelDebug, level)

	level, ok = logger.ParseLevel("fatal")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, level)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
