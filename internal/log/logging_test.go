package log_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/soar/GamepadTest/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"trace": log.LevelTrace,
		"debug": slog.LevelDebug,
		"":      slog.LevelInfo,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, log.ParseLevel(in), in)
	}
}

func TestNewHandlerSplitsByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := slog.New(log.NewHandler(&out, &errOut, slog.LevelDebug))

	logger.Debug("axis", "value", 12)
	logger.Info("connected", "name", "pad")
	logger.Error("boom")

	assert.Contains(t, out.String(), "msg=axis")
	assert.Contains(t, out.String(), "name=pad")
	assert.NotContains(t, out.String(), "boom")
	assert.Contains(t, errOut.String(), "msg=boom")
	assert.NotContains(t, errOut.String(), "connected")
}

func TestNewHandlerRespectsLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := slog.New(log.NewHandler(&out, &errOut, slog.LevelWarn))
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")
	assert.False(t, logger.Enabled(t.Context(), slog.LevelDebug))
}

func TestSetupLoggerWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "GamepadTest.log")
	logger, closers, err := log.SetupLogger("debug", path)
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.With("component", "test").Debug("written")
	for _, c := range closers {
		require.NoError(t, c.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=written")
	assert.Contains(t, string(data), "component=test")
}

func TestSetupLoggerBadPath(t *testing.T) {
	_, _, err := log.SetupLogger("info", filepath.Join(t.TempDir(), "missing", "x.log"))
	assert.Error(t, err)
}
