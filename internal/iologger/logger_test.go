package iologger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/cnpjdb/pkg/config"
	"github.com/gnames/cnpjdb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		res   slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, parseLevel(v.level), v.level)
	}
}

func TestInitFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.LogConfig{Format: "text", Level: "info", Destination: "file"}
	logPath := filepath.Join(dir, LogFile)

	require.NoError(t, Init(dir, cfg, false))
	slog.Info("first")
	require.NoError(t, Init(dir, cfg, true))
	slog.Info("second")

	bs, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(bs), "first")
	assert.Contains(t, string(bs), "second")

	require.NoError(t, Init(dir, cfg, false))
	slog.Info("third")
	bs, err = os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(bs), "first")
	assert.Contains(t, string(bs), "third")
}

func TestInitBadDir(t *testing.T) {
	cfg := config.LogConfig{Destination: "file"}
	err := Init(filepath.Join(t.TempDir(), "no", "such"), cfg, false)
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
}
