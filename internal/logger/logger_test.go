package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestLogger(t *testing.T, cfg map[string]interface{}) (*LoggerService, *bytes.Buffer) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg["folder_path"] = t.TempDir()
	l := NewLoggerService(cfg)
	var console bytes.Buffer
	l.console = &console
	require.NoError(t, l.Start())
	return l, &console
}

func TestNewLoggerServiceConfig(t *testing.T) {
	l := NewLoggerService(map[string]interface{}{
		"max_file_mb":    2,
		"retention_days": 7.0,
		"level":          "debug",
	})
	assert.Equal(t, int64(2*1024*1024), l.maxFileBytes)
	assert.Equal(t, 7, l.retentionDays)
	assert.Equal(t, "./logs", l.folderPath)
	assert.Equal(t, slog.LevelDebug, l.level)
	assert.Equal(t, "logger", l.Name())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestStartWritesFileAndConsole(t *testing.T) {
	l, console := startTestLogger(t, map[string]interface{}{})

	l.LogAudit("report generated")
	slog.Debug("hidden at info level")
	require.NoError(t, l.Stop())

	data, err := os.ReadFile(l.CurrentLog())
	require.NoError(t, err)
	assert.Contains(t, string(data), "report generated")
	assert.Contains(t, string(data), "audit=true")
	assert.NotContains(t, string(data), "hidden at info level")
	assert.Contains(t, console.String(), "report generated")
}

func TestJSONFormat(t *testing.T) {
	l, console := startTestLogger(t, map[string]interface{}{"format": "json"})
	slog.Info("hello", "panel_type", "Deposit")
	require.NoError(t, l.Stop())
	assert.Contains(t, console.String(), `"panel_type":"Deposit"`)
}

func TestRotateIfNeeded(t *testing.T) {
	l, _ := startTestLogger(t, map[string]interface{}{})
	defer l.Stop()

	first := l.CurrentLog()
	require.NoError(t, l.rotateIfNeeded())
	assert.Equal(t, first, l.CurrentLog(), "rotation disabled without max_file_mb")

	l.maxFileBytes = 1
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, l.rotateIfNeeded())
	assert.NotEqual(t, first, l.CurrentLog())
}

func TestZipAndCleanOldLogs(t *testing.T) {
	l, _ := startTestLogger(t, map[string]interface{}{"retention_days": 1})
	defer l.Stop()

	old := filepath.Join(l.folderPath, "app_20000101_000000.000.log")
	require.NoError(t, os.WriteFile(old, []byte("old"), 0o644))
	past := time.Now().AddDate(0, 0, -3)
	require.NoError(t, os.Chtimes(old, past, past))

	l.zipAndCleanOldLogs()

	_, err := os.Stat(old)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(l.CurrentLog())
	assert.NoError(t, err)

	entries, err := os.ReadDir(l.folderPath)
	require.NoError(t, err)
	var zips int
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".zip") {
			zips++
		}
	}
	assert.Equal(t, 1, zips)
}

func TestAuditWithoutGlobalLogger(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))

	SetGlobalLogger(nil)
	Audit("store initialised")
	assert.Contains(t, buf.String(), "store initialised")
}
