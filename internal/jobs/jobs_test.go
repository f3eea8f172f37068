package jobs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestSweepOutputs(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	touch(t, filepath.Join(dir, "report-deposit-1.xlsx"), now.AddDate(0, 0, -40))
	touch(t, filepath.Join(dir, "report-deposit-2.xlsx"), now.AddDate(0, 0, -2))
	touch(t, filepath.Join(dir, "notes.txt"), now.AddDate(0, 0, -90))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "old.xlsx"), 0o755))

	removed, err := SweepOutputs(dir, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, []string{"report-deposit-1.xlsx"}, removed)

	_, err = os.Stat(filepath.Join(dir, "report-deposit-2.xlsx"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "notes.txt"))
	assert.NoError(t, err)
}

func TestSweepOutputsMissingDir(t *testing.T) {
	removed, err := SweepOutputs(filepath.Join(t.TempDir(), "absent"), time.Now())
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestCronServiceDisabledByDefault(t *testing.T) {
	s := NewCronService(nil, t.TempDir())
	assert.False(t, s.retention.Enabled())
	require.NoError(t, s.Start())
	assert.Nil(t, s.cron)
	require.NoError(t, s.Stop())
}

func TestCronServiceSweep(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	touch(t, filepath.Join(dir, "old.xlsx"), now.AddDate(0, 0, -8))

	s := NewCronService(map[string]interface{}{"output_retention_days": 7}, dir)
	s.now = func() time.Time { return now }
	require.NoError(t, s.Start())
	assert.NotNil(t, s.cron)
	s.Sweep()
	require.NoError(t, s.Stop())

	_, err := os.Stat(filepath.Join(dir, "old.xlsx"))
	assert.True(t, os.IsNotExist(err))
}

func TestCronServiceBadSchedule(t *testing.T) {
	s := NewCronService(map[string]interface{}{"output_retention_days": 1, "retention_schedule": "whenever"}, t.TempDir())
	assert.Error(t, s.Start())
}
