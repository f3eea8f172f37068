package jobs

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"MerchantReports/internal/config"
)

type RetentionConfig struct {
	Dir      string
	Days     int
	Schedule string
	TimeZone string
}

// NewDefaultRetentionConfig creates a RetentionConfig with sweeping disabled
func NewDefaultRetentionConfig(dir string) *RetentionConfig {
	return &RetentionConfig{
		Dir:      dir,
		Schedule: config.DefaultRetentionSchedule,
		TimeZone: config.DefaultTimeZone,
	}
}

func (c *RetentionConfig) Enabled() bool {
	return c.Days > 0 && c.Dir != ""
}

// SweepOutputs removes generated workbooks in dir last modified before
// cutoff. Subdirectories and non-xlsx files are left alone.
func SweepOutputs(dir string, cutoff time.Time) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read output dir: %w", err)
	}

	var removed []string
	var errs []error
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".xlsx") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := os.Remove(path); err != nil {
			errs = append(errs, err)
			continue
		}
		removed = append(removed, e.Name())
	}
	if len(removed) > 0 {
		slog.Info("output retention sweep", "component", "cron", "removed", len(removed), "cutoff", cutoff.Format(time.RFC3339))
	}
	return removed, errors.Join(errs...)
}
