package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"MerchantReports/internal/logger"
	"MerchantReports/internal/serviceiface"
)

// CronService runs the opt-in output retention sweep.
type CronService struct {
	retention *RetentionConfig
	cron      *cron.Cron
	now       func() time.Time
}

func NewCronService(cfg map[string]interface{}, outputDir string) *CronService {
	rc := NewDefaultRetentionConfig(outputDir)
	rc.Days = serviceiface.Int(cfg, "output_retention_days", 0)
	rc.Schedule = serviceiface.String(cfg, "retention_schedule", rc.Schedule)
	rc.TimeZone = serviceiface.String(cfg, "timezone", rc.TimeZone)
	return &CronService{retention: rc, now: time.Now}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	if !s.retention.Enabled() {
		slog.Info("Output retention disabled", "component", "cron")
		return nil
	}

	loc, err := time.LoadLocation(s.retention.TimeZone)
	if err != nil {
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(s.retention.Schedule, s.Sweep)
	if err != nil {
		return fmt.Errorf("unable to schedule output retention: %v", err)
	}
	c.Start()
	s.cron = c

	logger.Audit(fmt.Sprintf("Output retention scheduled (%s, %d days)", s.retention.Schedule, s.retention.Days))
	return nil
}

// Sweep runs one retention pass immediately.
func (s *CronService) Sweep() {
	cutoff := s.now().AddDate(0, 0, -s.retention.Days)
	removed, err := SweepOutputs(s.retention.Dir, cutoff)
	if err != nil {
		logger.Audit(fmt.Sprintf("Output retention failed: %v", err))
		return
	}
	for _, name := range removed {
		logger.Audit("Output retention removed " + name)
	}
}

func (s *CronService) Stop() error {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	slog.Info("Cron service stopped", "component", "cron")
	return nil
}
