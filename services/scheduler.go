package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fysikteknologsektionen/ftek-login/config"
)

// Scheduler runs the refresher at a fixed wall-clock time and interval
type Scheduler struct {
	refresher RefreshService
	interval  time.Duration
	hour      int
	minute    int
	logger    *logrus.Logger
	now       func() time.Time
}

// NewScheduler creates a scheduler from the refresh settings
func NewScheduler(refresher RefreshService, settings config.RefreshSettings, logger *logrus.Logger) (*Scheduler, error) {
	hour, minute, err := parseClock(settings.At)
	if err != nil {
		return nil, err
	}
	if settings.Interval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive, got %s", settings.Interval)
	}

	return &Scheduler{
		refresher: refresher,
		interval:  settings.Interval,
		hour:      hour,
		minute:    minute,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// NextRun returns the first occurrence of the configured time after now
func (s *Scheduler) NextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run blocks, refreshing on schedule until ctx is cancelled
func (s *Scheduler) Run(ctx context.Context) error {
	now := s.now()
	next := s.NextRun(now)
	s.logger.WithFields(logrus.Fields{
		"next_run": next.Format(time.RFC3339),
		"interval": s.interval.String(),
	}).Info("Refresh scheduler started")

	timer := time.NewTimer(next.Sub(now))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Refresh scheduler stopped")
			return ctx.Err()
		case <-timer.C:
			s.runOnce(ctx)
			now := s.now()
			next = s.following(next, now)
			timer.Reset(next.Sub(now))
		}
	}
}

// following returns the first slot after now on the grid started at planned.
// Slots missed by a long run are skipped rather than run back to back.
func (s *Scheduler) following(planned, now time.Time) time.Time {
	next := planned.Add(s.interval)
	if next.After(now) {
		return next
	}
	missed := now.Sub(next)/s.interval + 1
	return next.Add(missed * s.interval)
}

func (s *Scheduler) runOnce(ctx context.Context) {
	report, err := s.refresher.RefreshAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Refresh run failed")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"run_id":    report.RunID,
		"refreshed": report.Refreshed,
		"skipped":   len(report.Skipped),
	}).Debug("Refresh run recorded")
}

// parseClock parses an HH:MM wall-clock time
func parseClock(s string) (int, int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid refresh time %q, expected HH:MM: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}
