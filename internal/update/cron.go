package update

import (
	"context"

	"github.com/robfig/cron/v3"
)

// Sweeper re-runs a throttled Check on a schedule so check_interval
// eventually fires even in a long-lived session (SPEC_FULL.md supplemented
// feature: "Periodic background freshness/update sweep"). Disabled by
// default; the caller decides whether to start it based on
// auto_check_updates.
type Sweeper struct {
	cron *cron.Cron
	mgr  *Manager
}

// NewSweeper builds a Sweeper that calls mgr.Check(ctx, false) hourly.
func NewSweeper(mgr *Manager) *Sweeper {
	return &Sweeper{cron: cron.New(), mgr: mgr}
}

// Start schedules the hourly sweep and begins running it in the
// background.
func (s *Sweeper) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc("@hourly", func() {
		_, _ = s.mgr.Check(ctx, false)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the schedule, waiting for any in-flight run to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}
