// Package scheduler runs the periodic report snapshot jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"matunda/internal/config"
	"matunda/internal/domain/ledger"
	"matunda/internal/domain/reports"
	"matunda/internal/infrastructure/storage/postgres/snapshot_repo"
	"matunda/pkg/logger"
)

// Scheduler regenerates and persists period report snapshots on a cron
// schedule so dashboards read precomputed rows instead of folding the full
// ledgers on every request.
type Scheduler struct {
	cron       *cron.Cron
	reportsSvc *reports.Service
	snapshots  *snapshot_repo.SnapshotRepo
	cfg        config.ReportingConfig
}

// New creates a new scheduler.
func New(cfg config.ReportingConfig, reportsSvc *reports.Service, snapshots *snapshot_repo.SnapshotRepo) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		reportsSvc: reportsSvc,
		snapshots:  snapshots,
		cfg:        cfg,
	}
}

// Start registers the snapshot jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.WeeklyCron, func() {
		s.refresh(reports.BucketWeek)
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc(s.cfg.MonthlyCron, func() {
		s.refresh(reports.BucketMonth)
	}); err != nil {
		return err
	}

	s.cron.Start()
	logger.Info(context.Background(), "snapshot scheduler started",
		"weekly_cron", s.cfg.WeeklyCron,
		"monthly_cron", s.cfg.MonthlyCron,
	)
	return nil
}

// Stop stops the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info(context.Background(), "snapshot scheduler stopped")
}

func (s *Scheduler) refresh(bucketing reports.Bucketing) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := s.reportsSvc.PeriodSummaries(ctx, ledger.Filter{}, bucketing)
	if err != nil {
		logger.Error(ctx, "snapshot generation failed",
			"bucketing", string(bucketing),
			"error", err,
		)
		return
	}

	inserted, err := s.snapshots.SavePeriodReport(ctx, report)
	if err != nil {
		logger.Error(ctx, "snapshot persistence failed",
			"bucketing", string(bucketing),
			"error", err,
		)
		return
	}

	logger.Info(ctx, "report snapshot refreshed",
		"bucketing", string(bucketing),
		"periods", inserted,
		"unbucketed", report.Unbucketed.Total(),
	)
}
