package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// SyncScheduler runs SyncAll on a cron schedule
type SyncScheduler struct {
	syncService SyncService
	cron        *cron.Cron
	timeout     time.Duration
}

// NewSyncScheduler creates a scheduler for spec, a six-field cron expression
// (seconds first, e.g. "0 0 22 * * *").
func NewSyncScheduler(syncService SyncService, spec string, timeout time.Duration) (*SyncScheduler, error) {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	s := &SyncScheduler{
		syncService: syncService,
		cron:        cron.New(cron.WithSeconds()),
		timeout:     timeout,
	}
	if _, err := s.cron.AddFunc(spec, s.Run); err != nil {
		return nil, fmt.Errorf("invalid sync schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the schedule in the background
func (s *SyncScheduler) Start() {
	s.cron.Start()
	slog.Info("Sync scheduler started", "next", s.Next())
}

// Stop stops the schedule and waits for a running sync until ctx is done
func (s *SyncScheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		slog.Warn("Sync scheduler stopped before the running sync finished")
	}
}

// Next returns the time of the next scheduled run
func (s *SyncScheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Run performs one sync of every game. Failures are logged only.
func (s *SyncScheduler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	results, err := s.syncService.SyncAll(ctx)
	if errors.Is(err, ErrSyncInProgress) {
		slog.Info("Scheduled sync skipped, another sync is running")
		return
	}
	if err != nil {
		slog.Error("Scheduled sync finished with errors", "synced", len(results), "error", err)
		return
	}
	slog.Info("Scheduled sync finished", "synced", len(results))
}
