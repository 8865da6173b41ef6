package scheduler

import (
	"context"
	"log/slog"
	"time"

	"redditads_syncer/internal/domain"
)

// Syncer defines the interface for per-stream sync operations.
type Syncer interface {
	Stream() string
	Sync(ctx context.Context) (*domain.SyncStats, error)
}

// Scheduler runs all stream syncers on a fixed interval. Streams run
// sequentially; one failing stream does not stop the others.
type Scheduler struct {
	syncers    []Syncer
	interval   time.Duration
	runTimeout time.Duration
	logger     *slog.Logger
}

func NewScheduler(syncers []Syncer, interval, runTimeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		syncers:    syncers,
		interval:   interval,
		runTimeout: runTimeout,
		logger:     logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "streams", len(s.syncers))

	s.runAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runAll(ctx)
		}
	}
}

func (s *Scheduler) runAll(ctx context.Context) {
	for _, syncer := range s.syncers {
		if ctx.Err() != nil {
			return
		}
		s.runSync(ctx, syncer)
	}
}

func (s *Scheduler) runSync(ctx context.Context, syncer Syncer) {
	syncCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	if _, err := syncer.Sync(syncCtx); err != nil {
		s.logger.Error("sync failed", "stream", syncer.Stream(), "error", err)
	}
}
