package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"redditads_syncer/internal/domain"
	"redditads_syncer/internal/redditads"
)

// SyncService replicates one stream: it reads the stream's bookmark,
// fetches everything past it, publishes each record downstream, and
// advances the bookmark over records that were handed off.
type SyncService struct {
	source    Source
	stream    redditads.Stream
	bookmarks BookmarkStore
	publisher Publisher
	logger    *slog.Logger
	startDate time.Time
}

func NewSyncService(
	source Source,
	stream redditads.Stream,
	bookmarks BookmarkStore,
	publisher Publisher,
	logger *slog.Logger,
	startDate time.Time,
) *SyncService {
	return &SyncService{
		source:    source,
		stream:    stream,
		bookmarks: bookmarks,
		publisher: publisher,
		logger:    logger.With("stream", stream.Name),
		startDate: startDate,
	}
}

// Stream returns the name of the stream this service replicates.
func (s *SyncService) Stream() string {
	return s.stream.Name
}

func (s *SyncService) Sync(ctx context.Context) (*domain.SyncStats, error) {
	startTime := time.Now()

	state, err := s.bookmarks.Get(ctx, s.stream.Name)
	if err != nil {
		return nil, fmt.Errorf("load bookmark: %w", err)
	}

	since := state.Value
	if since.IsZero() {
		since = s.startDate
	}

	s.logger.Info("starting sync", "bookmark", since)

	tracker := newBookmarkTracker(since)
	stats := &domain.SyncStats{Stream: s.stream.Name}

	fetchErr := s.source.FetchAll(ctx, s.stream, since, func(record domain.Record) error {
		stats.Fetched++

		observed, ok := replicationValue(record, s.stream.ReplicationKey)

		// Report windows already trail the bookmark on purpose; only list
		// streams filter out records older than what was already synced.
		if ok && !s.stream.IsReport() && observed.Before(since) {
			stats.Skipped++
			return nil
		}

		if err := s.publisher.Publish(ctx, s.stream.Name, record); err != nil {
			return fmt.Errorf("publish record: %w", err)
		}
		stats.Published++

		if ok {
			tracker.Observe(observed)
		}
		return nil
	})

	// The bookmark covers only records already handed off downstream, so a
	// mid-stream failure still commits progress up to the last published one.
	if tracker.Advanced() {
		state.Stream = s.stream.Name
		state.Value = tracker.Max()
		state.UpdatedAt = time.Now().UTC()
		state.TotalSynced += int64(stats.Published)
		if err := s.bookmarks.Update(ctx, state); err != nil {
			stats.Errors++
			return stats, fmt.Errorf("update bookmark: %w", err)
		}
	}

	stats.Duration = time.Since(startTime)

	if fetchErr != nil {
		stats.Errors++
		return stats, fmt.Errorf("fetch %s: %w", s.stream.Name, fetchErr)
	}

	s.logger.Info("sync completed",
		"fetched", stats.Fetched,
		"published", stats.Published,
		"skipped", stats.Skipped,
		"bookmark", tracker.Max(),
		"duration", stats.Duration,
	)

	return stats, nil
}

// replicationValue reads the stream's replication key out of a record.
// Records without a parseable value neither advance nor hold back the
// bookmark.
func replicationValue(record domain.Record, key string) (time.Time, bool) {
	raw, ok := record[key].(string)
	if !ok {
		return time.Time{}, false
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts, true
	}
	ts, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
