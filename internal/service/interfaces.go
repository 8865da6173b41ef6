package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"redditads_syncer/internal/domain"
	"redditads_syncer/internal/redditads"
)

type Source interface {
	FetchAll(ctx context.Context, stream redditads.Stream, bookmark time.Time, emit redditads.EmitFunc) error
}

type BookmarkStore interface {
	Get(ctx context.Context, stream string) (*domain.Bookmark, error)
	Update(ctx context.Context, bookmark *domain.Bookmark) error
}

type Publisher interface {
	Publish(ctx context.Context, stream string, record domain.Record) error
	Close() error
}
