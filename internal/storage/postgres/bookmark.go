package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"redditads_syncer/internal/domain"
)

type BookmarkStore struct {
	db *sqlx.DB
}

func NewBookmarkStore(db *sqlx.DB) *BookmarkStore {
	return &BookmarkStore{db: db}
}

func (s *BookmarkStore) Get(ctx context.Context, stream string) (*domain.Bookmark, error) {
	var bookmark domain.Bookmark
	query := `
		SELECT stream, bookmark, updated_at, total_synced
		FROM stream_bookmarks
		WHERE stream = $1`

	err := s.db.GetContext(ctx, &bookmark, query, stream)
	if err == sql.ErrNoRows {
		// Return empty state for streams never synced before
		return &domain.Bookmark{Stream: stream}, nil
	}
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// Update upserts the stream's bookmark. GREATEST keeps the stored value
// monotonic even if a caller hands in a stale one.
func (s *BookmarkStore) Update(ctx context.Context, bookmark *domain.Bookmark) error {
	query := `
		INSERT INTO stream_bookmarks (stream, bookmark, updated_at, total_synced)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (stream) DO UPDATE SET
			bookmark = GREATEST(stream_bookmarks.bookmark, EXCLUDED.bookmark),
			updated_at = EXCLUDED.updated_at,
			total_synced = EXCLUDED.total_synced`

	_, err := s.db.ExecContext(ctx, query,
		bookmark.Stream,
		bookmark.Value,
		bookmark.UpdatedAt,
		bookmark.TotalSynced,
	)
	return err
}
