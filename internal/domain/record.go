package domain

import "time"

// Record is one row of campaign, ad, or report data exactly as the API
// returned it. Report records additionally carry a "metrics_updated_at"
// field copied from the response envelope.
type Record map[string]any

// Bookmark tracks incremental replication progress for a single stream.
// The stored value is the highest replication-key timestamp whose record
// has been handed off downstream.
type Bookmark struct {
	Stream      string    `db:"stream"`
	Value       time.Time `db:"bookmark"`
	UpdatedAt   time.Time `db:"updated_at"`
	TotalSynced int64     `db:"total_synced"`
}
