package domain

import "time"

// SyncStats holds statistics about one sync run of a single stream.
type SyncStats struct {
	Stream    string
	Fetched   int
	Published int
	Skipped   int
	Errors    int
	Duration  time.Duration
}
