package service

import "time"

// bookmarkTracker keeps the maximum replication-key value observed while
// records stream through. The bookmark only replaces its value on a
// strictly greater timestamp, so it never moves backwards.
type bookmarkTracker struct {
	max      time.Time
	advanced bool
}

func newBookmarkTracker(current time.Time) *bookmarkTracker {
	return &bookmarkTracker{max: current}
}

func (t *bookmarkTracker) Observe(ts time.Time) {
	if ts.After(t.max) {
		t.max = ts
		t.advanced = true
	}
}

func (t *bookmarkTracker) Max() time.Time {
	return t.max
}

func (t *bookmarkTracker) Advanced() bool {
	return t.advanced
}
