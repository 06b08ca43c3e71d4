// Package history keeps a SQLite-backed log of publish attempts so the
// operator can see what was sent where, and what went wrong.
package history

import "time"

// Entry is one recorded publish attempt.
type Entry struct {
	ID          string
	Site        string
	PostTitle   string
	Status      string // published, scheduled, or failed
	PostID      int    // remote WordPress post id, 0 on failure
	Error       string
	TagsSkipped int
	Duration    time.Duration
	CreatedAt   time.Time
}
