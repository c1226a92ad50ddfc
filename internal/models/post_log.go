package models

import "time"

// PostLogEntry is an immutable historical record of a post (or an explicit skip).
// The scheduler never mutates or deletes these; they are the source of truth the
// recommender reads to adjust away from static base times.
type PostLogEntry struct {
	ID          string    `db:"id" json:"id"`
	AccountID   int64     `db:"account_id" json:"account_id"`
	Platform    string    `db:"platform" json:"platform"`
	PostedAt    time.Time `db:"posted_at" json:"posted_at"` // UTC
	CreatorTime string    `db:"creator_time" json:"creator_time"`
	LocalTime   string    `db:"local_time" json:"local_time"`
	Notes       string    `db:"notes" json:"notes"`
	Checklist   []string  `db:"checklist" json:"checklist"`
	Skipped     bool      `db:"skipped" json:"skipped"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
