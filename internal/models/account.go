package models

import "time"

type Account struct {
	ID          int64     `db:"id" json:"id"`
	CreatorID   int64     `db:"creator_id" json:"creator_id"`
	Platform    string    `db:"platform" json:"platform"`
	Handle      string    `db:"handle" json:"handle"`
	DeviceLabel string    `db:"device_label" json:"device_label"`
	ProfileLink string    `db:"profile_link" json:"profile_link"`
	// BaseTimes, when set, replaces the platform's default posting times for
	// this account. Interpreted in the platform's reference zone.
	BaseTimes []string `db:"base_times" json:"base_times"`
	// SortIndex orders accounts for staggering; assigned at creation, never reused.
	SortIndex int       `db:"sort_index" json:"sort_index"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
