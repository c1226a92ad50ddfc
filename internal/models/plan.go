package models

import "time"

type Slot struct {
	ID          string     `db:"id" json:"id"`
	AccountID   int64      `db:"account_id" json:"account_id"`
	Platform    string     `db:"platform" json:"platform"`
	ScheduledAt time.Time  `db:"scheduled_at" json:"scheduled_at"` // UTC
	CreatorTime string     `db:"creator_time" json:"creator_time"` // display rendering in creator zone
	LocalTime   string     `db:"local_time" json:"local_time"`     // display rendering in operator zone
	Status      string     `db:"status" json:"status"`
	PostLogID   *string    `db:"post_log_id" json:"post_log_id,omitempty"`
	// NextEligibleAt is set when the slot was generated inside a cooldown window.
	// It is a snapshot from generation time; actionability is always re-derived live.
	NextEligibleAt *time.Time `db:"next_eligible_at" json:"next_eligible_at,omitempty"`
}

type DailyPlan struct {
	Date  string `db:"plan_date" json:"date"` // YYYY-MM-DD in the operator zone
	Slots []Slot `json:"slots"`
}

const (
	SlotStatusPending  = "pending"
	SlotStatusPosted   = "posted"
	SlotStatusCooldown = "cooldown"
	SlotStatusSkipped  = "skipped"
)
