package scheduling

import (
	"time"

	"github.com/pattadon/socialshift/internal/models"
)

// NextEligibleInstant returns the earliest instant the account may post again,
// derived from its most recent log entry plus the platform cooldown. Nil when
// the account has no history or the platform enforces no spacing.
func NextEligibleInstant(accountID int64, platform Platform, logs []models.PostLogEntry) *time.Time {
	policy, ok := PolicyFor(platform)
	if !ok || policy.CooldownMinutes == 0 {
		return nil
	}

	last := latestEntry(accountID, logs)
	if last == nil {
		return nil
	}

	next := last.PostedAt.Add(policy.Cooldown())
	return &next
}

// IsSlotActionable reports whether a post may be logged against the slot right
// now. The slot's stored status only gates terminal states; the cooldown check
// always runs against live log history so a stale plan cannot allow a
// double-post inside the cooldown window.
func IsSlotActionable(slot models.Slot, logs []models.PostLogEntry, now time.Time) bool {
	if slot.Status == models.SlotStatusPosted || slot.Status == models.SlotStatusSkipped {
		return false
	}

	next := NextEligibleInstant(slot.AccountID, Platform(slot.Platform), logs)
	if next != nil && now.Before(*next) {
		return false
	}

	return true
}

func latestEntry(accountID int64, logs []models.PostLogEntry) *models.PostLogEntry {
	var last *models.PostLogEntry
	for i := range logs {
		if logs[i].AccountID != accountID {
			continue
		}
		if last == nil || logs[i].PostedAt.After(last.PostedAt) {
			last = &logs[i]
		}
	}
	return last
}
