package scheduling

import (
	"sort"
	"time"

	"github.com/pattadon/socialshift/internal/models"
)

// Recommendation is the ephemeral "what should happen next" answer for one
// account and shift. It is never persisted; callers recompute it as often as
// they need live countdowns.
type Recommendation struct {
	AccountID           int64     `json:"account_id"`
	Platform            Platform  `json:"platform"`
	Shift               Shift     `json:"shift"`
	PostNumber          int       `json:"post_number"`
	RecommendedAt       time.Time `json:"recommended_at"`
	BasedOnPreviousPost bool      `json:"based_on_previous_post"`

	MinutesUntil  int  `json:"minutes_until"`
	IsReady       bool `json:"is_ready"`
	IsPerfectTime bool `json:"is_perfect_time"`
	IsTooEarly    bool `json:"is_too_early"`
	IsTooLate     bool `json:"is_too_late"`

	// Live cooldown countdown, distinct from the recommended time itself: the
	// operator may still "post anyway" before the recommendation comes up.
	IsDuringCooldown      bool `json:"is_during_cooldown"`
	CooldownEndsInMinutes int  `json:"cooldown_ends_in_minutes"`
}

// NextRecommendedPost computes the next expected post for one account within
// one shift, or nil when the shift's quota is already met (a normal terminal
// case, not an error). Skipped entries consume quota like real posts.
func NextRecommendedPost(account models.Account, creator models.Creator, operatorZone string, shift Shift, todayLogs []models.PostLogEntry, now time.Time) (*Recommendation, error) {
	policy, ok := PolicyFor(Platform(account.Platform))
	if !ok {
		return nil, nil
	}

	operatorLoc, err := LoadZone(operatorZone)
	if err != nil {
		return nil, err
	}

	inShift := entriesInShift(account.ID, shift, todayLogs, operatorLoc)
	completed := len(inShift)
	if completed >= policy.MaxPostsPerShift {
		return nil, nil
	}

	rec := &Recommendation{
		AccountID:  account.ID,
		Platform:   Platform(account.Platform),
		Shift:      shift,
		PostNumber: completed + 1,
	}

	if completed == 0 {
		// Anchor on the account's effective base times, so an override that
		// moved posting away from the platform defaults moves the
		// recommendation with it, same as generation.
		baseTimes := policy.BaseTimes
		if len(account.BaseTimes) > 0 {
			baseTimes = account.BaseTimes
		}
		anchor, ok := shiftAnchor(baseTimes, shift)
		if !ok {
			return nil, nil
		}
		at, err := TimeOfDayToInstant(anchor, policy.ReferenceZone(creator.Timezone), now)
		if err != nil {
			return nil, err
		}
		rec.RecommendedAt = at
	} else {
		last := inShift[completed-1]
		rec.RecommendedAt = last.PostedAt.Add(policy.Cooldown())
		rec.BasedOnPreviousPost = true

		if policy.CooldownMinutes > 0 {
			cooldownEnd := last.PostedAt.Add(policy.Cooldown())
			if now.Before(cooldownEnd) {
				rec.IsDuringCooldown = true
				rec.CooldownEndsInMinutes = MinutesUntil(now, cooldownEnd)
			}
		}
	}

	mu := MinutesUntil(now, rec.RecommendedAt)
	rec.MinutesUntil = mu
	rec.IsReady = mu <= 0
	rec.IsPerfectTime = mu >= -PerfectWindowMinutes && mu <= PerfectWindowMinutes
	rec.IsTooEarly = mu > PerfectWindowMinutes
	rec.IsTooLate = mu < -PerfectWindowMinutes

	return rec, nil
}

// AllRecommendedPosts builds the operator-facing worklist: morning and evening
// recommendations for every account, sorted by recommended instant ascending.
// Accounts whose creator is missing from the directory are skipped.
func AllRecommendedPosts(accounts []models.Account, creators []models.Creator, operatorZone string, todayLogs []models.PostLogEntry, now time.Time) ([]Recommendation, error) {
	byID := make(map[int64]models.Creator, len(creators))
	for _, c := range creators {
		byID[c.ID] = c
	}

	var recs []Recommendation
	for _, acc := range accounts {
		if !acc.Active {
			continue
		}
		creator, ok := byID[acc.CreatorID]
		if !ok {
			continue
		}

		for _, shift := range []Shift{ShiftMorning, ShiftEvening} {
			rec, err := NextRecommendedPost(acc, creator, operatorZone, shift, todayLogs, now)
			if err != nil {
				return nil, err
			}
			if rec != nil {
				recs = append(recs, *rec)
			}
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].RecommendedAt.Before(recs[j].RecommendedAt)
	})

	return recs, nil
}

// entriesInShift returns the account's log entries whose posting instant falls
// in the given shift on the operator's clock, ordered oldest first.
func entriesInShift(accountID int64, shift Shift, logs []models.PostLogEntry, operatorLoc *time.Location) []models.PostLogEntry {
	var out []models.PostLogEntry
	for _, entry := range logs {
		if entry.AccountID != accountID {
			continue
		}
		if ShiftOf(entry.PostedAt, operatorLoc) != shift {
			continue
		}
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PostedAt.Before(out[j].PostedAt)
	})
	return out
}
