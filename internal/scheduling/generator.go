package scheduling

import (
	"log/slog"
	"sort"
	"time"

	"github.com/pattadon/socialshift/internal/models"
)

// IDFunc supplies slot ids. Production wires a nanoid generator; tests supply
// a deterministic sequence.
type IDFunc func() string

// GenerateInput carries everything slot generation depends on. Generation is
// deterministic given the same input.
type GenerateInput struct {
	Accounts     []models.Account
	Creators     []models.Creator
	OperatorZone string
	Date         time.Time // any instant on the target calendar day
	Logs         []models.PostLogEntry
	Now          time.Time
	NewID        IDFunc
}

// scheduleEntry is one expected post before staggering: an account paired
// with one of its platform's base times.
type scheduleEntry struct {
	account  models.Account
	creator  models.Creator
	policy   Policy
	baseTime string
	zone     string
}

// GenerateDailyPlan materializes the ordered slot list for one calendar day.
// Accounts referencing an unknown creator are skipped so one dangling
// reference cannot take down the rest of the plan; an invalid timezone is
// fatal to the whole computation.
func GenerateDailyPlan(in GenerateInput) ([]models.Slot, error) {
	creators := make(map[int64]models.Creator, len(in.Creators))
	for _, c := range in.Creators {
		creators[c.ID] = c
	}

	var entries []scheduleEntry
	for _, acc := range in.Accounts {
		if !acc.Active {
			continue
		}

		policy, ok := PolicyFor(Platform(acc.Platform))
		if !ok {
			slog.Info("skipping account with unknown platform", "account_id", acc.ID, "platform", acc.Platform)
			continue
		}

		creator, ok := creators[acc.CreatorID]
		if !ok {
			slog.Info("skipping account with missing creator", "account_id", acc.ID, "creator_id", acc.CreatorID)
			continue
		}

		baseTimes := policy.BaseTimes
		if len(acc.BaseTimes) > 0 {
			baseTimes = acc.BaseTimes
		}

		for _, bt := range baseTimes {
			entries = append(entries, scheduleEntry{
				account:  acc,
				creator:  creator,
				policy:   policy,
				baseTime: bt,
				zone:     policy.ReferenceZone(creator.Timezone),
			})
		}
	}

	// Workflow order: same nominal time first, then all TikToks before all
	// Threads and so on, then account insertion order.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].baseTime != entries[j].baseTime {
			return entries[i].baseTime < entries[j].baseTime
		}
		if entries[i].policy.Priority != entries[j].policy.Priority {
			return entries[i].policy.Priority < entries[j].policy.Priority
		}
		return entries[i].account.SortIndex < entries[j].account.SortIndex
	})

	slots := make([]models.Slot, 0, len(entries))
	taken := make(map[int64]struct{}, len(entries))
	for _, e := range entries {
		instant, err := TimeOfDayToInstant(e.baseTime, e.zone, in.Date)
		if err != nil {
			return nil, err
		}

		// Stagger by advancing to the next free instant. Collisions come
		// from accounts sharing a base time, from a large group staggering
		// onto a later base time, and from base times in different
		// reference zones resolving to the same instant; a single occupancy
		// set covers all three.
		for {
			if _, occupied := taken[instant.Unix()]; !occupied {
				break
			}
			instant = AddMinutes(instant, StaggerIntervalMinutes)
		}
		taken[instant.Unix()] = struct{}{}

		creatorTime, err := FormatInstant(instant, e.creator.Timezone, false)
		if err != nil {
			return nil, err
		}
		localTime, err := FormatInstant(instant, in.OperatorZone, false)
		if err != nil {
			return nil, err
		}

		slot := models.Slot{
			ID:          in.NewID(),
			AccountID:   e.account.ID,
			Platform:    e.account.Platform,
			ScheduledAt: instant,
			CreatorTime: creatorTime,
			LocalTime:   localTime,
			Status:      models.SlotStatusPending,
		}

		// Cooldown written here is a snapshot for display; actionability is
		// re-derived live from the log history before any post is accepted.
		if next := NextEligibleInstant(e.account.ID, Platform(e.account.Platform), in.Logs); next != nil && in.Now.Before(*next) {
			slot.Status = models.SlotStatusCooldown
			slot.NextEligibleAt = next
		}

		slots = append(slots, slot)
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].ScheduledAt.Before(slots[j].ScheduledAt)
	})

	return slots, nil
}
