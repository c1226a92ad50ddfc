package scheduling

import (
	"github.com/pattadon/socialshift/internal/models"
)

type slotKey struct {
	accountID int64
	at        int64 // unix seconds UTC
}

// Reconcile folds a freshly generated slot list into the persisted plan for
// the same date without discarding recorded progress. Slot identity is
// (account id, scheduled instant); stored ids are regenerated on every
// materialization and mean nothing across runs.
//
// The fresh list decides ordering and membership: persisted slots that no
// longer appear (a deleted account, a changed policy) are dropped, persisted
// slots that still match keep their status and post-log link, and brand new
// slots come in as generated. Reconciling twice with no state change in
// between yields the same plan as reconciling once.
func Reconcile(fresh []models.Slot, persisted *models.DailyPlan, date string) models.DailyPlan {
	if persisted == nil {
		return models.DailyPlan{Date: date, Slots: fresh}
	}

	existing := make(map[slotKey]models.Slot, len(persisted.Slots))
	for _, s := range persisted.Slots {
		existing[slotKey{s.AccountID, s.ScheduledAt.UTC().Unix()}] = s
	}

	merged := make([]models.Slot, 0, len(fresh))
	for _, s := range fresh {
		if kept, ok := existing[slotKey{s.AccountID, s.ScheduledAt.UTC().Unix()}]; ok {
			merged = append(merged, kept)
			continue
		}
		merged = append(merged, s)
	}

	return models.DailyPlan{Date: date, Slots: merged}
}
