package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pattadon/socialshift/internal/models"
)

func reconcilerSlot(id string, accountID int64, at time.Time, status string) models.Slot {
	return models.Slot{
		ID:          id,
		AccountID:   accountID,
		Platform:    string(PlatformTikTok),
		ScheduledAt: at,
		Status:      status,
	}
}

func TestReconcile_NoPersistedPlan(t *testing.T) {
	at := time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC)
	fresh := []models.Slot{reconcilerSlot("f1", 1, at, models.SlotStatusPending)}

	plan := Reconcile(fresh, nil, "2025-03-10")
	assert.Equal(t, "2025-03-10", plan.Date)
	assert.Equal(t, fresh, plan.Slots)
}

func TestReconcile_KeepsPersistedProgress(t *testing.T) {
	at := time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC)
	logID := "log-7"

	persisted := &models.DailyPlan{
		Date: "2025-03-10",
		Slots: []models.Slot{
			func() models.Slot {
				s := reconcilerSlot("old-1", 1, at, models.SlotStatusPosted)
				s.PostLogID = &logID
				return s
			}(),
		},
	}

	// Regeneration produced a new id for the same (account, instant) slot.
	fresh := []models.Slot{
		reconcilerSlot("new-1", 1, at, models.SlotStatusPending),
		reconcilerSlot("new-2", 2, at.Add(10*time.Minute), models.SlotStatusPending),
	}

	plan := Reconcile(fresh, persisted, "2025-03-10")
	require.Len(t, plan.Slots, 2)

	// Matching slot keeps the persisted record, including its id and log link.
	assert.Equal(t, "old-1", plan.Slots[0].ID)
	assert.Equal(t, models.SlotStatusPosted, plan.Slots[0].Status)
	require.NotNil(t, plan.Slots[0].PostLogID)
	assert.Equal(t, logID, *plan.Slots[0].PostLogID)

	// The new account's slot is inserted as generated.
	assert.Equal(t, "new-2", plan.Slots[1].ID)
}

func TestReconcile_DropsVanishedSlots(t *testing.T) {
	at := time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC)

	persisted := &models.DailyPlan{
		Date: "2025-03-10",
		Slots: []models.Slot{
			reconcilerSlot("old-1", 1, at, models.SlotStatusPosted),
			reconcilerSlot("old-2", 2, at.Add(10*time.Minute), models.SlotStatusPending),
		},
	}

	// Account 2 was deleted; its slot is gone from the fresh generation.
	fresh := []models.Slot{reconcilerSlot("new-1", 1, at, models.SlotStatusPending)}

	plan := Reconcile(fresh, persisted, "2025-03-10")
	require.Len(t, plan.Slots, 1)
	assert.Equal(t, int64(1), plan.Slots[0].AccountID)
}

func TestReconcile_Idempotent(t *testing.T) {
	at := time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC)

	persisted := &models.DailyPlan{
		Date: "2025-03-10",
		Slots: []models.Slot{
			reconcilerSlot("old-1", 1, at, models.SlotStatusPosted),
			reconcilerSlot("old-3", 3, at.Add(20*time.Minute), models.SlotStatusSkipped),
		},
	}
	fresh := []models.Slot{
		reconcilerSlot("new-1", 1, at, models.SlotStatusPending),
		reconcilerSlot("new-2", 2, at.Add(10*time.Minute), models.SlotStatusPending),
	}

	once := Reconcile(fresh, persisted, "2025-03-10")
	twice := Reconcile(fresh, &once, "2025-03-10")
	assert.Equal(t, once, twice)
}
