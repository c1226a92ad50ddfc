package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

// HandleReminderTask fires when a recommended posting instant arrives. The
// recommendation is re-derived at delivery time; if the operator already
// posted (or the slot fell into cooldown) the reminder is dropped silently.
func (j *Queue) HandleReminderTask(ctx context.Context, task *asynq.Task) error {
	var payload PostReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return j.DeliverReminder(ctx, payload)
}

func (j *Queue) DeliverReminder(ctx context.Context, payload PostReminderPayload) error {
	enabled, err := j.ss.NotificationsEnabled(ctx)
	if err != nil {
		return err
	}
	if !enabled {
		return nil
	}

	rec, err := j.rs.NextForAccount(ctx, payload.AccountID, payload.Shift)
	if err != nil {
		return err
	}
	if rec == nil || rec.PostNumber != payload.PostNumber {
		// Already posted past this point, nothing to remind about.
		return nil
	}

	account, err := j.ar.GetByID(ctx, payload.AccountID)
	if err != nil {
		return err
	}
	if account == nil {
		return nil
	}

	log.Printf("Reminder: post #%d for %s %s (%s shift) is due at %s",
		payload.PostNumber, account.Handle, payload.Platform, payload.Shift,
		payload.RecommendedAt.Format("15:04 MST"))

	return nil
}
