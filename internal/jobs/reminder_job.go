package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/pattadon/socialshift/internal/queue"
	"github.com/pattadon/socialshift/internal/service"
)

type ReminderJob struct {
	rs     service.RecommendationService
	client *asynq.Client
}

func NewReminderJob(rs service.RecommendationService, client *asynq.Client) *ReminderJob {
	return &ReminderJob{
		rs:     rs,
		client: client,
	}
}

// DispatchReminders walks the current worklist and enqueues a reminder for
// every recommendation coming due within the next half hour. Task ids are
// keyed on (account, instant) so repeated polls don't duplicate reminders.
func (c *ReminderJob) DispatchReminders() {
	ctx := context.Background()

	recs, err := c.rs.Worklist(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	now := time.Now()
	horizon := now.Add(30 * time.Minute)

	for _, rec := range recs {
		if rec.RecommendedAt.After(horizon) {
			continue
		}

		delay := rec.RecommendedAt.Sub(now)
		if delay < 0 {
			delay = 0
		}

		payload := queue.PostReminderPayload{
			AccountID:     rec.AccountID,
			Platform:      string(rec.Platform),
			Shift:         rec.Shift,
			PostNumber:    rec.PostNumber,
			RecommendedAt: rec.RecommendedAt,
		}

		if err := queue.EnqueueReminder(c.client, payload, delay); err != nil {
			slog.Info(err.Error())
		}
	}
}
