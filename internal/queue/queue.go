package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

// EnqueueReminder schedules a posting reminder. The task id is derived from
// the account and the recommended instant so re-enqueueing the same reminder
// from a later poll is a no-op.
func EnqueueReminder(asynqClient *asynq.Client, payload PostReminderPayload, delay time.Duration) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypePostReminder, taskPayload)

	taskID := fmt.Sprintf("reminder-%d-%d", payload.AccountID, payload.RecommendedAt.Unix())
	_, err = asynqClient.Enqueue(task, asynq.ProcessIn(delay), asynq.TaskID(taskID))
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return err
	}

	log.Printf("Reminder scheduled: %+v", payload)
	return nil
}
