package queue

import (
	"time"

	"github.com/pattadon/socialshift/internal/repository"
	"github.com/pattadon/socialshift/internal/scheduling"
	"github.com/pattadon/socialshift/internal/service"
)

type Queue struct {
	ar repository.AccountRepository
	rs service.RecommendationService
	ss service.SettingsService
}

func NewQueue(
	ar repository.AccountRepository,
	rs service.RecommendationService,
	ss service.SettingsService) *Queue {
	return &Queue{
		ar: ar,
		rs: rs,
		ss: ss,
	}
}

const TaskTypePostReminder = "reminder:post"

type PostReminderPayload struct {
	AccountID     int64            `json:"account_id"`
	Platform      string           `json:"platform"`
	Shift         scheduling.Shift `json:"shift"`
	PostNumber    int              `json:"post_number"`
	RecommendedAt time.Time        `json:"recommended_at"`
}
