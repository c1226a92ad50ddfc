package service

import (
	"context"
	"sync"
	"time"

	"github.com/pattadon/socialshift/internal/models"
	"github.com/pattadon/socialshift/internal/repository"
	"github.com/pattadon/socialshift/internal/scheduling"
	"github.com/pattadon/socialshift/pkg/utils"
)

type PlanService interface {
	Today(ctx context.Context) (*models.DailyPlan, error)
	Refresh(ctx context.Context) (*models.DailyPlan, error)
	GetSlot(ctx context.Context, slotID string) (*models.Slot, error)
}

type planService struct {
	// Serializes refresh writes; the engine itself is pure and needs no
	// locking, but two concurrent reconcile+save cycles would race on the
	// persisted plan.
	mu sync.Mutex

	ar repository.AccountRepository
	cr repository.CreatorRepository
	pr repository.PlanRepository
	lr repository.PostLogRepository
	st SettingsService
}

func NewPlanService(
	ar repository.AccountRepository,
	cr repository.CreatorRepository,
	pr repository.PlanRepository,
	lr repository.PostLogRepository,
	st SettingsService) PlanService {
	return &planService{
		ar: ar,
		cr: cr,
		pr: pr,
		lr: lr,
		st: st,
	}
}

// Today returns the persisted plan for the current operator-local date,
// materializing one when none exists yet.
func (s *planService) Today(ctx context.Context) (*models.DailyPlan, error) {
	zone, err := s.st.OperatorZone(ctx)
	if err != nil {
		return nil, err
	}
	loc, err := scheduling.LoadZone(zone)
	if err != nil {
		return nil, err
	}

	plan, err := s.pr.GetByDate(ctx, scheduling.DateKey(time.Now(), loc))
	if err != nil {
		return nil, err
	}
	if plan != nil {
		return plan, nil
	}

	return s.Refresh(ctx)
}

// Refresh regenerates today's slots and folds them into whatever plan is
// already persisted, so recorded progress survives regeneration. Safe to call
// on a timer; the whole cycle is idempotent.
func (s *planService) Refresh(ctx context.Context) (*models.DailyPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	zone, err := s.st.OperatorZone(ctx)
	if err != nil {
		return nil, err
	}
	loc, err := scheduling.LoadZone(zone)
	if err != nil {
		return nil, err
	}

	accounts, err := s.ar.List(ctx)
	if err != nil {
		return nil, err
	}
	creators, err := s.cr.List(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := s.lr.List(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	fresh, err := scheduling.GenerateDailyPlan(scheduling.GenerateInput{
		Accounts:     deref(accounts),
		Creators:     deref(creators),
		OperatorZone: zone,
		Date:         now,
		Logs:         deref(logs),
		Now:          now,
		NewID:        utils.NewID,
	})
	if err != nil {
		return nil, err
	}

	date := scheduling.DateKey(now, loc)
	persisted, err := s.pr.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	plan := scheduling.Reconcile(fresh, persisted, date)
	if err := s.pr.Save(ctx, &plan); err != nil {
		return nil, err
	}

	return &plan, nil
}

func (s *planService) GetSlot(ctx context.Context, slotID string) (*models.Slot, error) {
	plan, err := s.Today(ctx)
	if err != nil {
		return nil, err
	}

	for i := range plan.Slots {
		if plan.Slots[i].ID == slotID {
			return &plan.Slots[i], nil
		}
	}
	return nil, nil
}

func deref[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}
