package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/pattadon/socialshift/internal/models"
	"github.com/pattadon/socialshift/internal/repository"
	"github.com/pattadon/socialshift/internal/scheduling"
	"github.com/pattadon/socialshift/internal/transfer"
	"github.com/pattadon/socialshift/pkg/utils"
)

// ErrSlotNotActionable is returned when a post is attempted against a slot
// that is already resolved or still inside a cooldown window.
var ErrSlotNotActionable = errors.New("slot is not actionable")

type PostLogService interface {
	LogPost(ctx context.Context, pc *transfer.PostLogCreation) (string, error)
	LogSkip(ctx context.Context, slotID string) error
	List(ctx context.Context) ([]*models.PostLogEntry, error)
	ListToday(ctx context.Context) ([]*models.PostLogEntry, error)
}

type postLogService struct {
	db *sql.DB
	lr repository.PostLogRepository
	ar repository.AccountRepository
	cr repository.CreatorRepository
	pr repository.PlanRepository
	pl PlanService
	st SettingsService
}

func NewPostLogService(
	db *sql.DB,
	lr repository.PostLogRepository,
	ar repository.AccountRepository,
	cr repository.CreatorRepository,
	pr repository.PlanRepository,
	pl PlanService,
	st SettingsService) PostLogService {
	return &postLogService{
		db: db,
		lr: lr,
		ar: ar,
		cr: cr,
		pr: pr,
		pl: pl,
		st: st,
	}
}

// LogPost records a real post against a slot. Actionability is re-derived
// from live log history right here, so a stale plan from the last generation
// can never let a post through inside the cooldown window.
func (s *postLogService) LogPost(ctx context.Context, pc *transfer.PostLogCreation) (string, error) {
	return s.log(ctx, pc, false)
}

// LogSkip consumes the slot without posting. Skips count against the shift
// quota exactly like posts.
func (s *postLogService) LogSkip(ctx context.Context, slotID string) error {
	_, err := s.log(ctx, &transfer.PostLogCreation{SlotID: slotID}, true)
	return err
}

func (s *postLogService) log(ctx context.Context, pc *transfer.PostLogCreation, skipped bool) (string, error) {
	slot, err := s.pl.GetSlot(ctx, pc.SlotID)
	if err != nil {
		return "", err
	}
	if slot == nil {
		err = errors.New("slot not found in today's plan")
		slog.Info(err.Error(), "slot_id", pc.SlotID)
		return "", err
	}

	logs, err := s.lr.ListByAccount(ctx, slot.AccountID)
	if err != nil {
		return "", err
	}

	now := time.Now()
	if !scheduling.IsSlotActionable(*slot, deref(logs), now) {
		slog.Info(ErrSlotNotActionable.Error(), "slot_id", slot.ID, "status", slot.Status)
		return "", ErrSlotNotActionable
	}

	account, err := s.ar.GetByID(ctx, slot.AccountID)
	if err != nil {
		return "", err
	}
	if account == nil {
		err = errors.New("account for slot no longer exists")
		slog.Info(err.Error(), "account_id", slot.AccountID)
		return "", err
	}

	creator, err := s.cr.GetByID(ctx, account.CreatorID)
	if err != nil {
		return "", err
	}
	if creator == nil {
		err = errors.New("creator for account no longer exists")
		slog.Info(err.Error(), "creator_id", account.CreatorID)
		return "", err
	}

	zone, err := s.st.OperatorZone(ctx)
	if err != nil {
		return "", err
	}

	creatorTime, err := scheduling.FormatInstant(now, creator.Timezone, false)
	if err != nil {
		return "", err
	}
	localTime, err := scheduling.FormatInstant(now, zone, false)
	if err != nil {
		return "", err
	}

	entry := &models.PostLogEntry{
		ID:          utils.NewID(),
		AccountID:   slot.AccountID,
		Platform:    slot.Platform,
		PostedAt:    now.UTC(),
		CreatorTime: creatorTime,
		LocalTime:   localTime,
		Notes:       pc.Notes,
		Checklist:   pc.Checklist,
		Skipped:     skipped,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	defer tx.Rollback()

	if err := s.lr.Create(ctx, tx, entry); err != nil {
		return "", err
	}

	status := models.SlotStatusPosted
	if skipped {
		status = models.SlotStatusSkipped
	}
	if err := s.pr.UpdateSlotStatus(ctx, tx, slot.ID, status, &entry.ID); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		slog.Info(err.Error())
		return "", err
	}

	return entry.ID, nil
}

func (s *postLogService) List(ctx context.Context) ([]*models.PostLogEntry, error) {
	return s.lr.List(ctx)
}

// ListToday returns the log entries of the current operator-local day, the
// window the recommender and shift quotas operate on.
func (s *postLogService) ListToday(ctx context.Context) ([]*models.PostLogEntry, error) {
	zone, err := s.st.OperatorZone(ctx)
	if err != nil {
		return nil, err
	}
	loc, err := scheduling.LoadZone(zone)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).UTC()
	return s.lr.ListByTimeRange(ctx, from, from.Add(24*time.Hour))
}
