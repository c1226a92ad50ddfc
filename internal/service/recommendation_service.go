package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pattadon/socialshift/internal/repository"
	"github.com/pattadon/socialshift/internal/scheduling"
)

type RecommendationService interface {
	NextForAccount(ctx context.Context, accountID int64, shift scheduling.Shift) (*scheduling.Recommendation, error)
	Worklist(ctx context.Context) ([]scheduling.Recommendation, error)
}

type recommendationService struct {
	ar repository.AccountRepository
	cr repository.CreatorRepository
	ls PostLogService
	st SettingsService
}

func NewRecommendationService(
	ar repository.AccountRepository,
	cr repository.CreatorRepository,
	ls PostLogService,
	st SettingsService) RecommendationService {
	return &recommendationService{
		ar: ar,
		cr: cr,
		ls: ls,
		st: st,
	}
}

// NextForAccount answers "when should this account post next in this shift".
// A nil recommendation with a nil error means the shift quota is met.
func (s *recommendationService) NextForAccount(ctx context.Context, accountID int64, shift scheduling.Shift) (*scheduling.Recommendation, error) {
	account, err := s.ar.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		err = errors.New("account not found")
		slog.Info(err.Error(), "account_id", accountID)
		return nil, err
	}

	creator, err := s.cr.GetByID(ctx, account.CreatorID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		err = errors.New("creator not found")
		slog.Info(err.Error(), "creator_id", account.CreatorID)
		return nil, err
	}

	zone, err := s.st.OperatorZone(ctx)
	if err != nil {
		return nil, err
	}

	todayLogs, err := s.ls.ListToday(ctx)
	if err != nil {
		return nil, err
	}

	return scheduling.NextRecommendedPost(*account, *creator, zone, shift, deref(todayLogs), time.Now())
}

// Worklist is the live "what should happen next" feed the UI and the
// reminder poller both consume. Recomputed from scratch on every call.
func (s *recommendationService) Worklist(ctx context.Context) ([]scheduling.Recommendation, error) {
	accounts, err := s.ar.List(ctx)
	if err != nil {
		return nil, err
	}
	creators, err := s.cr.List(ctx)
	if err != nil {
		return nil, err
	}
	todayLogs, err := s.ls.ListToday(ctx)
	if err != nil {
		return nil, err
	}

	zone, err := s.st.OperatorZone(ctx)
	if err != nil {
		return nil, err
	}

	return scheduling.AllRecommendedPosts(deref(accounts), deref(creators), zone, deref(todayLogs), time.Now())
}
