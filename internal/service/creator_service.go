package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pattadon/socialshift/internal/models"
	"github.com/pattadon/socialshift/internal/repository"
	"github.com/pattadon/socialshift/internal/scheduling"
	"github.com/pattadon/socialshift/internal/transfer"
)

type CreatorService interface {
	Create(ctx context.Context, cc *transfer.CreatorCreation) (int64, error)
	List(ctx context.Context) ([]*models.Creator, error)
	Update(ctx context.Context, id int64, cc *transfer.CreatorCreation) error
	Remove(ctx context.Context, id int64) error
}

type creatorService struct {
	cr repository.CreatorRepository
	ar repository.AccountRepository
}

func NewCreatorService(cr repository.CreatorRepository, ar repository.AccountRepository) CreatorService {
	return &creatorService{
		cr: cr,
		ar: ar,
	}
}

func (s *creatorService) Create(ctx context.Context, cc *transfer.CreatorCreation) (int64, error) {
	if cc.Name == "" {
		err := errors.New("creator name cannot be empty")
		slog.Info(err.Error())
		return 0, err
	}

	// A creator's home zone anchors Instagram/Facebook base times; reject
	// bad zones here rather than during plan generation.
	if !scheduling.IsValidZone(cc.Timezone) {
		err := fmt.Errorf("%w: %q", scheduling.ErrInvalidTimezone, cc.Timezone)
		slog.Info(err.Error())
		return 0, err
	}

	return s.cr.Create(ctx, &models.Creator{
		Name:     cc.Name,
		Timezone: cc.Timezone,
	})
}

func (s *creatorService) List(ctx context.Context) ([]*models.Creator, error) {
	return s.cr.List(ctx)
}

func (s *creatorService) Update(ctx context.Context, id int64, cc *transfer.CreatorCreation) error {
	creator, err := s.cr.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if creator == nil {
		err = errors.New("creator doesn't exist")
		slog.Info(err.Error(), "creator_id", id)
		return err
	}

	if cc.Name != "" {
		creator.Name = cc.Name
	}
	if cc.Timezone != "" {
		if !scheduling.IsValidZone(cc.Timezone) {
			err := fmt.Errorf("%w: %q", scheduling.ErrInvalidTimezone, cc.Timezone)
			slog.Info(err.Error())
			return err
		}
		creator.Timezone = cc.Timezone
	}

	return s.cr.Update(ctx, creator)
}

// Remove deletes the creator. Its accounts drop out of the next plan
// generation gracefully; historical post logs stay untouched.
func (s *creatorService) Remove(ctx context.Context, id int64) error {
	return s.cr.Remove(ctx, id)
}
