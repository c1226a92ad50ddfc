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

type AccountService interface {
	Create(ctx context.Context, ac *transfer.AccountCreation) (int64, error)
	List(ctx context.Context) ([]*models.Account, error)
	Update(ctx context.Context, id int64, au *transfer.AccountUpdate) error
	Remove(ctx context.Context, id int64) error
}

type accountService struct {
	ar repository.AccountRepository
	cr repository.CreatorRepository
}

func NewAccountService(ar repository.AccountRepository, cr repository.CreatorRepository) AccountService {
	return &accountService{
		ar: ar,
		cr: cr,
	}
}

func (s *accountService) Create(ctx context.Context, ac *transfer.AccountCreation) (int64, error) {
	if _, ok := scheduling.PolicyFor(scheduling.Platform(ac.Platform)); !ok {
		err := fmt.Errorf("unknown platform %q", ac.Platform)
		slog.Info(err.Error())
		return 0, err
	}

	if err := validateBaseTimes(ac.BaseTimes); err != nil {
		return 0, err
	}

	creator, err := s.cr.GetByID(ctx, ac.CreatorID)
	if err != nil {
		return 0, err
	}
	if creator == nil {
		err = errors.New("creator doesn't exist")
		slog.Info(err.Error(), "creator_id", ac.CreatorID)
		return 0, err
	}

	return s.ar.Create(ctx, &models.Account{
		CreatorID:   ac.CreatorID,
		Platform:    ac.Platform,
		Handle:      ac.Handle,
		DeviceLabel: ac.DeviceLabel,
		ProfileLink: ac.ProfileLink,
		BaseTimes:   ac.BaseTimes,
		Active:      true,
	})
}

func (s *accountService) List(ctx context.Context) ([]*models.Account, error) {
	return s.ar.List(ctx)
}

// Update only touches the mutable surface of an account. Identity (creator,
// platform, sort index) is fixed at creation.
func (s *accountService) Update(ctx context.Context, id int64, au *transfer.AccountUpdate) error {
	account, err := s.ar.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if account == nil {
		err = errors.New("account doesn't exist")
		slog.Info(err.Error(), "account_id", id)
		return err
	}

	if au.Handle != "" {
		account.Handle = au.Handle
	}
	if au.DeviceLabel != "" {
		account.DeviceLabel = au.DeviceLabel
	}
	if au.ProfileLink != "" {
		account.ProfileLink = au.ProfileLink
	}
	if au.BaseTimes != nil {
		if err := validateBaseTimes(*au.BaseTimes); err != nil {
			return err
		}
		account.BaseTimes = *au.BaseTimes
	}
	if au.Active != nil {
		account.Active = *au.Active
	}

	return s.ar.Update(ctx, account)
}

// validateBaseTimes rejects malformed override times at save time, the same
// policy as timezone validation: a bad "HH:mm" must never reach generation.
func validateBaseTimes(baseTimes []string) error {
	for _, bt := range baseTimes {
		if !scheduling.IsValidTimeOfDay(bt) {
			err := fmt.Errorf("invalid base time %q", bt)
			slog.Info(err.Error())
			return err
		}
	}
	return nil
}

// Remove deletes the account. Its slots vanish from the next reconcile; its
// post logs remain as historical records keyed by the old account id.
func (s *accountService) Remove(ctx context.Context, id int64) error {
	return s.ar.Remove(ctx, id)
}
