package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	config "github.com/pattadon/socialshift/configs"
	"github.com/pattadon/socialshift/internal/models"
	"github.com/pattadon/socialshift/internal/repository"
	"github.com/pattadon/socialshift/internal/scheduling"
)

type SettingsService interface {
	GetSettingsInfo(ctx context.Context, userID int64) (*models.Settings, error)
	UpdateSettings(ctx context.Context, userID int64, timezone string, notificationsEnabled bool) error
	OperatorZone(ctx context.Context) (string, error)
	NotificationsEnabled(ctx context.Context) (bool, error)
}

type settingsService struct {
	cfg config.Config
	sr  repository.SettingsRepository
}

func NewSettingsService(cfg config.Config, sr repository.SettingsRepository) SettingsService {
	return &settingsService{
		cfg: cfg,
		sr:  sr,
	}
}

func (s *settingsService) GetSettingsInfo(ctx context.Context, userID int64) (*models.Settings, error) {
	settings, isExist, err := s.sr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !isExist {
		err = errors.New("settings for given user don't exist")
		slog.Info(err.Error())
		return nil, err
	}

	return settings, nil
}

// UpdateSettings rejects an unknown timezone here, at save time, so a bad
// zone never reaches plan generation.
func (s *settingsService) UpdateSettings(ctx context.Context, userID int64, timezone string, notificationsEnabled bool) error {
	if !scheduling.IsValidZone(timezone) {
		err := fmt.Errorf("%w: %q", scheduling.ErrInvalidTimezone, timezone)
		slog.Info(err.Error())
		return err
	}

	settings := models.Settings{
		Timezone:             timezone,
		NotificationsEnabled: notificationsEnabled,
	}
	err := s.sr.Upsert(ctx, &settings, userID)
	if err != nil {
		return err
	}
	return nil
}

// OperatorZone resolves the zone every shift boundary and plan date is
// computed in. Falls back to the configured default when the operator has
// not saved settings yet.
func (s *settingsService) OperatorZone(ctx context.Context) (string, error) {
	settings, isExist, err := s.sr.Get(ctx)
	if err != nil {
		return "", err
	}

	if isExist && settings.Timezone != "" {
		return settings.Timezone, nil
	}
	return s.cfg.OperatorTimezone, nil
}

// NotificationsEnabled defaults to true until the operator saves settings.
func (s *settingsService) NotificationsEnabled(ctx context.Context) (bool, error) {
	settings, isExist, err := s.sr.Get(ctx)
	if err != nil {
		return false, err
	}

	if !isExist {
		return true, nil
	}
	return settings.NotificationsEnabled, nil
}
