package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/pattadon/socialshift/internal/models"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, bool, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Settings, bool, error)
	Upsert(ctx context.Context, settings *models.Settings, userID int64) error
}

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the operator's settings row. Single-operator deployment: there
// is at most one row that matters.
func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, bool, error) {
	query := `SELECT id, user_id, timezone, notifications_enabled, created_at, updated_at FROM settings ORDER BY id LIMIT 1`
	return r.get(r.db.QueryRowContext(ctx, query))
}

func (r *settingsRepository) GetByUserID(ctx context.Context, userID int64) (*models.Settings, bool, error) {
	query := `SELECT id, user_id, timezone, notifications_enabled, created_at, updated_at FROM settings WHERE user_id = $1`
	return r.get(r.db.QueryRowContext(ctx, query, userID))
}

func (r *settingsRepository) get(row *sql.Row) (*models.Settings, bool, error) {
	var settings models.Settings
	err := row.Scan(&settings.ID, &settings.UserID, &settings.Timezone,
		&settings.NotificationsEnabled, &settings.CreatedAt, &settings.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &settings, true, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *models.Settings, userID int64) error {
	query := `
		INSERT INTO settings (user_id, timezone, notifications_enabled)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET timezone = $2,
			notifications_enabled = $3,
			updated_at = $4
	`
	_, err := r.db.ExecContext(ctx, query, userID, settings.Timezone, settings.NotificationsEnabled, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
