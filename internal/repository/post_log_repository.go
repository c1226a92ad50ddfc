package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pattadon/socialshift/internal/models"
)

type PostLogRepository interface {
	GetByID(ctx context.Context, id string) (*models.PostLogEntry, error)
	Create(ctx context.Context, tx *sql.Tx, entry *models.PostLogEntry) error
	List(ctx context.Context) ([]*models.PostLogEntry, error)
	ListByAccount(ctx context.Context, accountID int64) ([]*models.PostLogEntry, error)
	ListByTimeRange(ctx context.Context, from, to time.Time) ([]*models.PostLogEntry, error)
	RestoreMany(ctx context.Context, entries []*models.PostLogEntry) (int, error)
}

type postLogRepository struct {
	db *sql.DB
}

func NewPostLogRepository(db *sql.DB) PostLogRepository {
	return &postLogRepository{db: db}
}

const postLogColumns = `id, account_id, platform, posted_at, creator_time, local_time, notes, checklist, skipped, created_at`

func (r *postLogRepository) Create(ctx context.Context, tx *sql.Tx, entry *models.PostLogEntry) error {
	query := `
		INSERT INTO post_logs (id, account_id, platform, posted_at, creator_time, local_time, notes, checklist, skipped)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	checklist, err := json.Marshal(entry.Checklist)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	args := []any{entry.ID, entry.AccountID, entry.Platform, entry.PostedAt,
		entry.CreatorTime, entry.LocalTime, entry.Notes, checklist, entry.Skipped}

	if tx != nil {
		_, err = tx.ExecContext(ctx, query, args...)
	} else {
		_, err = r.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}

func (r *postLogRepository) GetByID(ctx context.Context, id string) (*models.PostLogEntry, error) {
	query := `SELECT ` + postLogColumns + ` FROM post_logs WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	entry, err := scanPostLog(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return entry, nil
}

func (r *postLogRepository) List(ctx context.Context) ([]*models.PostLogEntry, error) {
	query := `SELECT ` + postLogColumns + ` FROM post_logs ORDER BY posted_at`
	return r.list(ctx, query)
}

func (r *postLogRepository) ListByAccount(ctx context.Context, accountID int64) ([]*models.PostLogEntry, error) {
	query := `SELECT ` + postLogColumns + ` FROM post_logs WHERE account_id = $1 ORDER BY posted_at`
	return r.list(ctx, query, accountID)
}

func (r *postLogRepository) ListByTimeRange(ctx context.Context, from, to time.Time) ([]*models.PostLogEntry, error) {
	query := `SELECT ` + postLogColumns + ` FROM post_logs WHERE posted_at >= $1 AND posted_at < $2 ORDER BY posted_at`
	return r.list(ctx, query, from, to)
}

// RestoreMany inserts archived entries, skipping ids that already exist.
// Returns the number of rows actually inserted.
func (r *postLogRepository) RestoreMany(ctx context.Context, entries []*models.PostLogEntry) (int, error) {
	query := `
		INSERT INTO post_logs (id, account_id, platform, posted_at, creator_time, local_time, notes, checklist, skipped)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	defer tx.Rollback()

	restored := 0
	for _, entry := range entries {
		checklist, err := json.Marshal(entry.Checklist)
		if err != nil {
			slog.Info(err.Error())
			return 0, err
		}

		res, err := tx.ExecContext(ctx, query, entry.ID, entry.AccountID, entry.Platform,
			entry.PostedAt, entry.CreatorTime, entry.LocalTime, entry.Notes, checklist, entry.Skipped)
		if err != nil {
			slog.Info(err.Error())
			return 0, err
		}

		n, err := res.RowsAffected()
		if err != nil {
			slog.Info(err.Error())
			return 0, err
		}
		restored += int(n)
	}

	if err := tx.Commit(); err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return restored, nil
}

func (r *postLogRepository) list(ctx context.Context, query string, args ...any) ([]*models.PostLogEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var entries []*models.PostLogEntry
	for rows.Next() {
		entry, err := scanPostLog(rows.Scan)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func scanPostLog(scan func(dest ...any) error) (*models.PostLogEntry, error) {
	var entry models.PostLogEntry
	var checklist []byte

	err := scan(&entry.ID, &entry.AccountID, &entry.Platform, &entry.PostedAt,
		&entry.CreatorTime, &entry.LocalTime, &entry.Notes, &checklist,
		&entry.Skipped, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}

	if len(checklist) > 0 {
		if err := json.Unmarshal(checklist, &entry.Checklist); err != nil {
			return nil, err
		}
	}

	return &entry, nil
}
