package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pattadon/socialshift/internal/models"
)

type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) (int64, error)
	List(ctx context.Context) ([]*models.Account, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	Remove(ctx context.Context, id int64) error
}

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, creator_id, platform, handle, device_label, profile_link, base_times, sort_index, active, created_at, updated_at`

func (r *accountRepository) Create(ctx context.Context, account *models.Account) (int64, error) {
	// sort_index is assigned once at creation and never reused, so stagger
	// ordering stays stable even after deletions.
	query := `
		INSERT INTO accounts (creator_id, platform, handle, device_label, profile_link, base_times, sort_index, active)
		VALUES ($1, $2, $3, $4, $5, $6, (SELECT COALESCE(MAX(sort_index) + 1, 0) FROM accounts), $7)
		RETURNING id
	`

	baseTimes, err := json.Marshal(account.BaseTimes)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	var id int64
	err = r.db.QueryRowContext(ctx, query,
		account.CreatorID, account.Platform, account.Handle,
		account.DeviceLabel, account.ProfileLink, baseTimes, account.Active).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	account, err := scanAccount(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return account, nil
}

func (r *accountRepository) List(ctx context.Context) ([]*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY sort_index`
	return r.list(ctx, query)
}

func (r *accountRepository) ListByCreator(ctx context.Context, creatorID int64) ([]*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE creator_id = $1 ORDER BY sort_index`
	return r.list(ctx, query, creatorID)
}

func (r *accountRepository) list(ctx context.Context, query string, args ...any) ([]*models.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows.Scan)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (r *accountRepository) Update(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET handle = $1,
			device_label = $2,
			profile_link = $3,
			base_times = $4,
			active = $5,
			updated_at = $6
		WHERE id = $7
	`

	baseTimes, err := json.Marshal(account.BaseTimes)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	_, err = r.db.ExecContext(ctx, query, account.Handle, account.DeviceLabel,
		account.ProfileLink, baseTimes, account.Active, time.Now(), account.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *accountRepository) Remove(ctx context.Context, id int64) error {
	// Post logs keep their account_id on purpose; they are historical
	// records and survive account deletion.
	query := `DELETE FROM accounts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func scanAccount(scan func(dest ...any) error) (*models.Account, error) {
	var account models.Account
	var baseTimes []byte

	err := scan(&account.ID, &account.CreatorID, &account.Platform, &account.Handle,
		&account.DeviceLabel, &account.ProfileLink, &baseTimes, &account.SortIndex,
		&account.Active, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(baseTimes) > 0 {
		if err := json.Unmarshal(baseTimes, &account.BaseTimes); err != nil {
			return nil, err
		}
	}

	return &account, nil
}
