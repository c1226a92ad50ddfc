package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/pattadon/socialshift/internal/models"
)

type CreatorRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Creator, error)
	Create(ctx context.Context, creator *models.Creator) (int64, error)
	List(ctx context.Context) ([]*models.Creator, error)
	Update(ctx context.Context, creator *models.Creator) error
	Remove(ctx context.Context, id int64) error
}

type creatorRepository struct {
	db *sql.DB
}

func NewCreatorRepository(db *sql.DB) CreatorRepository {
	return &creatorRepository{db: db}
}

func (r *creatorRepository) Create(ctx context.Context, creator *models.Creator) (int64, error) {
	query := `
		INSERT INTO creators (name, timezone)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, creator.Name, creator.Timezone).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *creatorRepository) GetByID(ctx context.Context, id int64) (*models.Creator, error) {
	query := `SELECT id, name, timezone, created_at, updated_at FROM creators WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var creator models.Creator
	err := row.Scan(&creator.ID, &creator.Name, &creator.Timezone, &creator.CreatedAt, &creator.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &creator, nil
}

func (r *creatorRepository) List(ctx context.Context) ([]*models.Creator, error) {
	query := `SELECT id, name, timezone, created_at, updated_at FROM creators ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var creators []*models.Creator
	for rows.Next() {
		var creator models.Creator
		err := rows.Scan(&creator.ID, &creator.Name, &creator.Timezone, &creator.CreatedAt, &creator.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		creators = append(creators, &creator)
	}
	return creators, nil
}

func (r *creatorRepository) Update(ctx context.Context, creator *models.Creator) error {
	query := `
		UPDATE creators
		SET name = $1,
			timezone = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, creator.Name, creator.Timezone, time.Now(), creator.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *creatorRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM creators WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
