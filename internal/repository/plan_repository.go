package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/pattadon/socialshift/internal/models"
)

type PlanRepository interface {
	GetByDate(ctx context.Context, date string) (*models.DailyPlan, error)
	Save(ctx context.Context, plan *models.DailyPlan) error
	UpdateSlotStatus(ctx context.Context, tx *sql.Tx, slotID, status string, postLogID *string) error
}

type planRepository struct {
	db *sql.DB
}

func NewPlanRepository(db *sql.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) GetByDate(ctx context.Context, date string) (*models.DailyPlan, error) {
	query := `SELECT plan_date FROM daily_plans WHERE plan_date = $1`

	var planDate string
	err := r.db.QueryRowContext(ctx, query, date).Scan(&planDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	slotQuery := `
		SELECT id, account_id, platform, scheduled_at, creator_time, local_time, status, post_log_id, next_eligible_at
		FROM plan_slots
		WHERE plan_date = $1
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, slotQuery, date)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	plan := &models.DailyPlan{Date: planDate}
	for rows.Next() {
		var slot models.Slot
		var postLogID sql.NullString
		var nextEligible sql.NullTime

		err := rows.Scan(&slot.ID, &slot.AccountID, &slot.Platform, &slot.ScheduledAt,
			&slot.CreatorTime, &slot.LocalTime, &slot.Status, &postLogID, &nextEligible)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}

		slot.ScheduledAt = slot.ScheduledAt.UTC()
		if postLogID.Valid {
			slot.PostLogID = &postLogID.String
		}
		if nextEligible.Valid {
			t := nextEligible.Time.UTC()
			slot.NextEligibleAt = &t
		}
		plan.Slots = append(plan.Slots, slot)
	}

	return plan, nil
}

// Save replaces the persisted plan for its date in one transaction. Callers
// serialize writes; the reconciler already folded recorded progress in.
func (r *planRepository) Save(ctx context.Context, plan *models.DailyPlan) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO daily_plans (plan_date)
		VALUES ($1)
		ON CONFLICT (plan_date) DO UPDATE SET updated_at = $2
	`, plan.Date, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM plan_slots WHERE plan_date = $1`, plan.Date)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	insert := `
		INSERT INTO plan_slots (id, plan_date, position, account_id, platform, scheduled_at, creator_time, local_time, status, post_log_id, next_eligible_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	for i, slot := range plan.Slots {
		var postLogID any
		if slot.PostLogID != nil {
			postLogID = *slot.PostLogID
		}
		var nextEligible any
		if slot.NextEligibleAt != nil {
			nextEligible = *slot.NextEligibleAt
		}

		_, err = tx.ExecContext(ctx, insert, slot.ID, plan.Date, i, slot.AccountID,
			slot.Platform, slot.ScheduledAt, slot.CreatorTime, slot.LocalTime,
			slot.Status, postLogID, nextEligible)
		if err != nil {
			slog.Info(err.Error())
			return err
		}
	}

	return tx.Commit()
}

func (r *planRepository) UpdateSlotStatus(ctx context.Context, tx *sql.Tx, slotID, status string, postLogID *string) error {
	query := `
		UPDATE plan_slots
		SET status = $1,
			post_log_id = $2
		WHERE id = $3
	`

	var logID any
	if postLogID != nil {
		logID = *postLogID
	}

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, status, logID, slotID)
	} else {
		_, err = r.db.ExecContext(ctx, query, status, logID, slotID)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
