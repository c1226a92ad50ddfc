package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pattadon/socialshift/internal/models"
)

func TestPlanRepository_GetByDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPlanRepository(db)

	scheduled := time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT plan_date FROM daily_plans WHERE plan_date = $1`)).
		WithArgs("2025-03-10").
		WillReturnRows(sqlmock.NewRows([]string{"plan_date"}).AddRow("2025-03-10"))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM plan_slots`)).
		WithArgs("2025-03-10").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "account_id", "platform", "scheduled_at", "creator_time",
			"local_time", "status", "post_log_id", "next_eligible_at",
		}).AddRow("slot-1", int64(1), "tiktok", scheduled, "5:00 AM", "10:00 PM", models.SlotStatusPending, nil, nil))

	plan, err := repo.GetByDate(context.Background(), "2025-03-10")
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, "2025-03-10", plan.Date)
	require.Len(t, plan.Slots, 1)
	assert.Equal(t, "slot-1", plan.Slots[0].ID)
	assert.Equal(t, scheduled, plan.Slots[0].ScheduledAt)
	assert.Nil(t, plan.Slots[0].PostLogID)
	assert.Nil(t, plan.Slots[0].NextEligibleAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepository_GetByDate_NoPlan(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPlanRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT plan_date FROM daily_plans WHERE plan_date = $1`)).
		WithArgs("2025-03-10").
		WillReturnRows(sqlmock.NewRows([]string{"plan_date"}))

	plan, err := repo.GetByDate(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.Nil(t, plan)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepository_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPlanRepository(db)

	scheduled := time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC)
	plan := &models.DailyPlan{
		Date: "2025-03-10",
		Slots: []models.Slot{{
			ID:          "slot-1",
			AccountID:   1,
			Platform:    "tiktok",
			ScheduledAt: scheduled,
			CreatorTime: "5:00 AM",
			LocalTime:   "10:00 PM",
			Status:      models.SlotStatusPending,
		}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO daily_plans`)).
		WithArgs(plan.Date, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM plan_slots WHERE plan_date = $1`)).
		WithArgs(plan.Date).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO plan_slots`)).
		WithArgs("slot-1", plan.Date, 0, int64(1), "tiktok", scheduled, "5:00 AM", "10:00 PM", models.SlotStatusPending, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), plan))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepository_UpdateSlotStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPlanRepository(db)
	logID := "log-1"

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE plan_slots`)).
		WithArgs(models.SlotStatusPosted, logID, "slot-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateSlotStatus(context.Background(), nil, "slot-1", models.SlotStatusPosted, &logID)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
