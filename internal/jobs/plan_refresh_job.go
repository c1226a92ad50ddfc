package job

import (
	"context"
	"log/slog"

	"github.com/pattadon/socialshift/internal/service"
)

type PlanRefreshJob struct {
	ps service.PlanService
}

func NewPlanRefreshJob(ps service.PlanService) *PlanRefreshJob {
	return &PlanRefreshJob{ps: ps}
}

// RefreshPlan regenerates today's plan and reconciles it with the stored
// one. Runs every minute so cooldown snapshots and the day rollover never
// drift far from live state.
func (c *PlanRefreshJob) RefreshPlan() {
	ctx := context.Background()

	_, err := c.ps.Refresh(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}
}
