package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/lgu-hris/hris-backend-go/internal/domain/onduty"
)

// OnDutyJobs wires the on-duty materializer into the scheduler.
type OnDutyJobs struct {
	onDutyService onduty.Service
}

func NewOnDutyJobs(onDutyService onduty.Service) *OnDutyJobs {
	return &OnDutyJobs{onDutyService: onDutyService}
}

func (j *OnDutyJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("materialize_on_duty_assignments", 15*time.Minute, j.MaterializeAssignments)
}

// MaterializeAssignments pre-creates attendance records for due on-duty
// assignments so weekend scans skip the standard punch windows. The recorder
// also resolves assignments lazily, so a missed run only delays the flag,
// never loses it.
func (j *OnDutyJobs) MaterializeAssignments(ctx context.Context) error {
	slog.Info("Cron: Materializing on-duty assignments")
	return j.onDutyService.Materialize(ctx)
}
