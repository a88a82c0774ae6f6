package onduty

import "context"

// Service defines business logic for special-duty scheduling.
type Service interface {
	Schedule(ctx context.Context, req ScheduleRequest) (AssignmentResponse, error)
	ListByRange(ctx context.Context, from, to string) ([]AssignmentResponse, error)
	Cancel(ctx context.Context, id string) error

	// Materialize pre-creates on-duty attendance records for all pending
	// assignments due today or earlier. Run by the cron scheduler.
	Materialize(ctx context.Context) error
}
