package onduty

import (
	"context"
	"time"
)

// Repository defines data access for on-duty assignments.
type Repository interface {
	Create(ctx context.Context, a Assignment) (Assignment, error)
	GetByID(ctx context.Context, id string) (Assignment, error)

	// FindByEmployeeAndDate returns the assignment for an employee's working
	// day, if any. The attendance recorder uses this when no record exists
	// yet for the day.
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Assignment, error)

	// ListPending returns unmaterialized assignments with date <= the given
	// day; the cron job turns them into pre-created attendance records.
	ListPending(ctx context.Context, upTo time.Time) ([]Assignment, error)

	MarkMaterialized(ctx context.Context, id string) error
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Assignment, error)
	Delete(ctx context.Context, id string) error
}
