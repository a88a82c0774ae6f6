package leave

import (
	"context"
	"time"
)

// Repository defines data access for leave applications.
type Repository interface {
	Create(ctx context.Context, rec LeaveRecord) (LeaveRecord, error)
	GetByID(ctx context.Context, id string) (LeaveRecord, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRecord, error)
	List(ctx context.Context, filter ListFilter) ([]LeaveRecord, int64, error)
	Update(ctx context.Context, rec LeaveRecord) error
	Delete(ctx context.Context, id string) error

	// FindActiveOverlap returns the employee's approved leave covering the
	// given day, if any. Serves the attendance recorder's leave exclusion.
	FindActiveOverlap(ctx context.Context, employeeID string, day time.Time) (*LeaveRecord, error)

	// HasIntervalOverlap reports whether any non-rejected leave of the
	// employee, other than excludeID, intersects the inclusive interval.
	HasIntervalOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error)
}

type ListFilter struct {
	EmployeeID *string
	Status     *string
	Page       int
	Limit      int
}
