package attendance

import (
	"context"
	"time"
)

// Repository defines data access for daily attendance records. The store
// enforces at most one record per (employee_id, date); Upsert inserts a new
// day record or replaces the existing one atomically, so two concurrent
// first scans of the same day cannot create duplicates.
type Repository interface {
	// Find retrieves the record for an employee's working day.
	Find(ctx context.Context, employeeID string, date time.Time) (DailyRecord, error)

	// Upsert inserts or replaces the (employee_id, date) record and returns
	// the stored row.
	Upsert(ctx context.Context, rec DailyRecord) (DailyRecord, error)

	GetByID(ctx context.Context, id string) (DailyRecord, error)
	List(ctx context.Context, filter ListFilter) ([]DailyRecord, int64, error)

	// ListByEmployeeRange returns an employee's records with date inside
	// [from, to], ordered by date. Used by the DTR export.
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]DailyRecord, error)

	// Delete removes a record; only explicit admin clears reach this.
	Delete(ctx context.Context, id string) error
}
