package onduty

import "time"

// Assignment schedules an employee for special duty on a non-working day
// (weekend or holiday). The materializer pre-creates the day's attendance
// record with the on-duty flag, which relaxes punch rules to Time In and
// Time Out with no window gating.
type Assignment struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	Reason       string
	ScheduledBy  string
	Materialized bool
	CreatedAt    time.Time
}
