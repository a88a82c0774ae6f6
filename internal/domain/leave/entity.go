package leave

import "time"

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// LeaveType mirrors the leave kinds on Civil Service Form No. 6.
type LeaveType string

const (
	LeaveTypeVacation  LeaveType = "vacation"
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypeMaternity LeaveType = "maternity"
	LeaveTypePaternity LeaveType = "paternity"
	LeaveTypeSpecial   LeaveType = "special_privilege"
	LeaveTypeStudy     LeaveType = "study"
)

// LeaveRecord is a filed leave application. StartDate and EndDate are
// inclusive calendar dates. No two non-rejected records of one employee may
// overlap; an approved record covering today suppresses attendance scanning
// for that employee.
type LeaveRecord struct {
	ID         string
	EmployeeID string
	Type       LeaveType
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     LeaveStatus

	DecidedBy       *string
	DecidedAt       *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// Covers reports whether the inclusive leave interval contains the day.
func (l *LeaveRecord) Covers(day time.Time) bool {
	d := day.Truncate(24 * time.Hour)
	return !d.Before(l.StartDate.Truncate(24*time.Hour)) &&
		!d.After(l.EndDate.Truncate(24*time.Hour))
}

// Overlaps reports inclusive interval intersection with [start, end].
func (l *LeaveRecord) Overlaps(start, end time.Time) bool {
	return !start.After(l.EndDate) && !end.Before(l.StartDate)
}
