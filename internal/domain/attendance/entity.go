package attendance

import (
	"fmt"
	"time"
)

// Punch identifies one of the four daily time record slots.
type Punch string

const (
	PunchTimeIn   Punch = "time_in"
	PunchBreakOut Punch = "break_out"
	PunchBreakIn  Punch = "break_in"
	PunchTimeOut  Punch = "time_out"
)

// Label returns the punch name as printed on the DTR form.
func (p Punch) Label() string {
	switch p {
	case PunchTimeIn:
		return "Time In"
	case PunchBreakOut:
		return "Break Out"
	case PunchBreakIn:
		return "Break In"
	case PunchTimeOut:
		return "Time Out"
	}
	return string(p)
}

// standardOrder is the strict punch sequence on a regular working day.
var standardOrder = []Punch{PunchTimeIn, PunchBreakOut, PunchBreakIn, PunchTimeOut}

// Window is a wall-clock interval, inclusive on both ends, expressed in
// minutes since local midnight.
type Window struct {
	StartMinute int
	EndMinute   int
}

// Contains reports whether the local time falls inside the window.
func (w Window) Contains(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	return m >= w.StartMinute && m <= w.EndMinute
}

func (w Window) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		w.StartMinute/60, w.StartMinute%60,
		w.EndMinute/60, w.EndMinute%60)
}

// punchWindows gates each standard-track punch to its civil-service DTR
// window. On-duty records bypass these entirely.
var punchWindows = map[Punch]Window{
	PunchTimeIn:   {6 * 60, 8 * 60},
	PunchBreakOut: {12 * 60, 12*60 + 30},
	PunchBreakIn:  {12*60 + 31, 13 * 60},
	PunchTimeOut:  {17 * 60, 23 * 60},
}

// WindowFor returns the allowed window for a standard-track punch.
func WindowFor(p Punch) (Window, bool) {
	w, ok := punchWindows[p]
	return w, ok
}

// DailyRecord is one employee's attendance record for one calendar day.
// There is at most one record per (EmployeeID, Date); Date is the local
// working day at midnight.
type DailyRecord struct {
	ID         string
	EmployeeID string
	Date       time.Time

	TimeIn   *time.Time
	BreakOut *time.Time
	BreakIn  *time.Time
	TimeOut  *time.Time

	// Scan location and range flag belong to the most recent punch only and
	// are overwritten on every scan.
	ScanLatitude  *float64
	ScanLongitude *float64
	IsOutOfRange  bool

	// OnDuty marks a record pre-created for weekend/holiday special duty:
	// two punches (Time In, Time Out), no window gating.
	OnDuty bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// Key returns the record's natural key.
func (r *DailyRecord) Key() string {
	return RecordKey(r.EmployeeID, r.Date)
}

// RecordKey builds the employeeID#date natural key for a working day.
func RecordKey(employeeID string, date time.Time) string {
	return employeeID + "#" + date.Format("2006-01-02")
}

// punchAt returns a pointer to the slot's timestamp field.
func (r *DailyRecord) punchAt(p Punch) **time.Time {
	switch p {
	case PunchTimeIn:
		return &r.TimeIn
	case PunchBreakOut:
		return &r.BreakOut
	case PunchBreakIn:
		return &r.BreakIn
	default:
		return &r.TimeOut
	}
}

// PunchTime returns the recorded timestamp of a slot, if set.
func (r *DailyRecord) PunchTime(p Punch) *time.Time {
	return *r.punchAt(p)
}

// NextPunch returns the next unset punch in sequence. On-duty records only
// walk Time In then Time Out. ok is false once the record is complete.
func (r *DailyRecord) NextPunch() (p Punch, ok bool) {
	order := standardOrder
	if r.OnDuty {
		order = []Punch{PunchTimeIn, PunchTimeOut}
	}
	for _, p := range order {
		if *r.punchAt(p) == nil {
			return p, true
		}
	}
	return "", false
}

// ApplyPunch writes the scan instant onto the slot and attaches the scan
// location and range flag, replacing whatever the previous punch left there.
func (r *DailyRecord) ApplyPunch(p Punch, at time.Time, lat, lon *float64, outOfRange bool) {
	t := at
	*r.punchAt(p) = &t
	r.ScanLatitude = lat
	r.ScanLongitude = lon
	r.IsOutOfRange = outOfRange
}

// ClearPunch unsets a slot; used only by explicit admin edits.
func (r *DailyRecord) ClearPunch(p Punch) {
	*r.punchAt(p) = nil
}
