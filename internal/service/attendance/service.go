package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lgu-hris/hris-backend-go/internal/domain/attendance"
	"github.com/lgu-hris/hris-backend-go/internal/domain/department"
	"github.com/lgu-hris/hris-backend-go/internal/domain/employee"
	"github.com/lgu-hris/hris-backend-go/internal/domain/leave"
	"github.com/lgu-hris/hris-backend-go/internal/domain/notification"
	"github.com/lgu-hris/hris-backend-go/internal/domain/onduty"
	"github.com/lgu-hris/hris-backend-go/internal/domain/user"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/geo"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/qr"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	departmentRepo department.Repository
	leaveRepo      leave.Repository
	onDutyRepo     onduty.Repository
	userRepo       user.Repository
	notifier       notification.Service

	geofenceRadius float64
	loc            *time.Location

	// now is swapped out by tests to pin the wall clock.
	now func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	departmentRepo department.Repository,
	leaveRepo leave.Repository,
	onDutyRepo onduty.Repository,
	userRepo user.Repository,
	notifier notification.Service,
	geofenceRadiusMeters float64,
	loc *time.Location,
) attendance.Service {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		leaveRepo:      leaveRepo,
		onDutyRepo:     onDutyRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		geofenceRadius: geofenceRadiusMeters,
		loc:            loc,
		now:            time.Now,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func employeeIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return employeeID, nil
}

// RecordScan implements attendance.Service.
//
// The validation sequence short-circuits with a distinct *ScanError per
// step; nothing is written until every check has passed.
func (a *AttendanceServiceImpl) RecordScan(ctx context.Context, req attendance.ScanRequest) (attendance.ScanResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.ScanResult{}, err
	}

	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.ScanResult{}, err
	}

	nowLocal := a.now().In(a.loc)
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, time.UTC)

	// Payload resolution. Only a department scan payload punches a clock; an
	// identity payload here means the wrong QR code was pointed at the camera.
	payload, err := qr.Decode(req.Payload)
	if err != nil || payload.DepartmentScan == nil {
		return attendance.ScanResult{}, attendance.NewScanError(attendance.ScanInvalidPayload)
	}
	scannedDept := payload.DepartmentScan.Department

	// Identity resolution.
	emp, err := a.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) || errors.Is(err, pgx.ErrNoRows) {
			return attendance.ScanResult{}, attendance.NewScanError(attendance.ScanUnknownEmployee)
		}
		return attendance.ScanResult{}, fmt.Errorf("failed to get employee: %w", err)
	}

	dept, err := a.departmentRepo.GetByName(ctx, scannedDept)
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) || errors.Is(err, pgx.ErrNoRows) {
			return attendance.ScanResult{}, &attendance.ScanError{
				Kind:              attendance.ScanUnknownDepartment,
				ScannedDepartment: scannedDept,
			}
		}
		return attendance.ScanResult{}, fmt.Errorf("failed to get department: %w", err)
	}

	// An employee may only punch their own department's code.
	if emp.Department != dept.Name {
		return attendance.ScanResult{}, &attendance.ScanError{
			Kind:               attendance.ScanDepartmentMismatch,
			EmployeeDepartment: emp.Department,
			ScannedDepartment:  dept.Name,
		}
	}

	// Leave exclusion: an approved leave covering today suppresses scanning
	// before any record is touched.
	activeLeave, err := a.leaveRepo.FindActiveOverlap(ctx, emp.ID, today)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return attendance.ScanResult{}, fmt.Errorf("failed to check active leave: %w", err)
	}
	if activeLeave != nil {
		return attendance.ScanResult{}, &attendance.ScanError{
			Kind:      attendance.ScanOnApprovedLeave,
			LeaveType: string(activeLeave.Type),
		}
	}

	// Geofence evaluation. Out of range flags the punch and alerts elevated
	// roles; it never blocks. A missing fix degrades to an advisory.
	outOfRange := false
	advisory := ""
	if req.HasPosition() && dept.HasLocation() {
		distance := geo.HaversineMeters(*req.Latitude, *req.Longitude, *dept.Latitude, *dept.Longitude)
		if distance > a.geofenceRadius {
			outOfRange = true
			advisory = " (recorded outside the department geofence)"
			a.notifyOutOfRange(ctx, emp, dept.Name, distance)
		}
	} else if !req.HasPosition() {
		advisory = " (location unavailable, geofence not checked)"
	}

	// Record lookup/creation. An on-duty assignment pre-creates the record
	// via cron; if the job has not run yet the assignment is resolved here.
	rec, err := a.attendanceRepo.Find(ctx, emp.ID, today)
	if err != nil {
		if !errors.Is(err, attendance.ErrRecordNotFound) && !errors.Is(err, pgx.ErrNoRows) {
			return attendance.ScanResult{}, fmt.Errorf("failed to find daily record: %w", err)
		}

		rec = attendance.DailyRecord{
			ID:         uuid.New().String(),
			EmployeeID: emp.ID,
			Date:       today,
		}

		assignment, aerr := a.onDutyRepo.FindByEmployeeAndDate(ctx, emp.ID, today)
		if aerr != nil && !errors.Is(aerr, pgx.ErrNoRows) {
			return attendance.ScanResult{}, fmt.Errorf("failed to check on-duty assignment: %w", aerr)
		}
		if assignment != nil {
			rec.OnDuty = true
		}
	}

	// Punch advancement.
	punch, ok := rec.NextPunch()
	if !ok {
		return attendance.ScanResult{}, attendance.NewScanError(attendance.ScanAlreadyComplete)
	}

	if !rec.OnDuty {
		window, _ := attendance.WindowFor(punch)
		if !window.Contains(nowLocal) {
			return attendance.ScanResult{}, &attendance.ScanError{
				Kind:   attendance.ScanOutsideAllowedWindow,
				Punch:  punch,
				Window: window,
			}
		}
	}

	rec.ApplyPunch(punch, a.now(), req.Latitude, req.Longitude, outOfRange)

	stored, err := a.attendanceRepo.Upsert(ctx, rec)
	if err != nil {
		return attendance.ScanResult{}, attendance.NewStorageScanError(err)
	}

	return attendance.ScanResult{
		Message:    fmt.Sprintf("%s recorded successfully%s", punch.Label(), advisory),
		RecordID:   stored.ID,
		Punch:      string(punch),
		OutOfRange: outOfRange,
	}, nil
}

// notifyOutOfRange alerts every admin and IT account about an off-site scan.
// Notification delivery is best-effort and never fails the scan.
func (a *AttendanceServiceImpl) notifyOutOfRange(ctx context.Context, emp employee.Employee, deptName string, distance float64) {
	recipients, err := a.userRepo.ListByRoles(ctx, user.ElevatedRoles())
	if err != nil || len(recipients) == 0 {
		return
	}

	ids := make([]string, 0, len(recipients))
	for _, u := range recipients {
		ids = append(ids, u.ID)
	}

	rounded := int(math.Round(distance))
	_ = a.notifier.PublishToMany(ctx, ids, notification.CreateNotificationRequest{
		Type:    notification.TypeOutOfRangeScan,
		Title:   "Out-of-range attendance scan",
		Message: fmt.Sprintf("%s scanned the %s code about %dm from the office", emp.FullName, deptName, rounded),
		Data: map[string]interface{}{
			"employee_id":     emp.ID,
			"department":      deptName,
			"distance_meters": rounded,
		},
	})
}

// GetMyRecords implements attendance.Service.
func (a *AttendanceServiceImpl) GetMyRecords(ctx context.Context, filter attendance.ListFilter) (attendance.ListRecordResponse, error) {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.ListRecordResponse{}, err
	}

	filter.EmployeeID = &employeeID
	return a.ListRecords(ctx, filter)
}

// ListRecords implements attendance.Service.
func (a *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.ListFilter) (attendance.ListRecordResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := a.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListRecordResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}

	return attendance.ListRecordResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Records:    responses,
	}, nil
}

// UpdateRecord implements attendance.Service. Admin corrections set or clear
// individual punches; times parse as "15:04:05" on the record's date or as a
// full "2006-01-02 15:04:05" timestamp.
func (a *AttendanceServiceImpl) UpdateRecord(ctx context.Context, req attendance.UpdateRecordRequest) (attendance.RecordResponse, error) {
	rec, err := a.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.RecordResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	edits := map[attendance.Punch]*string{
		attendance.PunchTimeIn:   req.TimeIn,
		attendance.PunchBreakOut: req.BreakOut,
		attendance.PunchBreakIn:  req.BreakIn,
		attendance.PunchTimeOut:  req.TimeOut,
	}
	for punch, value := range edits {
		if value == nil || *value == "" {
			continue
		}
		t, perr := parsePunchTime(rec.Date, *value)
		if perr != nil {
			return attendance.RecordResponse{}, perr
		}
		lat, lon := rec.ScanLatitude, rec.ScanLongitude
		rec.ApplyPunch(punch, t, lat, lon, rec.IsOutOfRange)
	}

	for _, name := range req.Clear {
		switch attendance.Punch(name) {
		case attendance.PunchTimeIn, attendance.PunchBreakOut, attendance.PunchBreakIn, attendance.PunchTimeOut:
			rec.ClearPunch(attendance.Punch(name))
		default:
			return attendance.RecordResponse{}, fmt.Errorf("unknown punch name %q", name)
		}
	}

	stored, err := a.attendanceRepo.Upsert(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapRecordToResponse(stored), nil
}

// ClearRecord implements attendance.Service.
func (a *AttendanceServiceImpl) ClearRecord(ctx context.Context, id string) error {
	if err := a.attendanceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	return nil
}

func parsePunchTime(date time.Time, value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", value); err == nil {
		return t, nil
	}
	t, err := time.Parse("15:04:05", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid punch time %q", value)
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
}

func mapRecordToResponse(rec attendance.DailyRecord) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:            rec.ID,
		EmployeeID:    rec.EmployeeID,
		EmployeeName:  rec.EmployeeName,
		Date:          rec.Date.Format("2006-01-02"),
		TimeIn:        timePtrToString(rec.TimeIn),
		BreakOut:      timePtrToString(rec.BreakOut),
		BreakIn:       timePtrToString(rec.BreakIn),
		TimeOut:       timePtrToString(rec.TimeOut),
		ScanLatitude:  rec.ScanLatitude,
		ScanLongitude: rec.ScanLongitude,
		IsOutOfRange:  rec.IsOutOfRange,
		OnDuty:        rec.OnDuty,
	}
}
