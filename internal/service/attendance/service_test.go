package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgu-hris/hris-backend-go/internal/domain/attendance"
	"github.com/lgu-hris/hris-backend-go/internal/domain/department"
	"github.com/lgu-hris/hris-backend-go/internal/domain/employee"
	"github.com/lgu-hris/hris-backend-go/internal/domain/leave"
	"github.com/lgu-hris/hris-backend-go/internal/domain/notification"
	"github.com/lgu-hris/hris-backend-go/internal/domain/onduty"
	"github.com/lgu-hris/hris-backend-go/internal/domain/user"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/qr"
)

// ---- fakes ----

type fakeAttendanceRepo struct {
	records map[string]attendance.DailyRecord
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[string]attendance.DailyRecord{}}
}

func (f *fakeAttendanceRepo) Find(_ context.Context, employeeID string, date time.Time) (attendance.DailyRecord, error) {
	rec, ok := f.records[attendance.RecordKey(employeeID, date)]
	if !ok {
		return attendance.DailyRecord{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, rec attendance.DailyRecord) (attendance.DailyRecord, error) {
	if existing, ok := f.records[rec.Key()]; ok {
		rec.ID = existing.ID
	}
	f.records[rec.Key()] = rec
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.DailyRecord, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return attendance.DailyRecord{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.ListFilter) ([]attendance.DailyRecord, int64, error) {
	out := make([]attendance.DailyRecord, 0, len(f.records))
	for _, rec := range f.records {
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) ListByEmployeeRange(_ context.Context, employeeID string, from, to time.Time) ([]attendance.DailyRecord, error) {
	var out []attendance.DailyRecord
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	for key, rec := range f.records {
		if rec.ID == id {
			delete(f.records, key)
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmployeeNumber(_ context.Context, number string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.EmployeeNumber == number {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ employee.ListFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) ListByDepartment(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, emp employee.Employee) error {
	f.employees[emp.ID] = emp
	return nil
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	delete(f.employees, id)
	return nil
}

type fakeDepartmentRepo struct {
	departments map[string]department.Department
}

func (f *fakeDepartmentRepo) Create(_ context.Context, dept department.Department) (department.Department, error) {
	f.departments[dept.Name] = dept
	return dept, nil
}

func (f *fakeDepartmentRepo) GetByID(_ context.Context, id string) (department.Department, error) {
	for _, dept := range f.departments {
		if dept.ID == id {
			return dept, nil
		}
	}
	return department.Department{}, department.ErrDepartmentNotFound
}

func (f *fakeDepartmentRepo) GetByName(_ context.Context, name string) (department.Department, error) {
	dept, ok := f.departments[name]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return dept, nil
}

func (f *fakeDepartmentRepo) List(_ context.Context) ([]department.Department, error) {
	return nil, nil
}

func (f *fakeDepartmentRepo) Update(_ context.Context, dept department.Department) error {
	f.departments[dept.Name] = dept
	return nil
}

func (f *fakeDepartmentRepo) Delete(_ context.Context, _ string) error {
	return nil
}

type fakeLeaveRepo struct {
	leaves []leave.LeaveRecord
}

func (f *fakeLeaveRepo) Create(_ context.Context, rec leave.LeaveRecord) (leave.LeaveRecord, error) {
	f.leaves = append(f.leaves, rec)
	return rec, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, _ string) (leave.LeaveRecord, error) {
	return leave.LeaveRecord{}, leave.ErrLeaveNotFound
}

func (f *fakeLeaveRepo) ListByEmployee(_ context.Context, _ string) ([]leave.LeaveRecord, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) List(_ context.Context, _ leave.ListFilter) ([]leave.LeaveRecord, int64, error) {
	return nil, 0, nil
}

func (f *fakeLeaveRepo) Update(_ context.Context, _ leave.LeaveRecord) error { return nil }

func (f *fakeLeaveRepo) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeLeaveRepo) FindActiveOverlap(_ context.Context, employeeID string, day time.Time) (*leave.LeaveRecord, error) {
	for i := range f.leaves {
		rec := f.leaves[i]
		if rec.EmployeeID == employeeID && rec.Status == leave.LeaveStatusApproved &&
			!day.Before(rec.StartDate) && !day.After(rec.EndDate) {
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeLeaveRepo) HasIntervalOverlap(_ context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error) {
	for _, rec := range f.leaves {
		if rec.EmployeeID != employeeID || rec.Status == leave.LeaveStatusRejected {
			continue
		}
		if excludeID != nil && rec.ID == *excludeID {
			continue
		}
		if !rec.StartDate.After(end) && !rec.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

type fakeOnDutyRepo struct {
	assignments []onduty.Assignment
}

func (f *fakeOnDutyRepo) Create(_ context.Context, a onduty.Assignment) (onduty.Assignment, error) {
	f.assignments = append(f.assignments, a)
	return a, nil
}

func (f *fakeOnDutyRepo) GetByID(_ context.Context, _ string) (onduty.Assignment, error) {
	return onduty.Assignment{}, onduty.ErrAssignmentNotFound
}

func (f *fakeOnDutyRepo) FindByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*onduty.Assignment, error) {
	for i := range f.assignments {
		a := f.assignments[i]
		if a.EmployeeID == employeeID && a.Date.Equal(date) {
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeOnDutyRepo) ListPending(_ context.Context, _ time.Time) ([]onduty.Assignment, error) {
	return nil, nil
}

func (f *fakeOnDutyRepo) MarkMaterialized(_ context.Context, _ string) error { return nil }

func (f *fakeOnDutyRepo) ListByDateRange(_ context.Context, _, _ time.Time) ([]onduty.Assignment, error) {
	return nil, nil
}

func (f *fakeOnDutyRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmployeeID(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListByRoles(_ context.Context, roles []user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		for _, role := range roles {
			if u.Role == role && u.IsActive {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, _ user.User) error { return nil }

type fakeNotifier struct {
	published  []notification.CreateNotificationRequest
	recipients [][]string
}

func (f *fakeNotifier) Publish(_ context.Context, req notification.CreateNotificationRequest) error {
	f.published = append(f.published, req)
	f.recipients = append(f.recipients, []string{req.RecipientID})
	return nil
}

func (f *fakeNotifier) PublishToMany(_ context.Context, recipientIDs []string, req notification.CreateNotificationRequest) error {
	f.published = append(f.published, req)
	f.recipients = append(f.recipients, recipientIDs)
	return nil
}

func (f *fakeNotifier) GetNotifications(_ context.Context, _ string, _, _ int, _ bool) (*notification.NotificationListResponse, error) {
	return &notification.NotificationListResponse{}, nil
}

func (f *fakeNotifier) MarkAsRead(_ context.Context, _ string, _ []string) error { return nil }

func (f *fakeNotifier) MarkAllAsRead(_ context.Context, _ string) error { return nil }

func (f *fakeNotifier) Stop() {}

// ---- fixture ----

const (
	testEmployeeID = "emp-001"
	testDepartment = "City Engineering Office"

	officeLat = 14.5995
	officeLon = 120.9842
)

type fixture struct {
	svc            *AttendanceServiceImpl
	attendanceRepo *fakeAttendanceRepo
	leaveRepo      *fakeLeaveRepo
	onDutyRepo     *fakeOnDutyRepo
	userRepo       *fakeUserRepo
	notifier       *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	lat, lon := officeLat, officeLon
	f := &fixture{
		attendanceRepo: newFakeAttendanceRepo(),
		leaveRepo:      &fakeLeaveRepo{},
		onDutyRepo:     &fakeOnDutyRepo{},
		userRepo:       &fakeUserRepo{},
		notifier:       &fakeNotifier{},
	}

	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		testEmployeeID: {
			ID:             testEmployeeID,
			EmployeeNumber: "2023-0001",
			FullName:       "Juan Dela Cruz",
			Department:     testDepartment,
		},
	}}
	departmentRepo := &fakeDepartmentRepo{departments: map[string]department.Department{
		testDepartment: {
			ID:        "dept-001",
			Name:      testDepartment,
			Latitude:  &lat,
			Longitude: &lon,
		},
		"City Health Office": {
			ID:   "dept-002",
			Name: "City Health Office",
		},
	}}

	svc := NewAttendanceService(
		f.attendanceRepo,
		employeeRepo,
		departmentRepo,
		f.leaveRepo,
		f.onDutyRepo,
		f.userRepo,
		f.notifier,
		200,
		time.UTC,
	)
	f.svc = svc.(*AttendanceServiceImpl)
	return f
}

// at pins the service clock to a wall-clock instant on a fixed Monday.
func (f *fixture) at(hour, min int) {
	f.atDay(6, hour, min)
}

func (f *fixture) atDay(day, hour, min int) {
	t := time.Date(2023, 11, day, hour, min, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return t }
}

func authedContext(t *testing.T, employeeID string) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":     "user-001",
		"employee_id": employeeID,
		"role":        "employee",
		"type":        "access",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func departmentScanRequest(t *testing.T, name string) attendance.ScanRequest {
	t.Helper()

	payload, err := qr.EncodeDepartmentScan(name)
	require.NoError(t, err)
	return attendance.ScanRequest{Payload: payload}
}

func scanErr(t *testing.T, err error) *attendance.ScanError {
	t.Helper()

	se, ok := attendance.AsScanError(err)
	require.True(t, ok, "expected *ScanError, got %v", err)
	return se
}

// ---- tests ----

func TestRecordScan_FirstScanSetsTimeIn(t *testing.T) {
	f := newFixture(t)
	f.at(7, 30)
	ctx := authedContext(t, testEmployeeID)

	result, err := f.svc.RecordScan(ctx, departmentScanRequest(t, testDepartment))
	require.NoError(t, err)

	assert.Equal(t, string(attendance.PunchTimeIn), result.Punch)
	assert.False(t, result.OutOfRange)
	assert.Contains(t, result.Message, "Time In recorded successfully")

	rec, err := f.attendanceRepo.Find(ctx, testEmployeeID, time.Date(2023, 11, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, rec.TimeIn)
	assert.Nil(t, rec.BreakOut)
	assert.Nil(t, rec.BreakIn)
	assert.Nil(t, rec.TimeOut)
}

func TestRecordScan_ImmediateRescanBlockedByBreakOutWindow(t *testing.T) {
	f := newFixture(t)
	f.at(7, 30)
	ctx := authedContext(t, testEmployeeID)

	_, err := f.svc.RecordScan(ctx, departmentScanRequest(t, testDepartment))
	require.NoError(t, err)

	f.at(7, 45)
	_, err = f.svc.RecordScan(ctx, departmentScanRequest(t, testDepartment))
	se := scanErr(t, err)
	assert.Equal(t, attendance.ScanOutsideAllowedWindow, se.Kind)
	assert.Equal(t, attendance.PunchBreakOut, se.Punch)
}

func TestRecordScan_FullStandardDay(t *testing.T) {
	f := newFixture(t)
	ctx := authedContext(t, testEmployeeID)

	steps := []struct {
		hour, min int
		punch     attendance.Punch
	}{
		{7, 30, attendance.PunchTimeIn},
		{12, 10, attendance.PunchBreakOut},
		{12, 45, attendance.PunchBreakIn},
		{17, 5, attendance.PunchTimeOut},
	}
	for _, step := range steps {
		f.at(step.hour, step.min)
		result, err := f.svc.RecordScan(ctx, departmentScanRequest(t, testDepartment))
		require.NoError(t, err)
		assert.Equal(t, string(step.punch), result.Punch)
	}

	f.at(17, 30)
	_, err := f.svc.RecordScan(ctx, departmentScanRequest(t, testDepartment))
	se := scanErr(t, err)
	assert.Equal(t, attendance.ScanAlreadyComplete, se.Kind)
}

func TestRecordScan_WindowBoundariesInclusive(t *testing.T) {
	f := newFixture(t)
	ctx := authedContext(t, testEmployeeID)

	f.at(5, 59)
	_, err := f.svc.RecordScan(ctx, departmentScanRequest(t, testDepartment))
	se := scanErr(t, err)
	assert.Equal(t, attendance.ScanOutsideAllowedWindow, se.Kind)

	f.at(6, 0)
	result, err := f.svc.RecordScan(ctx, departmentScanRequest(t, testDepartment))
	require.NoError(t, err)
	assert.Equal(t, string(attendance.PunchTimeIn), result.Punch)
}

func TestRecordScan_DepartmentMismatch(t *testing.T) {
	f := newFixture(t)
	f.at(7, 30)
	ctx := authedContext(t, testEmployeeID)

	_, err := f.svc.RecordScan(ctx, departmentScanRequest(t, "City Health Office"))
	se := scanErr(t, err)
	assert.Equal(t, attendance.ScanDepartmentMismatch, se.Kind)
	assert.Equal(t, testDepartment, se.EmployeeDepartment)
	assert.Equal(t, "City Health Office", se.ScannedDepartment)

	assert.Empty(t, f.attendanceRepo.records)
}

func TestRecordScan_UnknownDepartment(t *testing.T) {
	f := newFixture(t)
	f.at(7, 30)
	ctx := authedContext(t, testEmployeeID)

	_, err := f.svc.RecordScan(ctx, departmentScanRequest(t, "Office of Nothing"))
	se := scanErr(t, err)
	assert.Equal(t, attendance.ScanUnknownDepartment, se.Kind)
}

func TestRecordScan_UnknownEmployee(t *testing.T) {
	f := newFixture(t)
	f.at(7, 30)
	ctx := authedContext(t, "emp-ghost")

	_, err := f.svc.RecordScan(ctx, departmentScanRequest(t, testDepartment))
	se := scanErr(t, err)
	assert.Equal(t, attendance.ScanUnknownEmployee, se.Kind)
}

func TestRecordScan_RejectsIdentityPayload(t *testing.T) {
	f := newFixture(t)
	f.at(7, 30)
	ctx := authedContext(t, testEmployeeID)

	payload, err := qr.EncodeEmployeeIdentity(testEmployeeID, "Juan Dela Cruz", testDepartment)
	require.NoError(t, err)

	_, err = f.svc.RecordScan(ctx, attendance.ScanRequest{Payload: payload})
	se := scanErr(t, err)
	assert.Equal(t, attendance.ScanInvalidPayload, se.Kind)
}

func TestRecordScan_RejectsGarbagePayload(t *testing.T) {
	f := newFixture(t)
	f.at(7, 30)
	ctx := authedContext(t, testEmployeeID)

	_, err := f.svc.RecordScan(ctx, attendance.ScanRequest{Payload: []byte("not json")})
	se := scanErr(t, err)
	assert.Equal(t, attendance.ScanInvalidPayload, se.Kind)
}

func TestRecordScan_BlockedOnApprovedLeave(t *testing.T) {
	f := newFixture(t)
	f.at(7, 30)
	ctx := authedContext(t, testEmployeeID)

	f.leaveRepo.leaves = append(f.leaveRepo.leaves, leave.LeaveRecord{
		ID:         "leave-001",
		EmployeeID: testEmployeeID,
		Type:       leave.LeaveTypeSick,
		Status:     leave.LeaveStatusApproved,
		StartDate:  time.Date(2023, 11, 5, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2023, 11, 7, 0, 0, 0, 0, time.UTC),
	})

	_, err := f.svc.RecordScan(ctx, departmentScanRequest(t, testDepartment))
	se := scanErr(t, err)
	assert.Equal(t, attendance.ScanOnApprovedLeave, se.Kind)
	assert.Equal(t, "sick", se.LeaveType)
	assert.Empty(t, f.attendanceRepo.records)
}

func TestRecordScan_PendingLeaveDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.at(7, 30)
	ctx := authedContext(t, testEmployeeID)

	f.leaveRepo.leaves = append(f.leaveRepo.leaves, leave.LeaveRecord{
		ID:         "leave-001",
		EmployeeID: testEmployeeID,
		Type:       leave.LeaveTypeVacation,
		Status:     leave.LeaveStatusPending,
		StartDate:  time.Date(2023, 11, 5, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2023, 11, 7, 0, 0, 0, 0, time.UTC),
	})

	_, err := f.svc.RecordScan(ctx, departmentScanRequest(t, testDepartment))
	require.NoError(t, err)
}

func TestRecordScan_OutOfRangeFlagsAndNotifies(t *testing.T) {
	f := newFixture(t)
	f.at(7, 30)
	ctx := authedContext(t, testEmployeeID)

	f.userRepo.users = []user.User{
		{ID: "admin-1", Role: user.RoleAdmin, IsActive: true},
		{ID: "it-1", Role: user.RoleIT, IsActive: true},
		{ID: "head-1", Role: user.RoleHead, IsActive: true},
	}

	// Roughly 1.5km north of the office.
	lat := officeLat + 0.0135
	lon := officeLon
	req := departmentScanRequest(t, testDepartment)
	req.Latitude = &lat
	req.Longitude = &lon

	result, err := f.svc.RecordScan(ctx, req)
	require.NoError(t, err)
	assert.True(t, result.OutOfRange)
	assert.Contains(t, result.Message, "outside the department geofence")

	require.Len(t, f.notifier.published, 1)
	assert.Equal(t, notification.TypeOutOfRangeScan, f.notifier.published[0].Type)
	assert.ElementsMatch(t, []string{"admin-1", "it-1"}, f.notifier.recipients[0])

	rec, err := f.attendanceRepo.Find(ctx, testEmployeeID, time.Date(2023, 11, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, rec.IsOutOfRange)
	require.NotNil(t, rec.TimeIn)
}

func TestRecordScan_InRangeDoesNotNotify(t *testing.T) {
	f := newFixture(t)
	f.at(7, 30)
	ctx := authedContext(t, testEmployeeID)

	lat, lon := officeLat, officeLon
	req := departmentScanRequest(t, testDepartment)
	req.Latitude = &lat
	req.Longitude = &lon

	result, err := f.svc.RecordScan(ctx, req)
	require.NoError(t, err)
	assert.False(t, result.OutOfRange)
	assert.Empty(t, f.notifier.published)
}

func TestRecordScan_MissingPositionDegradesToAdvisory(t *testing.T) {
	f := newFixture(t)
	f.at(7, 30)
	ctx := authedContext(t, testEmployeeID)

	result, err := f.svc.RecordScan(ctx, departmentScanRequest(t, testDepartment))
	require.NoError(t, err)
	assert.False(t, result.OutOfRange)
	assert.Contains(t, result.Message, "location unavailable")
	assert.Empty(t, f.notifier.published)
}

func TestRecordScan_OnDutyTwoPunchTrack(t *testing.T) {
	f := newFixture(t)
	ctx := authedContext(t, testEmployeeID)

	// Saturday assignment; the cron job has not materialized it yet.
	saturday := time.Date(2023, 11, 11, 0, 0, 0, 0, time.UTC)
	f.onDutyRepo.assignments = append(f.onDutyRepo.assignments, onduty.Assignment{
		ID:         "od-001",
		EmployeeID: testEmployeeID,
		Date:       saturday,
	})

	f.atDay(11, 9, 0)
	result, err := f.svc.RecordScan(ctx, departmentScanRequest(t, testDepartment))
	require.NoError(t, err)
	assert.Equal(t, string(attendance.PunchTimeIn), result.Punch)

	f.atDay(11, 15, 0)
	result, err = f.svc.RecordScan(ctx, departmentScanRequest(t, testDepartment))
	require.NoError(t, err)
	assert.Equal(t, string(attendance.PunchTimeOut), result.Punch)

	f.atDay(11, 16, 0)
	_, err = f.svc.RecordScan(ctx, departmentScanRequest(t, testDepartment))
	se := scanErr(t, err)
	assert.Equal(t, attendance.ScanAlreadyComplete, se.Kind)

	rec, err := f.attendanceRepo.Find(ctx, testEmployeeID, saturday)
	require.NoError(t, err)
	assert.True(t, rec.OnDuty)
	assert.Nil(t, rec.BreakOut)
	assert.Nil(t, rec.BreakIn)
}

func TestRecordScan_MissingClaims(t *testing.T) {
	f := newFixture(t)
	f.at(7, 30)

	_, err := f.svc.RecordScan(context.Background(), departmentScanRequest(t, testDepartment))
	require.Error(t, err)
}

func TestRecordScan_InvalidCoordinatesRejected(t *testing.T) {
	f := newFixture(t)
	f.at(7, 30)
	ctx := authedContext(t, testEmployeeID)

	lat := 95.0
	lon := officeLon
	req := departmentScanRequest(t, testDepartment)
	req.Latitude = &lat
	req.Longitude = &lon

	_, err := f.svc.RecordScan(ctx, req)
	require.Error(t, err)
	assert.Empty(t, f.attendanceRepo.records)
}

func TestUpdateRecord_SetsAndClearsPunches(t *testing.T) {
	f := newFixture(t)
	ctx := authedContext(t, testEmployeeID)

	date := time.Date(2023, 11, 6, 0, 0, 0, 0, time.UTC)
	breakOut := time.Date(2023, 11, 6, 12, 5, 0, 0, time.UTC)
	seeded, err := f.attendanceRepo.Upsert(ctx, attendance.DailyRecord{
		ID:         "rec-001",
		EmployeeID: testEmployeeID,
		Date:       date,
		BreakOut:   &breakOut,
	})
	require.NoError(t, err)

	timeIn := "07:45:00"
	result, err := f.svc.UpdateRecord(ctx, attendance.UpdateRecordRequest{
		ID:     seeded.ID,
		TimeIn: &timeIn,
		Clear:  []string{"break_out"},
	})
	require.NoError(t, err)

	require.NotNil(t, result.TimeIn)
	assert.Equal(t, "2023-11-06 07:45:00", *result.TimeIn)
	assert.Nil(t, result.BreakOut)
}

func TestUpdateRecord_UnknownPunchName(t *testing.T) {
	f := newFixture(t)
	ctx := authedContext(t, testEmployeeID)

	seeded, err := f.attendanceRepo.Upsert(ctx, attendance.DailyRecord{
		ID:         "rec-001",
		EmployeeID: testEmployeeID,
		Date:       time.Date(2023, 11, 6, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateRecord(ctx, attendance.UpdateRecordRequest{
		ID:    seeded.ID,
		Clear: []string{"lunch"},
	})
	require.Error(t, err)
}

func TestGetMyRecords_ScopedToClaimedEmployee(t *testing.T) {
	f := newFixture(t)
	ctx := authedContext(t, testEmployeeID)

	_, err := f.attendanceRepo.Upsert(ctx, attendance.DailyRecord{
		ID:         "rec-001",
		EmployeeID: testEmployeeID,
		Date:       time.Date(2023, 11, 6, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	result, err := f.svc.GetMyRecords(ctx, attendance.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalCount)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.Limit)
}
