package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgu-hris/hris-backend-go/internal/domain/attendance"
	"github.com/lgu-hris/hris-backend-go/internal/domain/employee"
)

type fakeAttendanceRepo struct {
	records []attendance.DailyRecord
}

func (f *fakeAttendanceRepo) Find(_ context.Context, _ string, _ time.Time) (attendance.DailyRecord, error) {
	return attendance.DailyRecord{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, rec attendance.DailyRecord) (attendance.DailyRecord, error) {
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, _ string) (attendance.DailyRecord, error) {
	return attendance.DailyRecord{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.ListFilter) ([]attendance.DailyRecord, int64, error) {
	return nil, 0, nil
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

func (f *fakeAttendanceRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmployeeNumber(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ employee.ListFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) ListByDepartment(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, _ employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) Delete(_ context.Context, _ string) error { return nil }

func punchAt(year int, month time.Month, day, hour, min int) *time.Time {
	t := time.Date(year, month, day, hour, min, 0, 0, time.UTC)
	return &t
}

func newReportFixture() (Service, *fakeAttendanceRepo) {
	attendanceRepo := &fakeAttendanceRepo{}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-001": {
			ID:             "emp-001",
			EmployeeNumber: "2023-0001",
			FullName:       "Juan Dela Cruz",
			Department:     "City Engineering Office",
		},
	}}
	return NewReportService(attendanceRepo, employeeRepo), attendanceRepo
}

func TestMonthlyDTRCSV_OneRowPerCalendarDay(t *testing.T) {
	svc, repo := newReportFixture()

	repo.records = []attendance.DailyRecord{
		{
			ID:         "rec-1",
			EmployeeID: "emp-001",
			Date:       time.Date(2023, time.November, 6, 0, 0, 0, 0, time.UTC),
			TimeIn:     punchAt(2023, time.November, 6, 7, 30),
			BreakOut:   punchAt(2023, time.November, 6, 12, 10),
			BreakIn:    punchAt(2023, time.November, 6, 12, 45),
			TimeOut:    punchAt(2023, time.November, 6, 17, 5),
		},
		{
			ID:           "rec-2",
			EmployeeID:   "emp-001",
			Date:         time.Date(2023, time.November, 7, 0, 0, 0, 0, time.UTC),
			TimeIn:       punchAt(2023, time.November, 7, 7, 55),
			IsOutOfRange: true,
		},
		{
			ID:         "rec-3",
			EmployeeID: "emp-001",
			Date:       time.Date(2023, time.November, 11, 0, 0, 0, 0, time.UTC),
			TimeIn:     punchAt(2023, time.November, 11, 9, 0),
			TimeOut:    punchAt(2023, time.November, 11, 15, 0),
			OnDuty:     true,
		},
	}

	data, err := svc.MonthlyDTRCSV(context.Background(), "emp-001", 2023, time.November)
	require.NoError(t, err)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	require.NoError(t, err)

	// 4 meta rows and the header survive the read (the blank separator line
	// is dropped by the reader), then 30 day rows for November.
	require.Len(t, rows, 5+30)
	assert.Equal(t, []string{"employee", "Juan Dela Cruz"}, rows[0])
	assert.Equal(t, []string{"period", "2023-11"}, rows[3])

	day6 := rows[5+5]
	assert.Equal(t, []string{"6", "Mon", "07:30", "12:10", "12:45", "17:05", ""}, day6)

	day7 := rows[5+6]
	assert.Equal(t, "out of range", day7[6])

	day11 := rows[5+10]
	assert.Equal(t, []string{"11", "Sat", "09:00", "", "", "15:00", "on duty"}, day11)

	// A day with no record renders empty punches.
	day1 := rows[5]
	assert.Equal(t, []string{"1", "Wed", "", "", "", "", ""}, day1)
}

func TestMonthlyDTRCSV_UnknownEmployee(t *testing.T) {
	svc, _ := newReportFixture()

	_, err := svc.MonthlyDTRCSV(context.Background(), "emp-ghost", 2023, time.November)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestMonthlyDTRXLSX_ProducesWorkbook(t *testing.T) {
	svc, repo := newReportFixture()

	repo.records = []attendance.DailyRecord{
		{
			ID:         "rec-1",
			EmployeeID: "emp-001",
			Date:       time.Date(2023, time.November, 6, 0, 0, 0, 0, time.UTC),
			TimeIn:     punchAt(2023, time.November, 6, 7, 30),
		},
	}

	data, err := svc.MonthlyDTRXLSX(context.Background(), "emp-001", 2023, time.November)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// XLSX files are zip archives.
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}
