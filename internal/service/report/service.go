package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/lgu-hris/hris-backend-go/internal/domain/attendance"
	"github.com/lgu-hris/hris-backend-go/internal/domain/employee"
	"github.com/xuri/excelize/v2"
)

// Service renders monthly daily time record exports in the layout of Civil
// Service Form No. 48: one row per calendar day, four punch columns, an
// out-of-range mark.
type Service interface {
	// MonthlyDTRXLSX renders the employee's DTR for the month (1-12) of the
	// given year as a spreadsheet.
	MonthlyDTRXLSX(ctx context.Context, employeeID string, year int, month time.Month) ([]byte, error)

	// MonthlyDTRCSV renders the same report as flat CSV.
	MonthlyDTRCSV(ctx context.Context, employeeID string, year int, month time.Month) ([]byte, error)
}

type ReportServiceImpl struct {
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
}

func NewReportService(attendanceRepo attendance.Repository, employeeRepo employee.Repository) Service {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

// dtrRow is one rendered day line.
type dtrRow struct {
	Day        int
	Weekday    string
	TimeIn     string
	BreakOut   string
	BreakIn    string
	TimeOut    string
	OutOfRange bool
	OnDuty     bool
}

func (r *ReportServiceImpl) buildRows(ctx context.Context, employeeID string, year int, month time.Month) (employee.Employee, []dtrRow, error) {
	emp, err := r.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, nil, err
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	records, err := r.attendanceRepo.ListByEmployeeRange(ctx, employeeID, first, last)
	if err != nil {
		return employee.Employee{}, nil, fmt.Errorf("failed to load attendance records: %w", err)
	}

	byDay := make(map[int]attendance.DailyRecord, len(records))
	for _, rec := range records {
		byDay[rec.Date.Day()] = rec
	}

	rows := make([]dtrRow, 0, last.Day())
	for day := 1; day <= last.Day(); day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		row := dtrRow{Day: day, Weekday: date.Weekday().String()[:3]}
		if rec, ok := byDay[day]; ok {
			row.TimeIn = formatPunch(rec.TimeIn)
			row.BreakOut = formatPunch(rec.BreakOut)
			row.BreakIn = formatPunch(rec.BreakIn)
			row.TimeOut = formatPunch(rec.TimeOut)
			row.OutOfRange = rec.IsOutOfRange
			row.OnDuty = rec.OnDuty
		}
		rows = append(rows, row)
	}

	return emp, rows, nil
}

func formatPunch(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}

func remark(row dtrRow) string {
	switch {
	case row.OutOfRange && row.OnDuty:
		return "on duty, out of range"
	case row.OutOfRange:
		return "out of range"
	case row.OnDuty:
		return "on duty"
	}
	return ""
}

// MonthlyDTRXLSX implements Service.
func (r *ReportServiceImpl) MonthlyDTRXLSX(ctx context.Context, employeeID string, year int, month time.Month) ([]byte, error) {
	emp, rows, err := r.buildRows(ctx, employeeID, year, month)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "DTR"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	f.SetCellValue(sheet, "A1", "DAILY TIME RECORD")
	f.SetCellValue(sheet, "A2", emp.FullName)
	f.SetCellValue(sheet, "A3", fmt.Sprintf("%s %d", month.String(), year))
	f.SetCellValue(sheet, "A4", emp.Department)

	headers := []string{"Day", "", "Time In", "Break Out", "Break In", "Time Out", "Remarks"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 6)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		rowNum := 7 + i
		values := []interface{}{row.Day, row.Weekday, row.TimeIn, row.BreakOut, row.BreakIn, row.TimeOut, remark(row)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

// MonthlyDTRCSV implements Service.
func (r *ReportServiceImpl) MonthlyDTRCSV(ctx context.Context, employeeID string, year int, month time.Month) ([]byte, error) {
	emp, rows, err := r.buildRows(ctx, employeeID, year, month)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	meta := [][]string{
		{"employee", emp.FullName},
		{"employee_number", emp.EmployeeNumber},
		{"department", emp.Department},
		{"period", fmt.Sprintf("%04d-%02d", year, month)},
		{},
		{"day", "weekday", "time_in", "break_out", "break_in", "time_out", "remarks"},
	}
	for _, rec := range meta {
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("failed to write csv: %w", err)
		}
	}

	for _, row := range rows {
		rec := []string{
			fmt.Sprintf("%d", row.Day),
			row.Weekday,
			row.TimeIn,
			row.BreakOut,
			row.BreakIn,
			row.TimeOut,
			remark(row),
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("failed to write csv: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
