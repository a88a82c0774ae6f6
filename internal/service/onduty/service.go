package onduty

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lgu-hris/hris-backend-go/internal/domain/attendance"
	"github.com/lgu-hris/hris-backend-go/internal/domain/employee"
	"github.com/lgu-hris/hris-backend-go/internal/domain/notification"
	"github.com/lgu-hris/hris-backend-go/internal/domain/onduty"
	"github.com/lgu-hris/hris-backend-go/internal/domain/user"
)

type OnDutyServiceImpl struct {
	onDutyRepo     onduty.Repository
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	userRepo       user.Repository
	notifier       notification.Service

	loc *time.Location
	now func() time.Time
}

func NewOnDutyService(
	onDutyRepo onduty.Repository,
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	userRepo user.Repository,
	notifier notification.Service,
	loc *time.Location,
) onduty.Service {
	if loc == nil {
		loc = time.UTC
	}
	return &OnDutyServiceImpl{
		onDutyRepo:     onDutyRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		loc:            loc,
		now:            time.Now,
	}
}

// Schedule implements onduty.Service.
func (o *OnDutyServiceImpl) Schedule(ctx context.Context, req onduty.ScheduleRequest) (onduty.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return onduty.AssignmentResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return onduty.AssignmentResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	scheduledBy, _ := claims["user_id"].(string)

	if _, err := o.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return onduty.AssignmentResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	a := onduty.Assignment{
		ID:          uuid.New().String(),
		EmployeeID:  req.EmployeeID,
		Date:        date,
		Reason:      req.Reason,
		ScheduledBy: scheduledBy,
	}

	stored, err := o.onDutyRepo.Create(ctx, a)
	if err != nil {
		return onduty.AssignmentResponse{}, err
	}

	o.notifyAssignee(ctx, stored)

	return mapAssignmentToResponse(stored), nil
}

func (o *OnDutyServiceImpl) notifyAssignee(ctx context.Context, a onduty.Assignment) {
	owner, err := o.userRepo.GetByEmployeeID(ctx, a.EmployeeID)
	if err != nil {
		return
	}

	_ = o.notifier.Publish(ctx, notification.CreateNotificationRequest{
		RecipientID: owner.ID,
		Type:        notification.TypeOnDutyAssigned,
		Title:       "Special duty scheduled",
		Message:     fmt.Sprintf("You are on duty on %s: %s", a.Date.Format("2006-01-02"), a.Reason),
		Data: map[string]interface{}{
			"assignment_id": a.ID,
			"date":          a.Date.Format("2006-01-02"),
		},
	})
}

// ListByRange implements onduty.Service.
func (o *OnDutyServiceImpl) ListByRange(ctx context.Context, from, to string) ([]onduty.AssignmentResponse, error) {
	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, fmt.Errorf("invalid from date: %w", err)
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, fmt.Errorf("invalid to date: %w", err)
	}

	assignments, err := o.onDutyRepo.ListByDateRange(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list on-duty assignments: %w", err)
	}

	responses := make([]onduty.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, mapAssignmentToResponse(a))
	}
	return responses, nil
}

// Cancel implements onduty.Service.
func (o *OnDutyServiceImpl) Cancel(ctx context.Context, id string) error {
	return o.onDutyRepo.Delete(ctx, id)
}

// Materialize implements onduty.Service. Each due assignment becomes a
// pre-created attendance record carrying the on-duty flag; a record that
// already exists (the employee scanned before the job ran) is left alone
// and the assignment is just marked done.
func (o *OnDutyServiceImpl) Materialize(ctx context.Context) error {
	today := o.today()

	pending, err := o.onDutyRepo.ListPending(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list pending assignments: %w", err)
	}

	for _, a := range pending {
		_, err := o.attendanceRepo.Find(ctx, a.EmployeeID, a.Date)
		if err != nil {
			if !errors.Is(err, attendance.ErrRecordNotFound) {
				return fmt.Errorf("failed to check attendance record: %w", err)
			}
			rec := attendance.DailyRecord{
				ID:         uuid.New().String(),
				EmployeeID: a.EmployeeID,
				Date:       a.Date,
				OnDuty:     true,
			}
			if _, err := o.attendanceRepo.Upsert(ctx, rec); err != nil {
				return fmt.Errorf("failed to materialize on-duty record: %w", err)
			}
		}

		if err := o.onDutyRepo.MarkMaterialized(ctx, a.ID); err != nil {
			return fmt.Errorf("failed to mark assignment materialized: %w", err)
		}
	}

	return nil
}

func (o *OnDutyServiceImpl) today() time.Time {
	nowLocal := o.now().In(o.loc)
	return time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, time.UTC)
}

func mapAssignmentToResponse(a onduty.Assignment) onduty.AssignmentResponse {
	return onduty.AssignmentResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		Date:         a.Date.Format("2006-01-02"),
		Reason:       a.Reason,
		ScheduledBy:  a.ScheduledBy,
		Materialized: a.Materialized,
	}
}
