package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lgu-hris/hris-backend-go/internal/domain/employee"
	"github.com/lgu-hris/hris-backend-go/internal/domain/leave"
	"github.com/lgu-hris/hris-backend-go/internal/domain/notification"
	"github.com/lgu-hris/hris-backend-go/internal/domain/user"
)

type LeaveServiceImpl struct {
	leaveRepo    leave.Repository
	employeeRepo employee.Repository
	userRepo     user.Repository
	notifier     notification.Service
}

func NewLeaveService(
	leaveRepo leave.Repository,
	employeeRepo employee.Repository,
	userRepo user.Repository,
	notifier notification.Service,
) leave.Service {
	return &LeaveServiceImpl{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

type callerClaims struct {
	UserID     string
	Role       user.Role
	EmployeeID string
}

func claimsFromContext(ctx context.Context) (callerClaims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return callerClaims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	c := callerClaims{}
	c.UserID, _ = claims["user_id"].(string)
	if role, ok := claims["role"].(string); ok {
		c.Role = user.Role(role)
	}
	c.EmployeeID, _ = claims["employee_id"].(string)

	if c.UserID == "" {
		return callerClaims{}, fmt.Errorf("user_id claim is missing")
	}
	return c, nil
}

// File implements leave.Service.
func (l *LeaveServiceImpl) File(ctx context.Context, req leave.FileLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	caller, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if caller.EmployeeID == "" {
		return leave.LeaveResponse{}, leave.ErrUnauthorized
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	overlap, err := l.leaveRepo.HasIntervalOverlap(ctx, caller.EmployeeID, start, end, nil)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	if overlap {
		return leave.LeaveResponse{}, leave.ErrOverlappingLeave
	}

	rec := leave.LeaveRecord{
		ID:         uuid.New().String(),
		EmployeeID: caller.EmployeeID,
		Type:       leave.LeaveType(req.Type),
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Status:     leave.LeaveStatusPending,
	}

	stored, err := l.leaveRepo.Create(ctx, rec)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave record: %w", err)
	}

	l.notifyApprovers(ctx, stored)

	return mapLeaveToResponse(stored), nil
}

// notifyApprovers tells department heads and admins a new application is
// waiting. Best-effort.
func (l *LeaveServiceImpl) notifyApprovers(ctx context.Context, rec leave.LeaveRecord) {
	approvers, err := l.userRepo.ListByRoles(ctx, []user.Role{user.RoleAdmin, user.RoleHead})
	if err != nil || len(approvers) == 0 {
		return
	}

	name := rec.EmployeeID
	if emp, err := l.employeeRepo.GetByID(ctx, rec.EmployeeID); err == nil {
		name = emp.FullName
	}

	ids := make([]string, 0, len(approvers))
	for _, u := range approvers {
		ids = append(ids, u.ID)
	}

	_ = l.notifier.PublishToMany(ctx, ids, notification.CreateNotificationRequest{
		Type:    notification.TypeLeaveFiled,
		Title:   "Leave application filed",
		Message: fmt.Sprintf("%s filed %s leave from %s to %s", name, rec.Type, rec.StartDate.Format("2006-01-02"), rec.EndDate.Format("2006-01-02")),
		Data: map[string]interface{}{
			"leave_id":    rec.ID,
			"employee_id": rec.EmployeeID,
		},
	})
}

// Update implements leave.Service. Only the owner may edit, and only while
// the application is still pending.
func (l *LeaveServiceImpl) Update(ctx context.Context, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	caller, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	rec, err := l.leaveRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	if rec.EmployeeID != caller.EmployeeID && caller.Role != user.RoleAdmin {
		return leave.LeaveResponse{}, leave.ErrUnauthorized
	}
	if rec.Status != leave.LeaveStatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	if req.Type != nil {
		switch leave.LeaveType(*req.Type) {
		case leave.LeaveTypeVacation, leave.LeaveTypeSick, leave.LeaveTypeMaternity,
			leave.LeaveTypePaternity, leave.LeaveTypeSpecial, leave.LeaveTypeStudy:
			rec.Type = leave.LeaveType(*req.Type)
		default:
			return leave.LeaveResponse{}, leave.ErrInvalidLeaveType
		}
	}
	if req.StartDate != nil {
		start, perr := time.Parse("2006-01-02", *req.StartDate)
		if perr != nil {
			return leave.LeaveResponse{}, fmt.Errorf("invalid start date: %w", perr)
		}
		rec.StartDate = start
	}
	if req.EndDate != nil {
		end, perr := time.Parse("2006-01-02", *req.EndDate)
		if perr != nil {
			return leave.LeaveResponse{}, fmt.Errorf("invalid end date: %w", perr)
		}
		rec.EndDate = end
	}
	if rec.EndDate.Before(rec.StartDate) {
		return leave.LeaveResponse{}, leave.ErrInvalidDateRange
	}
	if req.Reason != nil {
		rec.Reason = *req.Reason
	}

	overlap, err := l.leaveRepo.HasIntervalOverlap(ctx, rec.EmployeeID, rec.StartDate, rec.EndDate, &rec.ID)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	if overlap {
		return leave.LeaveResponse{}, leave.ErrOverlappingLeave
	}

	if err := l.leaveRepo.Update(ctx, rec); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave record: %w", err)
	}

	return mapLeaveToResponse(rec), nil
}

// Approve implements leave.Service.
func (l *LeaveServiceImpl) Approve(ctx context.Context, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
	return l.decide(ctx, req, leave.LeaveStatusApproved)
}

// Reject implements leave.Service.
func (l *LeaveServiceImpl) Reject(ctx context.Context, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
	return l.decide(ctx, req, leave.LeaveStatusRejected)
}

func (l *LeaveServiceImpl) decide(ctx context.Context, req leave.DecideLeaveRequest, status leave.LeaveStatus) (leave.LeaveResponse, error) {
	caller, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	rec, err := l.leaveRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if rec.Status != leave.LeaveStatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	now := time.Now()
	rec.Status = status
	rec.DecidedBy = &caller.UserID
	rec.DecidedAt = &now
	if status == leave.LeaveStatusRejected && req.Reason != "" {
		rec.RejectionReason = &req.Reason
	}

	if err := l.leaveRepo.Update(ctx, rec); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave record: %w", err)
	}

	l.notifyDecision(ctx, rec)

	return mapLeaveToResponse(rec), nil
}

func (l *LeaveServiceImpl) notifyDecision(ctx context.Context, rec leave.LeaveRecord) {
	owner, err := l.userRepo.GetByEmployeeID(ctx, rec.EmployeeID)
	if err != nil {
		return
	}

	notifType := notification.TypeLeaveApproved
	title := "Leave application approved"
	message := fmt.Sprintf("Your %s leave from %s to %s was approved", rec.Type,
		rec.StartDate.Format("2006-01-02"), rec.EndDate.Format("2006-01-02"))
	if rec.Status == leave.LeaveStatusRejected {
		notifType = notification.TypeLeaveRejected
		title = "Leave application rejected"
		message = fmt.Sprintf("Your %s leave from %s to %s was rejected", rec.Type,
			rec.StartDate.Format("2006-01-02"), rec.EndDate.Format("2006-01-02"))
	}

	_ = l.notifier.Publish(ctx, notification.CreateNotificationRequest{
		RecipientID: owner.ID,
		Type:        notifType,
		Title:       title,
		Message:     message,
		Data: map[string]interface{}{
			"leave_id": rec.ID,
		},
	})
}

// GetMyLeaves implements leave.Service.
func (l *LeaveServiceImpl) GetMyLeaves(ctx context.Context) ([]leave.LeaveResponse, error) {
	caller, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if caller.EmployeeID == "" {
		return nil, leave.ErrUnauthorized
	}

	records, err := l.leaveRepo.ListByEmployee(ctx, caller.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave records: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapLeaveToResponse(rec))
	}
	return responses, nil
}

// List implements leave.Service.
func (l *LeaveServiceImpl) List(ctx context.Context, filter leave.ListFilter) (leave.ListLeaveResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := l.leaveRepo.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave records: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapLeaveToResponse(rec))
	}

	return leave.ListLeaveResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Leaves:     responses,
	}, nil
}

// Delete implements leave.Service. Owners withdraw pending applications;
// admins may remove any.
func (l *LeaveServiceImpl) Delete(ctx context.Context, id string) error {
	caller, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	rec, err := l.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if caller.Role != user.RoleAdmin {
		if rec.EmployeeID != caller.EmployeeID {
			return leave.ErrUnauthorized
		}
		if rec.Status != leave.LeaveStatusPending {
			return leave.ErrLeaveAlreadyProcessed
		}
	}

	if err := l.leaveRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete leave record: %w", err)
	}
	return nil
}

func mapLeaveToResponse(rec leave.LeaveRecord) leave.LeaveResponse {
	resp := leave.LeaveResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		Type:         string(rec.Type),
		StartDate:    rec.StartDate.Format("2006-01-02"),
		EndDate:      rec.EndDate.Format("2006-01-02"),
		Reason:       rec.Reason,
		Status:       string(rec.Status),
		DecidedBy:    rec.DecidedBy,
	}
	if rec.DecidedAt != nil {
		decidedAt := rec.DecidedAt.Format("2006-01-02 15:04:05")
		resp.DecidedAt = &decidedAt
	}
	return resp
}
