package leave

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgu-hris/hris-backend-go/internal/domain/employee"
	"github.com/lgu-hris/hris-backend-go/internal/domain/leave"
	"github.com/lgu-hris/hris-backend-go/internal/domain/notification"
	"github.com/lgu-hris/hris-backend-go/internal/domain/user"
)

// ---- fakes ----

type fakeLeaveRepo struct {
	leaves map[string]leave.LeaveRecord
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{leaves: map[string]leave.LeaveRecord{}}
}

func (f *fakeLeaveRepo) Create(_ context.Context, rec leave.LeaveRecord) (leave.LeaveRecord, error) {
	f.leaves[rec.ID] = rec
	return rec, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveRecord, error) {
	rec, ok := f.leaves[id]
	if !ok {
		return leave.LeaveRecord{}, leave.ErrLeaveNotFound
	}
	return rec, nil
}

func (f *fakeLeaveRepo) ListByEmployee(_ context.Context, employeeID string) ([]leave.LeaveRecord, error) {
	var out []leave.LeaveRecord
	for _, rec := range f.leaves {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) List(_ context.Context, _ leave.ListFilter) ([]leave.LeaveRecord, int64, error) {
	out := make([]leave.LeaveRecord, 0, len(f.leaves))
	for _, rec := range f.leaves {
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRepo) Update(_ context.Context, rec leave.LeaveRecord) error {
	if _, ok := f.leaves[rec.ID]; !ok {
		return leave.ErrLeaveNotFound
	}
	f.leaves[rec.ID] = rec
	return nil
}

func (f *fakeLeaveRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.leaves[id]; !ok {
		return leave.ErrLeaveNotFound
	}
	delete(f.leaves, id)
	return nil
}

func (f *fakeLeaveRepo) FindActiveOverlap(_ context.Context, employeeID string, day time.Time) (*leave.LeaveRecord, error) {
	for id := range f.leaves {
		rec := f.leaves[id]
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

type fakeEmployeeRepo struct{}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	return employee.Employee{ID: id, FullName: "Juan Dela Cruz"}, nil
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

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) { return u, nil }

func (f *fakeUserRepo) GetByID(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmployeeID(_ context.Context, employeeID string) (user.User, error) {
	for _, u := range f.users {
		if u.EmployeeID != nil && *u.EmployeeID == employeeID {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListByRoles(_ context.Context, roles []user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		for _, role := range roles {
			if u.Role == role {
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

const testEmployeeID = "emp-001"

type fixture struct {
	svc       leave.Service
	leaveRepo *fakeLeaveRepo
	userRepo  *fakeUserRepo
	notifier  *fakeNotifier
}

func newFixture() *fixture {
	f := &fixture{
		leaveRepo: newFakeLeaveRepo(),
		userRepo:  &fakeUserRepo{},
		notifier:  &fakeNotifier{},
	}
	f.svc = NewLeaveService(f.leaveRepo, &fakeEmployeeRepo{}, f.userRepo, f.notifier)
	return f
}

func authedContext(t *testing.T, userID, role, employeeID string) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":     userID,
		"role":        role,
		"employee_id": employeeID,
		"type":        "access",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func (f *fixture) seed(id, employeeID string, start, end string, status leave.LeaveStatus) {
	s, _ := time.Parse("2006-01-02", start)
	e, _ := time.Parse("2006-01-02", end)
	f.leaveRepo.leaves[id] = leave.LeaveRecord{
		ID:         id,
		EmployeeID: employeeID,
		Type:       leave.LeaveTypeVacation,
		StartDate:  s,
		EndDate:    e,
		Status:     status,
	}
}

// ---- tests ----

func TestFile_CreatesPendingAndNotifiesApprovers(t *testing.T) {
	f := newFixture()
	f.userRepo.users = []user.User{
		{ID: "admin-1", Role: user.RoleAdmin},
		{ID: "head-1", Role: user.RoleHead},
	}
	ctx := authedContext(t, "user-001", "employee", testEmployeeID)

	result, err := f.svc.File(ctx, leave.FileLeaveRequest{
		Type:      "vacation",
		StartDate: "2023-11-01",
		EndDate:   "2023-11-05",
		Reason:    "family trip",
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", result.Status)
	assert.Equal(t, testEmployeeID, result.EmployeeID)

	require.Len(t, f.notifier.published, 1)
	assert.Equal(t, notification.TypeLeaveFiled, f.notifier.published[0].Type)
	assert.ElementsMatch(t, []string{"admin-1", "head-1"}, f.notifier.recipients[0])
}

func TestFile_RejectsOverlappingInterval(t *testing.T) {
	f := newFixture()
	f.seed("leave-001", testEmployeeID, "2023-11-01", "2023-11-05", leave.LeaveStatusPending)
	ctx := authedContext(t, "user-001", "employee", testEmployeeID)

	_, err := f.svc.File(ctx, leave.FileLeaveRequest{
		Type:      "sick",
		StartDate: "2023-11-03",
		EndDate:   "2023-11-10",
		Reason:    "flu",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestFile_AdjacentIntervalsAllowed(t *testing.T) {
	f := newFixture()
	f.seed("leave-001", testEmployeeID, "2023-11-01", "2023-11-05", leave.LeaveStatusApproved)
	ctx := authedContext(t, "user-001", "employee", testEmployeeID)

	_, err := f.svc.File(ctx, leave.FileLeaveRequest{
		Type:      "vacation",
		StartDate: "2023-11-06",
		EndDate:   "2023-11-08",
		Reason:    "extension",
	})
	require.NoError(t, err)
}

func TestFile_RejectedLeaveDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.seed("leave-001", testEmployeeID, "2023-11-01", "2023-11-05", leave.LeaveStatusRejected)
	ctx := authedContext(t, "user-001", "employee", testEmployeeID)

	_, err := f.svc.File(ctx, leave.FileLeaveRequest{
		Type:      "vacation",
		StartDate: "2023-11-03",
		EndDate:   "2023-11-04",
		Reason:    "retry",
	})
	require.NoError(t, err)
}

func TestFile_OtherEmployeeIntervalIgnored(t *testing.T) {
	f := newFixture()
	f.seed("leave-001", "emp-002", "2023-11-01", "2023-11-05", leave.LeaveStatusApproved)
	ctx := authedContext(t, "user-001", "employee", testEmployeeID)

	_, err := f.svc.File(ctx, leave.FileLeaveRequest{
		Type:      "vacation",
		StartDate: "2023-11-02",
		EndDate:   "2023-11-03",
		Reason:    "trip",
	})
	require.NoError(t, err)
}

func TestFile_RequiresEmployeeIdentity(t *testing.T) {
	f := newFixture()
	ctx := authedContext(t, "user-001", "admin", "")

	_, err := f.svc.File(ctx, leave.FileLeaveRequest{
		Type:      "vacation",
		StartDate: "2023-11-01",
		EndDate:   "2023-11-02",
		Reason:    "trip",
	})
	assert.ErrorIs(t, err, leave.ErrUnauthorized)
}

func TestUpdate_OverlapCheckExcludesSelf(t *testing.T) {
	f := newFixture()
	f.seed("leave-001", testEmployeeID, "2023-11-01", "2023-11-05", leave.LeaveStatusPending)
	ctx := authedContext(t, "user-001", "employee", testEmployeeID)

	end := "2023-11-06"
	result, err := f.svc.Update(ctx, leave.UpdateLeaveRequest{
		ID:      "leave-001",
		EndDate: &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "2023-11-06", result.EndDate)
}

func TestUpdate_OnlyOwnerOrAdmin(t *testing.T) {
	f := newFixture()
	f.seed("leave-001", testEmployeeID, "2023-11-01", "2023-11-05", leave.LeaveStatusPending)
	ctx := authedContext(t, "user-002", "employee", "emp-002")

	reason := "changed"
	_, err := f.svc.Update(ctx, leave.UpdateLeaveRequest{ID: "leave-001", Reason: &reason})
	assert.ErrorIs(t, err, leave.ErrUnauthorized)
}

func TestUpdate_ProcessedLeaveIsFrozen(t *testing.T) {
	f := newFixture()
	f.seed("leave-001", testEmployeeID, "2023-11-01", "2023-11-05", leave.LeaveStatusApproved)
	ctx := authedContext(t, "user-001", "employee", testEmployeeID)

	reason := "changed"
	_, err := f.svc.Update(ctx, leave.UpdateLeaveRequest{ID: "leave-001", Reason: &reason})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestUpdate_EndBeforeStartRejected(t *testing.T) {
	f := newFixture()
	f.seed("leave-001", testEmployeeID, "2023-11-03", "2023-11-05", leave.LeaveStatusPending)
	ctx := authedContext(t, "user-001", "employee", testEmployeeID)

	end := "2023-11-01"
	_, err := f.svc.Update(ctx, leave.UpdateLeaveRequest{ID: "leave-001", EndDate: &end})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestApprove_SetsDeciderAndNotifiesOwner(t *testing.T) {
	f := newFixture()
	empID := testEmployeeID
	f.userRepo.users = []user.User{
		{ID: "user-owner", Role: user.RoleEmployee, EmployeeID: &empID},
	}
	f.seed("leave-001", testEmployeeID, "2023-11-01", "2023-11-05", leave.LeaveStatusPending)
	ctx := authedContext(t, "user-head", "head", "emp-head")

	result, err := f.svc.Approve(ctx, leave.DecideLeaveRequest{ID: "leave-001"})
	require.NoError(t, err)

	assert.Equal(t, "approved", result.Status)
	require.NotNil(t, result.DecidedBy)
	assert.Equal(t, "user-head", *result.DecidedBy)
	require.NotNil(t, result.DecidedAt)

	require.Len(t, f.notifier.published, 1)
	assert.Equal(t, notification.TypeLeaveApproved, f.notifier.published[0].Type)
	assert.Equal(t, []string{"user-owner"}, f.notifier.recipients[0])
}

func TestReject_StoresReason(t *testing.T) {
	f := newFixture()
	f.seed("leave-001", testEmployeeID, "2023-11-01", "2023-11-05", leave.LeaveStatusPending)
	ctx := authedContext(t, "user-head", "head", "emp-head")

	result, err := f.svc.Reject(ctx, leave.DecideLeaveRequest{
		ID:     "leave-001",
		Reason: "short staffed that week",
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", result.Status)

	stored := f.leaveRepo.leaves["leave-001"]
	require.NotNil(t, stored.RejectionReason)
	assert.Equal(t, "short staffed that week", *stored.RejectionReason)
}

func TestDecide_AlreadyProcessed(t *testing.T) {
	f := newFixture()
	f.seed("leave-001", testEmployeeID, "2023-11-01", "2023-11-05", leave.LeaveStatusApproved)
	ctx := authedContext(t, "user-head", "head", "emp-head")

	_, err := f.svc.Approve(ctx, leave.DecideLeaveRequest{ID: "leave-001"})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)

	_, err = f.svc.Reject(ctx, leave.DecideLeaveRequest{ID: "leave-001"})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestDelete_OwnerWithdrawsPendingOnly(t *testing.T) {
	f := newFixture()
	f.seed("leave-001", testEmployeeID, "2023-11-01", "2023-11-05", leave.LeaveStatusPending)
	f.seed("leave-002", testEmployeeID, "2023-12-01", "2023-12-05", leave.LeaveStatusApproved)
	ctx := authedContext(t, "user-001", "employee", testEmployeeID)

	require.NoError(t, f.svc.Delete(ctx, "leave-001"))
	assert.ErrorIs(t, f.svc.Delete(ctx, "leave-002"), leave.ErrLeaveAlreadyProcessed)
}

func TestDelete_AdminRemovesAny(t *testing.T) {
	f := newFixture()
	f.seed("leave-001", testEmployeeID, "2023-11-01", "2023-11-05", leave.LeaveStatusApproved)
	ctx := authedContext(t, "user-admin", "admin", "")

	require.NoError(t, f.svc.Delete(ctx, "leave-001"))
	assert.Empty(t, f.leaveRepo.leaves)
}

func TestGetMyLeaves_ScopedToCaller(t *testing.T) {
	f := newFixture()
	f.seed("leave-001", testEmployeeID, "2023-11-01", "2023-11-05", leave.LeaveStatusPending)
	f.seed("leave-002", "emp-002", "2023-11-01", "2023-11-05", leave.LeaveStatusPending)
	ctx := authedContext(t, "user-001", "employee", testEmployeeID)

	result, err := f.svc.GetMyLeaves(ctx)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "leave-001", result[0].ID)
}
