package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Leave Management
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Attendance Management
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceScan    Permission = "attendance.scan"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceEdit    Permission = "attendance.edit"

	// Directory Management
	PermissionEmployeeViewAll   Permission = "employee.view_all"
	PermissionEmployeeManage    Permission = "employee.manage"
	PermissionDepartmentManage  Permission = "department.manage"
	PermissionOnDutySchedule    Permission = "onduty.schedule"
	PermissionProjectManage     Permission = "project.manage"
	PermissionReportsView       Permission = "reports.view"
	PermissionUserManage        Permission = "user.manage"
	PermissionAlertSubscription Permission = "alerts.subscribe"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionAttendanceViewOwn,
		PermissionAttendanceScan,
		PermissionAttendanceViewAll,
		PermissionAttendanceEdit,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionDepartmentManage,
		PermissionOnDutySchedule,
		PermissionProjectManage,
		PermissionReportsView,
		PermissionUserManage,
		PermissionAlertSubscription,
	},
	RoleIT: {
		PermissionViewOwnProfile,
		PermissionAttendanceViewOwn,
		PermissionAttendanceScan,
		PermissionEmployeeViewAll,
		PermissionUserManage,
		PermissionAlertSubscription,
	},
	RoleHead: {
		PermissionViewOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionAttendanceViewOwn,
		PermissionAttendanceScan,
		PermissionAttendanceViewAll,
		PermissionEmployeeViewAll,
		PermissionOnDutySchedule,
		PermissionProjectManage,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceScan,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
