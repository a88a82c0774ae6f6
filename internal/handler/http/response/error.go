package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/lgu-hris/hris-backend-go/internal/domain/attendance"
	"github.com/lgu-hris/hris-backend-go/internal/domain/auth"
	"github.com/lgu-hris/hris-backend-go/internal/domain/department"
	"github.com/lgu-hris/hris-backend-go/internal/domain/employee"
	"github.com/lgu-hris/hris-backend-go/internal/domain/leave"
	"github.com/lgu-hris/hris-backend-go/internal/domain/notification"
	"github.com/lgu-hris/hris-backend-go/internal/domain/onduty"
	"github.com/lgu-hris/hris-backend-go/internal/domain/project"
	"github.com/lgu-hris/hris-backend-go/internal/domain/user"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/qr"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	if scanErr, ok := attendance.AsScanError(err); ok {
		handleScanError(w, scanErr)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already registered")
	case errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrHeadAccessRequired):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeNumberExists):
		Conflict(w, "Employee number already exists")
	case errors.Is(err, employee.ErrUnknownDepartment):
		BadRequest(w, "Department does not exist", nil)

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentExists):
		Conflict(w, "Department name already exists")
	case errors.Is(err, department.ErrDepartmentInUse):
		Conflict(w, "Department still has employees assigned")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Unauthorized to access this attendance record")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave record not found")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Leave dates overlap an existing application")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave application already processed")
	case errors.Is(err, leave.ErrInvalidLeaveType),
		errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrUnauthorized):
		Forbidden(w, "Unauthorized to access this leave record")

	// On-duty domain errors
	case errors.Is(err, onduty.ErrAssignmentNotFound):
		NotFound(w, "On-duty assignment not found")
	case errors.Is(err, onduty.ErrAssignmentExists):
		Conflict(w, "Employee already has an on-duty assignment for that date")

	// Project domain errors
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, project.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, project.ErrInvalidStatus):
		BadRequest(w, "Invalid status value", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrUnauthorized):
		Forbidden(w, "Unauthorized to access this notification")

	// QR payload errors
	case errors.Is(err, qr.ErrInvalidPayload), errors.Is(err, qr.ErrUnknownKind):
		BadRequest(w, "Unrecognized QR payload", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

// handleScanError renders the scan rejection taxonomy. Every kind keeps its
// machine-readable code so the scanner UI can branch without parsing prose.
func handleScanError(w http.ResponseWriter, scanErr *attendance.ScanError) {
	code := "SCAN_" + strings.ToUpper(string(scanErr.Kind))

	switch scanErr.Kind {
	case attendance.ScanUnknownEmployee, attendance.ScanUnknownDepartment:
		writeJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   &ErrorDetail{Code: code, Message: scanErr.Error()},
		})
	case attendance.ScanInvalidPayload:
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   &ErrorDetail{Code: code, Message: scanErr.Error()},
		})
	case attendance.ScanDepartmentMismatch:
		writeJSON(w, http.StatusForbidden, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    code,
				Message: scanErr.Error(),
				Details: map[string]string{
					"employee_department": scanErr.EmployeeDepartment,
					"scanned_department":  scanErr.ScannedDepartment,
				},
			},
		})
	case attendance.ScanOnApprovedLeave:
		writeJSON(w, http.StatusConflict, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    code,
				Message: scanErr.Error(),
				Details: map[string]string{"leave_type": scanErr.LeaveType},
			},
		})
	case attendance.ScanOutsideAllowedWindow:
		writeJSON(w, http.StatusConflict, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    code,
				Message: scanErr.Error(),
				Details: map[string]string{
					"punch":  string(scanErr.Punch),
					"window": scanErr.Window.String(),
				},
			},
		})
	case attendance.ScanAlreadyComplete:
		writeJSON(w, http.StatusConflict, Response{
			Success: false,
			Error:   &ErrorDetail{Code: code, Message: scanErr.Error()},
		})
	default:
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   &ErrorDetail{Code: code, Message: scanErr.Error()},
		})
	}
}
