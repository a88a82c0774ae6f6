package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrUnauthorized   = errors.New("unauthorized to access this attendance record")
)

// ScanErrorKind classifies why a scan was rejected. All kinds are expected,
// user-facing conditions; none of them mutates any record.
type ScanErrorKind string

const (
	ScanUnknownEmployee      ScanErrorKind = "unknown_employee"
	ScanUnknownDepartment    ScanErrorKind = "unknown_department"
	ScanInvalidPayload       ScanErrorKind = "invalid_payload"
	ScanDepartmentMismatch   ScanErrorKind = "department_mismatch"
	ScanOnApprovedLeave      ScanErrorKind = "on_approved_leave"
	ScanOutsideAllowedWindow ScanErrorKind = "outside_allowed_window"
	ScanAlreadyComplete      ScanErrorKind = "already_complete"
	ScanStorageFailure       ScanErrorKind = "storage_failure"
)

// ScanError is the typed rejection returned by RecordScan. The detail fields
// let the handler render a specific message without string-matching.
type ScanError struct {
	Kind ScanErrorKind

	// DepartmentMismatch
	EmployeeDepartment string
	ScannedDepartment  string

	// OnApprovedLeave
	LeaveType string

	// OutsideAllowedWindow
	Punch  Punch
	Window Window

	cause error
}

func (e *ScanError) Error() string {
	switch e.Kind {
	case ScanUnknownEmployee:
		return "scanning employee is not in the directory"
	case ScanUnknownDepartment:
		return fmt.Sprintf("department %q does not exist", e.ScannedDepartment)
	case ScanInvalidPayload:
		return "scanned code is not a department attendance code"
	case ScanDepartmentMismatch:
		return fmt.Sprintf("you belong to %s and cannot scan the code for %s",
			e.EmployeeDepartment, e.ScannedDepartment)
	case ScanOnApprovedLeave:
		return fmt.Sprintf("you are on approved %s leave today", e.LeaveType)
	case ScanOutsideAllowedWindow:
		return fmt.Sprintf("%s is only allowed between %s", e.Punch.Label(), e.Window)
	case ScanAlreadyComplete:
		return "all punches for today are already recorded"
	case ScanStorageFailure:
		return "attendance record could not be saved"
	}
	return string(e.Kind)
}

func (e *ScanError) Unwrap() error {
	return e.cause
}

// NewScanError builds a bare scan rejection of the given kind.
func NewScanError(kind ScanErrorKind) *ScanError {
	return &ScanError{Kind: kind}
}

// NewStorageScanError wraps a persistence failure.
func NewStorageScanError(cause error) *ScanError {
	return &ScanError{Kind: ScanStorageFailure, cause: cause}
}

// AsScanError unwraps err into a *ScanError if it is one.
func AsScanError(err error) (*ScanError, bool) {
	var se *ScanError
	ok := errors.As(err, &se)
	return se, ok
}
