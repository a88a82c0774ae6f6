package attendance

import (
	"encoding/json"

	"github.com/lgu-hris/hris-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// ScanRequest carries one decoded QR scan. The scanning employee's identity
// comes from the authenticated token, never from the payload. Latitude and
// longitude are the device's position fix; both nil means the fix was
// unavailable or denied, which is tolerated.
type ScanRequest struct {
	Payload   json.RawMessage `json:"payload"`
	Latitude  *float64        `json:"latitude,omitempty"`
	Longitude *float64        `json:"longitude,omitempty"`
}

func (r *ScanRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Payload) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "payload",
			Message: "decoded QR payload is required",
		})
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must both be set or both omitted",
		})
	}

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// HasPosition reports whether a device coordinate fix arrived with the scan.
func (r *ScanRequest) HasPosition() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// ScanResult is returned on a successful punch.
type ScanResult struct {
	Message    string `json:"message"`
	RecordID   string `json:"record_id"`
	Punch      string `json:"punch"`
	OutOfRange bool   `json:"out_of_range"`
}

type RecordResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName *string  `json:"employee_name,omitempty"`
	Date         string   `json:"date"`
	TimeIn       *string  `json:"time_in,omitempty"`
	BreakOut     *string  `json:"break_out,omitempty"`
	BreakIn      *string  `json:"break_in,omitempty"`
	TimeOut      *string  `json:"time_out,omitempty"`
	ScanLatitude *float64 `json:"scan_latitude,omitempty"`
	ScanLongitude *float64 `json:"scan_longitude,omitempty"`
	IsOutOfRange bool     `json:"is_out_of_range"`
	OnDuty       bool     `json:"on_duty"`
}

type ListFilter struct {
	EmployeeID *string
	Department *string
	DateFrom   *string
	DateTo     *string
	Page       int
	Limit      int
}

type ListRecordResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Records    []RecordResponse `json:"records"`
}

// UpdateRecordRequest is the admin correction form: set or clear individual
// punches on an existing record.
type UpdateRecordRequest struct {
	ID       string  `json:"-"`
	TimeIn   *string `json:"time_in,omitempty"`
	BreakOut *string `json:"break_out,omitempty"`
	BreakIn  *string `json:"break_in,omitempty"`
	TimeOut  *string `json:"time_out,omitempty"`

	// Clear lists punch names to unset.
	Clear []string `json:"clear,omitempty"`
}
