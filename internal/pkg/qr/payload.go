package qr

import (
	"encoding/json"
	"errors"
)

// PayloadKind discriminates the QR payload variants embedded at encode time.
type PayloadKind string

const (
	KindDepartmentScan   PayloadKind = "department_scan"
	KindEmployeeIdentity PayloadKind = "employee_identity"
)

var (
	ErrInvalidPayload = errors.New("payload is not a recognized QR payload")
	ErrUnknownKind    = errors.New("payload carries an unknown kind tag")
)

// DepartmentScanPayload is embedded in the QR code posted at a department
// office. Scanning it records an attendance punch.
type DepartmentScanPayload struct {
	Kind       PayloadKind `json:"kind"`
	Department string      `json:"department"`
}

// EmployeeIdentityPayload is embedded in an employee's personal QR code and
// is used by identification flows, never by attendance.
type EmployeeIdentityPayload struct {
	Kind       PayloadKind `json:"kind"`
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Department string      `json:"department"`
}

// Payload is the decoded union. Exactly one of the variant fields is set.
type Payload struct {
	DepartmentScan   *DepartmentScanPayload
	EmployeeIdentity *EmployeeIdentityPayload
}

// EncodeDepartmentScan serializes a department scan payload with its kind tag.
func EncodeDepartmentScan(department string) ([]byte, error) {
	return json.Marshal(DepartmentScanPayload{
		Kind:       KindDepartmentScan,
		Department: department,
	})
}

// EncodeEmployeeIdentity serializes an employee identity payload with its
// kind tag.
func EncodeEmployeeIdentity(id, name, department string) ([]byte, error) {
	return json.Marshal(EmployeeIdentityPayload{
		Kind:       KindEmployeeIdentity,
		ID:         id,
		Name:       name,
		Department: department,
	})
}

// Decode parses raw decoded QR data into a tagged payload variant.
//
// Tagged payloads resolve on the kind field alone. Legacy codes printed
// before tagging are inferred from field presence: an id means identity, a
// lone department means department scan. A legacy payload carrying both an
// id and a department decodes as identity so that an ambiguous code never
// silently punches a clock.
func Decode(raw []byte) (Payload, error) {
	var probe struct {
		Kind       PayloadKind `json:"kind"`
		ID         string      `json:"id"`
		Name       string      `json:"name"`
		Department string      `json:"department"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Payload{}, ErrInvalidPayload
	}

	switch probe.Kind {
	case KindDepartmentScan:
		if probe.Department == "" {
			return Payload{}, ErrInvalidPayload
		}
		return Payload{DepartmentScan: &DepartmentScanPayload{
			Kind:       KindDepartmentScan,
			Department: probe.Department,
		}}, nil

	case KindEmployeeIdentity:
		if probe.ID == "" {
			return Payload{}, ErrInvalidPayload
		}
		return Payload{EmployeeIdentity: &EmployeeIdentityPayload{
			Kind:       KindEmployeeIdentity,
			ID:         probe.ID,
			Name:       probe.Name,
			Department: probe.Department,
		}}, nil

	case "":
		// Legacy untagged payload.
		if probe.ID != "" {
			return Payload{EmployeeIdentity: &EmployeeIdentityPayload{
				Kind:       KindEmployeeIdentity,
				ID:         probe.ID,
				Name:       probe.Name,
				Department: probe.Department,
			}}, nil
		}
		if probe.Department != "" {
			return Payload{DepartmentScan: &DepartmentScanPayload{
				Kind:       KindDepartmentScan,
				Department: probe.Department,
			}}, nil
		}
		return Payload{}, ErrInvalidPayload

	default:
		return Payload{}, ErrUnknownKind
	}
}
