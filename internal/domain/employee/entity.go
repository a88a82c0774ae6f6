package employee

import "time"

type EmployeeType string

const (
	EmployeeTypePermanent  EmployeeType = "permanent"
	EmployeeTypeCasual     EmployeeType = "casual"
	EmployeeTypeContractOS EmployeeType = "contract_of_service"
	EmployeeTypeJobOrder   EmployeeType = "job_order"
	EmployeeTypeElective   EmployeeType = "elective"
)

// Employee is an entry in the municipal HR directory. Department is a
// foreign key to Department.Name; attendance and leave records reference
// employees by ID.
type Employee struct {
	ID             string
	EmployeeNumber string
	FullName       string
	Department     string
	Position       *string
	EmployeeType   EmployeeType
	Email          *string
	PhoneNumber    *string
	HireDate       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}
