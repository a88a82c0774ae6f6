package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // HR administrator - full access
	RoleIT       Role = "it"       // IT staff - receives geofence alerts, manages accounts
	RoleHead     Role = "head"     // Department head - approves leave, schedules duty
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	EmployeeID   *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if the user is an HR administrator.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsHead checks if the user is a department head or administrator.
func (u *User) IsHead() bool {
	return u.Role == RoleHead || u.Role == RoleAdmin
}

// IsElevated checks if the user receives operational alerts.
func (u *User) IsElevated() bool {
	return u.Role == RoleAdmin || u.Role == RoleIT
}

// ElevatedRoles lists the roles notified about out-of-range scans.
func ElevatedRoles() []Role {
	return []Role{RoleAdmin, RoleIT}
}
