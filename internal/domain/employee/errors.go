package employee

import "errors"

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrEmployeeNumberExists   = errors.New("employee number already exists")
	ErrInvalidEmployeeNumber  = errors.New("invalid employee number format")
	ErrUnknownDepartment      = errors.New("department does not exist")
	ErrEmployeeAlreadyRemoved = errors.New("employee has already been removed")
)
