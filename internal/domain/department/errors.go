package department

import "errors"

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrDepartmentExists   = errors.New("department name already exists")
	ErrDepartmentInUse    = errors.New("department still has employees assigned")
)
