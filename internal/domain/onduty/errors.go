package onduty

import "errors"

var (
	ErrAssignmentNotFound = errors.New("on-duty assignment not found")
	ErrAssignmentExists   = errors.New("employee already has an on-duty assignment for that date")
)
