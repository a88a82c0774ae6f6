package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUsernameExists          = errors.New("username already registered")
	ErrInvalidPasswordLength   = errors.New("password must be at least 8 characters")
	ErrAdminAccessRequired     = errors.New("admin access required")
	ErrHeadAccessRequired      = errors.New("department head access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrUserInactive            = errors.New("user account is inactive")
)
