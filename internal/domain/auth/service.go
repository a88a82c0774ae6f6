package auth

import "context"

// Service defines authentication business logic.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
