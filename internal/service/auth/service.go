package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/lgu-hris/hris-backend-go/internal/domain/auth"
	"github.com/lgu-hris/hris-backend-go/internal/domain/user"
	jwtpkg "github.com/lgu-hris/hris-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	userRepo   user.Repository
	jwtService jwtpkg.Service
}

func NewAuthService(userRepo user.Repository, jwtService jwtpkg.Service) auth.Service {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login implements auth.Service.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := a.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Burn a comparison so unknown usernames cost the same as bad
			// passwords.
			_ = bcrypt.CompareHashAndPassword(
				[]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"),
				[]byte(req.Password),
			)
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountInactive
	}

	return a.issueTokens(u)
}

// Refresh implements auth.Service.
func (a *AuthServiceImpl) Refresh(ctx context.Context, req auth.RefreshRequest) (auth.LoginResponse, error) {
	if req.RefreshToken == "" {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	if a.jwtService.IsTokenRevoked(req.RefreshToken) {
		return auth.LoginResponse{}, auth.ErrRefreshTokenRevoked
	}

	token, err := a.jwtService.JWTAuth().Decode(req.RefreshToken)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	if err := jwt.Validate(token); err != nil {
		return auth.LoginResponse{}, auth.ErrTokenExpired
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	u, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrUserNotFound
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountInactive
	}

	// Rotate: the presented refresh token is single-use.
	a.jwtService.RevokeToken(req.RefreshToken)

	return a.issueTokens(u)
}

// Logout implements auth.Service.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		a.jwtService.RevokeToken(refreshToken)
	}
	return nil
}

func (a *AuthServiceImpl) issueTokens(u user.User) (auth.LoginResponse, error) {
	accessToken, expiresAt, err := a.jwtService.GenerateAccessToken(u.ID, u.Username, u.EmployeeID, u.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, _, err := a.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		UserID:       u.ID,
		Username:     u.Username,
		Role:         string(u.Role),
		EmployeeID:   u.EmployeeID,
	}, nil
}
