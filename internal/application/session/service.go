package session

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jobboard-api/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// Service mints the stateless access/refresh credential pair on login.
// There is no server-side session record; both tokens carry the identity's
// stable id.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type tokenProvider interface {
	SignPair(userID, role string) (access, refresh string, err error)
	VerifyRefreshUser(refreshToken string) (userID string, err error)
}

type service struct {
	users  userStore
	tokens tokenProvider
}

func NewService(users userStore, tokens tokenProvider) Service {
	return &service{users: users, tokens: tokens}
}

// Login authenticates by email and password. Missing user, wrong password
// and inactive account all collapse to ErrInvalidCredentials so the response
// never reveals which check failed.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(req.Email))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !u.Active {
		return nil, domain.ErrInvalidCredentials
	}

	access, refresh, err := s.tokens.SignPair(u.UserID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("sign tokens: %w", err)
	}
	return &LoginResult{User: u, AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokens.VerifyRefreshUser(refreshToken)
	if err != nil {
		return "", domain.ErrInvalidToken
	}
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return "", domain.ErrInvalidToken
	}
	if !u.Active {
		return "", domain.ErrInvalidToken
	}
	access, _, err := s.tokens.SignPair(u.UserID, u.Role)
	if err != nil {
		return "", fmt.Errorf("sign tokens: %w", err)
	}
	return access, nil
}
