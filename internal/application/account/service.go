package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jobboard-api/internal/application/otp"
	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/id"
)

type SignupRequest struct {
	Email             string `json:"email" validate:"required,email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Phone             string `json:"phone_number"`
	Role              string `json:"user_type" validate:"omitempty,oneof=candidate employer"`
	Password          string `json:"password" validate:"required,min=6,max=72"`
	VerificationToken string `json:"verification_token" validate:"required"`
}

type ResetPasswordRequest struct {
	Email             string `json:"email" validate:"required,email"`
	VerificationToken string `json:"verification_token" validate:"required"`
	NewPassword       string `json:"new_password" validate:"required,min=6,max=72"`
}

type SignupResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// Service provisions accounts: it consumes proof tokens minted by the OTP
// service to create identities and reset passwords.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*SignupResult, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

type userStore interface {
	CreateWithProfile(ctx context.Context, u *domain.User, p *domain.Profile) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type proofChecker interface {
	CheckProof(ctx context.Context, purpose, token, email string) error
}

type tokenIssuer interface {
	SignPair(userID, role string) (access, refresh string, err error)
}

type service struct {
	users  userStore
	proofs proofChecker
	tokens tokenIssuer
}

var _ proofChecker = (otp.Service)(nil)

func NewService(users userStore, proofs proofChecker, tokens tokenIssuer) Service {
	return &service{users: users, proofs: proofs, tokens: tokens}
}

// Signup creates the identity and its role-appropriate profile. The store
// inserts both in one transaction and enforces email uniqueness, so partial
// creation is never observable and concurrent signups for the same email
// race only at the constraint.
func (s *service) Signup(ctx context.Context, req SignupRequest) (*SignupResult, error) {
	email := domain.NormalizeEmail(req.Email)

	if err := s.proofs.CheckProof(ctx, domain.PurposeRegister, req.VerificationToken, email); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = domain.RoleCandidate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.CreateWithProfile(ctx, u, domain.NewEmptyProfile(u.UserID, role)); err != nil {
		return nil, err
	}

	access, refresh, err := s.tokens.SignPair(u.UserID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("sign tokens: %w", err)
	}

	slog.Info("account provisioned", "user_id", u.UserID, "role", u.Role)
	return &SignupResult{User: u, AccessToken: access, RefreshToken: refresh}, nil
}

// ResetPassword overwrites the password hash once the caller proves control
// of the email via a reset-purpose proof token.
func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	email := domain.NormalizeEmail(req.Email)

	if err := s.proofs.CheckProof(ctx, domain.PurposeReset, req.VerificationToken, email); err != nil {
		return err
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, u.UserID, string(hash)); err != nil {
		return err
	}

	slog.Info("password reset", "user_id", u.UserID)
	return nil
}
