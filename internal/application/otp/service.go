package otp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/infrastructure/cache"
	"github.com/jobboard-api/internal/infrastructure/smtp"
	pkgtoken "github.com/jobboard-api/internal/pkg/token"
)

const codeLength = 6

// Service issues and verifies one-time codes, and mints the proof tokens
// that authorize signup and password reset.
type Service interface {
	// RequestCode generates a code for (email, purpose), caches it and
	// emails it. A repeat request overwrites the previous code, so only the
	// latest one is verifiable. It succeeds whether or not an account
	// exists for the address, to avoid account enumeration.
	RequestCode(ctx context.Context, email, purpose string) error

	// VerifyCode checks the submitted code and, on match, mints a proof
	// token bound to (email, purpose). Absent, expired or mismatched codes
	// yield ErrInvalidOTP.
	VerifyCode(ctx context.Context, email, code, purpose string) (string, error)

	// CheckProof verifies that token was minted for email under purpose.
	// The token is read, not consumed: it stays valid until its TTL expires.
	CheckProof(ctx context.Context, purpose, token, email string) error
}

type service struct {
	cache    cache.Store
	mailer   smtp.Mailer
	codeTTL  time.Duration
	proofTTL time.Duration
}

func NewService(cacheStore cache.Store, mailer smtp.Mailer, codeTTL, proofTTL time.Duration) Service {
	return &service{
		cache:    cacheStore,
		mailer:   mailer,
		codeTTL:  codeTTL,
		proofTTL: proofTTL,
	}
}

func codeKey(purpose, email string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, email)
}

func proofKey(purpose, token string) string {
	return fmt.Sprintf("verified:%s:%s", purpose, token)
}

func (s *service) RequestCode(ctx context.Context, email, purpose string) error {
	if !domain.ValidPurpose(purpose) {
		return fmt.Errorf("unknown purpose %q: %w", purpose, domain.ErrBadRequest)
	}
	email = domain.NormalizeEmail(email)

	code, err := pkgtoken.NewCode(codeLength)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, codeKey(purpose, email), code, s.codeTTL); err != nil {
		return fmt.Errorf("store OTP: %w", err)
	}

	subject := "Your verification code"
	body := fmt.Sprintf("Your OTP is %s. It is valid for %d minutes.", code, int(s.codeTTL.Minutes()))
	if err := s.mailer.SendEmail(email, subject, body); err != nil {
		return fmt.Errorf("send OTP email: %w", err)
	}
	slog.Info("OTP issued", "purpose", purpose)
	return nil
}

func (s *service) VerifyCode(ctx context.Context, email, code, purpose string) (string, error) {
	if !domain.ValidPurpose(purpose) {
		return "", fmt.Errorf("unknown purpose %q: %w", purpose, domain.ErrBadRequest)
	}
	email = domain.NormalizeEmail(email)

	stored, ok, err := s.cache.Get(ctx, codeKey(purpose, email))
	if err != nil {
		return "", fmt.Errorf("read OTP: %w", err)
	}
	if !ok || stored != code {
		return "", domain.ErrInvalidOTP
	}

	proof := pkgtoken.NewProofToken()
	if err := s.cache.Set(ctx, proofKey(purpose, proof), email, s.proofTTL); err != nil {
		return "", fmt.Errorf("store proof token: %w", err)
	}
	return proof, nil
}

func (s *service) CheckProof(ctx context.Context, purpose, token, email string) error {
	stored, ok, err := s.cache.Get(ctx, proofKey(purpose, token))
	if err != nil {
		return fmt.Errorf("read proof token: %w", err)
	}
	if !ok || stored != domain.NormalizeEmail(email) {
		return domain.ErrInvalidToken
	}
	return nil
}
