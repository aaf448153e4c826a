package account_test

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobboard-api/internal/application/account"
	"github.com/jobboard-api/internal/application/otp"
	"github.com/jobboard-api/internal/application/session"
	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/infrastructure/cache"
)

// memUserStore is an in-memory user store keyed by email, with the same
// uniqueness behavior the SQL store enforces via constraint.
type memUserStore struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*domain.User)}
}

func (s *memUserStore) CreateWithProfile(_ context.Context, u *domain.User, _ *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.Email]; exists {
		return domain.ErrDuplicateEmail
	}
	cp := *u
	s.users[u.Email] = &cp
	return nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) Get(_ context.Context, userID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.UserID == userID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *memUserStore) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.UserID == userID {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type inboxMailer struct {
	mu   sync.Mutex
	last string
}

func (m *inboxMailer) SendEmail(_, _, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = body
	return nil
}

var codeRe = regexp.MustCompile(`\d{6}`)

func (m *inboxMailer) lastCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	code := codeRe.FindString(m.last)
	require.NotEmpty(t, code)
	return code
}

// stubTokens stands in for the JWT provider; flow tests care about the wiring,
// not the signature.
type stubTokens struct{}

func (stubTokens) SignPair(userID, role string) (string, string, error) {
	return "access-" + userID, "refresh-" + userID, nil
}
func (stubTokens) VerifyRefreshUser(refreshToken string) (string, error) {
	var userID string
	if _, err := fmt.Sscanf(refreshToken, "refresh-%s", &userID); err != nil {
		return "", err
	}
	return userID, nil
}

// Request OTP, verify it, sign up with the proof token, then log in with the
// chosen password. This is the full registration path as the endpoints drive it.
func TestRegistrationFlow_EndToEnd(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := cache.NewRedis(client)

	inbox := &inboxMailer{}
	otpSvc := otp.NewService(store, inbox, 5*time.Minute, 10*time.Minute)

	users := newMemUserStore()
	accountSvc := account.NewService(users, otpSvc, stubTokens{})
	sessionSvc := session.NewService(users, stubTokens{})

	ctx := context.Background()

	require.NoError(t, otpSvc.RequestCode(ctx, "alice@example.com", domain.PurposeRegister))
	code := inbox.lastCode(t)

	proof, err := otpSvc.VerifyCode(ctx, "alice@example.com", code, domain.PurposeRegister)
	require.NoError(t, err)

	res, err := accountSvc.Signup(ctx, account.SignupRequest{
		Email:             "alice@example.com",
		FirstName:         "Alice",
		Role:              domain.RoleCandidate,
		Password:          "secret123",
		VerificationToken: proof,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", res.User.Email)
	assert.NotEmpty(t, res.AccessToken)

	login, err := sessionSvc.Login(ctx, session.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, res.User.UserID, login.User.UserID)

	// A second signup with the same proof token hits the email constraint,
	// not the token check.
	_, err = accountSvc.Signup(ctx, account.SignupRequest{
		Email:             "alice@example.com",
		Password:          "other456",
		VerificationToken: proof,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

// Request a reset OTP, verify it, reset the password, and confirm the old
// password stops working while the new one logs in.
func TestPasswordResetFlow_EndToEnd(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := cache.NewRedis(client)

	inbox := &inboxMailer{}
	otpSvc := otp.NewService(store, inbox, 5*time.Minute, 10*time.Minute)

	users := newMemUserStore()
	accountSvc := account.NewService(users, otpSvc, stubTokens{})
	sessionSvc := session.NewService(users, stubTokens{})

	ctx := context.Background()

	// Register first.
	require.NoError(t, otpSvc.RequestCode(ctx, "bob@example.com", domain.PurposeRegister))
	proof, err := otpSvc.VerifyCode(ctx, "bob@example.com", inbox.lastCode(t), domain.PurposeRegister)
	require.NoError(t, err)
	_, err = accountSvc.Signup(ctx, account.SignupRequest{
		Email:             "bob@example.com",
		Password:          "oldsecret",
		VerificationToken: proof,
	})
	require.NoError(t, err)

	// A register-purpose proof must not authorize a reset.
	err = accountSvc.ResetPassword(ctx, account.ResetPasswordRequest{
		Email:             "bob@example.com",
		VerificationToken: proof,
		NewPassword:       "newsecret",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	require.NoError(t, otpSvc.RequestCode(ctx, "bob@example.com", domain.PurposeReset))
	resetProof, err := otpSvc.VerifyCode(ctx, "bob@example.com", inbox.lastCode(t), domain.PurposeReset)
	require.NoError(t, err)

	require.NoError(t, accountSvc.ResetPassword(ctx, account.ResetPasswordRequest{
		Email:             "bob@example.com",
		VerificationToken: resetProof,
		NewPassword:       "newsecret",
	}))

	_, err = sessionSvc.Login(ctx, session.LoginRequest{Email: "bob@example.com", Password: "oldsecret"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	login, err := sessionSvc.Login(ctx, session.LoginRequest{Email: "bob@example.com", Password: "newsecret"})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", login.User.Email)
}
