package account

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobboard-api/internal/domain"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) CreateWithProfile(ctx context.Context, u *domain.User, p *domain.Profile) error {
	return m.Called(ctx, u, p).Error(0)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

type mockProofChecker struct{ mock.Mock }

func (m *mockProofChecker) CheckProof(ctx context.Context, purpose, token, email string) error {
	return m.Called(ctx, purpose, token, email).Error(0)
}

type mockTokenIssuer struct{ mock.Mock }

func (m *mockTokenIssuer) SignPair(userID, role string) (string, string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.String(1), args.Error(2)
}

// --- Signup ---

func TestSignup_InvalidProof(t *testing.T) {
	pc := &mockProofChecker{}
	pc.On("CheckProof", mock.Anything, domain.PurposeRegister, "bad-token", "a@b.com").
		Return(domain.ErrInvalidToken)

	svc := NewService(nil, pc, nil)
	_, err := svc.Signup(context.Background(), SignupRequest{
		Email:             "a@b.com",
		Password:          "secret123",
		VerificationToken: "bad-token",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestSignup_DefaultsToCandidate(t *testing.T) {
	us := &mockUserStore{}
	pc := &mockProofChecker{}
	ti := &mockTokenIssuer{}

	pc.On("CheckProof", mock.Anything, domain.PurposeRegister, "tok", "a@b.com").Return(nil)
	us.On("CreateWithProfile", mock.Anything,
		mock.MatchedBy(func(u *domain.User) bool { return u.Role == domain.RoleCandidate }),
		mock.MatchedBy(func(p *domain.Profile) bool { return p.Kind == domain.RoleCandidate }),
	).Return(nil)
	ti.On("SignPair", mock.Anything, domain.RoleCandidate).Return("access", "refresh", nil)

	svc := NewService(us, pc, ti)
	res, err := svc.Signup(context.Background(), SignupRequest{
		Email:             "A@B.com",
		Password:          "secret123",
		VerificationToken: "tok",
	})

	require.NoError(t, err)
	assert.Equal(t, "a@b.com", res.User.Email)
	assert.Equal(t, "access", res.AccessToken)
	assert.Equal(t, "refresh", res.RefreshToken)
	us.AssertExpectations(t)
}

func TestSignup_EmployerProfileMatchesRole(t *testing.T) {
	us := &mockUserStore{}
	pc := &mockProofChecker{}
	ti := &mockTokenIssuer{}

	pc.On("CheckProof", mock.Anything, domain.PurposeRegister, "tok", "hr@corp.com").Return(nil)
	us.On("CreateWithProfile", mock.Anything,
		mock.MatchedBy(func(u *domain.User) bool { return u.Role == domain.RoleEmployer }),
		mock.MatchedBy(func(p *domain.Profile) bool {
			return p.Kind == domain.RoleEmployer && p.Employer != nil && p.Candidate == nil
		}),
	).Return(nil)
	ti.On("SignPair", mock.Anything, domain.RoleEmployer).Return("access", "refresh", nil)

	svc := NewService(us, pc, ti)
	res, err := svc.Signup(context.Background(), SignupRequest{
		Email:             "hr@corp.com",
		Role:              domain.RoleEmployer,
		Password:          "secret123",
		VerificationToken: "tok",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployer, res.User.Role)
	us.AssertExpectations(t)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	us := &mockUserStore{}
	pc := &mockProofChecker{}

	pc.On("CheckProof", mock.Anything, domain.PurposeRegister, "tok", "a@b.com").Return(nil)
	us.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ErrDuplicateEmail)

	svc := NewService(us, pc, nil)
	_, err := svc.Signup(context.Background(), SignupRequest{
		Email:             "a@b.com",
		Password:          "secret123",
		VerificationToken: "tok",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateEmail))
}

func TestSignup_PasswordIsHashed(t *testing.T) {
	us := &mockUserStore{}
	pc := &mockProofChecker{}
	ti := &mockTokenIssuer{}

	pc.On("CheckProof", mock.Anything, domain.PurposeRegister, "tok", "a@b.com").Return(nil)
	us.On("CreateWithProfile", mock.Anything,
		mock.MatchedBy(func(u *domain.User) bool {
			return u.PasswordHash != "secret123" &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
		}),
		mock.Anything,
	).Return(nil)
	ti.On("SignPair", mock.Anything, mock.Anything).Return("access", "refresh", nil)

	svc := NewService(us, pc, ti)
	_, err := svc.Signup(context.Background(), SignupRequest{
		Email:             "a@b.com",
		Password:          "secret123",
		VerificationToken: "tok",
	})

	require.NoError(t, err)
	us.AssertExpectations(t)
}

// --- ResetPassword ---

func TestResetPassword_InvalidProof(t *testing.T) {
	pc := &mockProofChecker{}
	pc.On("CheckProof", mock.Anything, domain.PurposeReset, "bad", "a@b.com").
		Return(domain.ErrInvalidToken)

	svc := NewService(nil, pc, nil)
	err := svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email:             "a@b.com",
		VerificationToken: "bad",
		NewPassword:       "newsecret",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestResetPassword_UserNotFound(t *testing.T) {
	us := &mockUserStore{}
	pc := &mockProofChecker{}

	pc.On("CheckProof", mock.Anything, domain.PurposeReset, "tok", "ghost@b.com").Return(nil)
	us.On("GetByEmail", mock.Anything, "ghost@b.com").Return(nil, domain.ErrUserNotFound)

	svc := NewService(us, pc, nil)
	err := svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email:             "ghost@b.com",
		VerificationToken: "tok",
		NewPassword:       "newsecret",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
	us.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestResetPassword_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	pc := &mockProofChecker{}

	pc.On("CheckProof", mock.Anything, domain.PurposeReset, "tok", "a@b.com").Return(nil)
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{UserID: "u1", Email: "a@b.com"}, nil)
	us.On("UpdatePassword", mock.Anything, "u1",
		mock.MatchedBy(func(hash string) bool {
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte("newsecret")) == nil
		}),
	).Return(nil)

	svc := NewService(us, pc, nil)
	err := svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email:             "A@B.COM",
		VerificationToken: "tok",
		NewPassword:       "newsecret",
	})

	require.NoError(t, err)
	us.AssertExpectations(t)
	pc.AssertExpectations(t)
}
