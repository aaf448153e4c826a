package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials deliberately covers missing user, wrong password
	// and disabled account so login responses never reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrInvalidOTP   = errors.New("invalid or expired OTP")
	ErrInvalidToken = errors.New("invalid or expired verification token")

	ErrDuplicateEmail       = errors.New("email already registered")
	ErrDuplicateApplication = errors.New("already applied for this job")

	ErrPermissionDenied = errors.New("permission denied")
)
