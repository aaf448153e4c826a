package domain

import (
	"strings"
	"time"
)

const (
	RoleCandidate = "candidate"
	RoleEmployer  = "employer"
)

// User is the identity record behind every account. Role is fixed at signup
// and selects which profile record exists for the user.
type User struct {
	UserID        string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Phone         string    `json:"phone_number"`
	Role          string    `json:"user_type"`
	PictureFileID *string   `json:"profile_picture_file_id,omitempty"`
	Active        bool      `json:"is_active"`
	CreatedAt     time.Time `json:"date_joined"`
	UpdatedAt     time.Time `json:"-"`
}

// NormalizeEmail lowercases and trims an email address so lookups and the
// uniqueness constraint are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
