package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jobboard-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthEnvelope wraps signup/login responses: the credential pair, the public
// user projection and navigation links.
type AuthEnvelope struct {
	User             *domain.User `json:"user,omitempty"`
	AccessToken      string       `json:"access,omitempty"`
	RefreshToken     string       `json:"refresh,omitempty"`
	ProfileURL       string       `json:"profile_url,omitempty"`
	PublicProfileURL string       `json:"public_profile_url,omitempty"`
	Next             string       `json:"next,omitempty"`
}

// VerifyOTPEnvelope carries the proof token minted on a successful
// verification.
type VerifyOTPEnvelope struct {
	Message           string `json:"message"`
	VerificationToken string `json:"verification_token"`
}

// ProfileEnvelope wraps an identity together with its role-specific profile.
type ProfileEnvelope struct {
	*domain.User
	Profile any `json:"profile"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps domain sentinel errors to HTTP status codes. Unrecognized
// errors become opaque 500s so infrastructure details never leak.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidOTP),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrPermissionDenied):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateEmail), errors.Is(err, domain.ErrDuplicateApplication):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
