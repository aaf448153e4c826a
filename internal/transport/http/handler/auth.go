package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jobboard-api/internal/application/account"
	"github.com/jobboard-api/internal/application/otp"
	"github.com/jobboard-api/internal/application/session"
	"github.com/jobboard-api/internal/pkg/validate"
)

// AuthHandler handles the OTP, signup, login and password-reset endpoints.
type AuthHandler struct {
	otpSvc     otp.Service
	accountSvc account.Service
	sessionSvc session.Service
}

func NewAuthHandler(otpSvc otp.Service, accountSvc account.Service, sessionSvc session.Service) *AuthHandler {
	return &AuthHandler{otpSvc: otpSvc, accountSvc: accountSvc, sessionSvc: sessionSvc}
}

type requestOTPRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Purpose string `json:"purpose" validate:"required,oneof=register reset"`
}

func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req requestOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.otpSvc.RequestCode(r.Context(), req.Email, req.Purpose); err != nil {
		httpError(w, err)
		return
	}
	// The acknowledgment is identical whether or not an account exists for
	// the address.
	writeJSON(w, http.StatusOK, MessageEnvelope{
		Message: fmt.Sprintf("OTP has been sent to %s. It is valid for 5 minutes.", req.Email),
	})
}

type verifyOTPRequest struct {
	Email   string `json:"email" validate:"required,email"`
	OTP     string `json:"otp" validate:"required,len=6"`
	Purpose string `json:"purpose" validate:"required,oneof=register reset"`
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	token, err := h.otpSvc.VerifyCode(r.Context(), req.Email, req.OTP, req.Purpose)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VerifyOTPEnvelope{
		Message:           "OTP verified successfully.",
		VerificationToken: token,
	})
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req account.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.accountSvc.Signup(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, AuthEnvelope{
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		Next:         "/v1/profile",
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req session.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.sessionSvc.Login(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{
		User:             result.User,
		AccessToken:      result.AccessToken,
		RefreshToken:     result.RefreshToken,
		ProfileURL:       "/v1/profile",
		PublicProfileURL: fmt.Sprintf("/v1/users/%s/profile", result.User.UserID),
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
		writeError(w, http.StatusBadRequest, "refresh required")
		return
	}
	access, err := h.sessionSvc.Refresh(r.Context(), req.Refresh)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{AccessToken: access})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req account.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.accountSvc.ResetPassword(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Password has been reset successfully."})
}
