package handler

import (
	"net/http"

	"github.com/insurancepro-api/internal/application/auth"
	"github.com/insurancepro-api/internal/domain"
	"github.com/insurancepro-api/internal/pkg/validate"
)

// AuthHandler handles the OTP login endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}
	email, err := h.svc.SendOTP(r.Context(), req.Email)
	if err != nil {
		httpError(w, err, "User")
		return
	}
	writeJSON(w, http.StatusOK, SendOTPEnvelope{Message: "OTP sent successfully to your email", Email: email})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}
	res, err := h.svc.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		httpError(w, err, "User")
		return
	}
	writeJSON(w, http.StatusOK, LoginEnvelope{
		Message: "Login successful",
		Token:   res.Token,
		User:    &SafeUser{ID: res.User.UserID, Email: res.User.Email, IsVerified: res.User.IsVerified},
	})
}
