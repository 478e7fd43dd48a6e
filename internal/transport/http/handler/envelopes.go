package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/insurancepro-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper. Every error response uses it.
type MessageEnvelope struct {
	Message string `json:"message"`
}

// SendOTPEnvelope is returned once an OTP email has been sent.
type SendOTPEnvelope struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// SafeUser is the public view of an identity record.
type SafeUser struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	IsVerified bool   `json:"isVerified"`
}

// LoginEnvelope wraps a successful OTP verification.
type LoginEnvelope struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    *SafeUser `json:"user"`
}

type QuotesEnvelope struct {
	Quotes []domain.Quote `json:"quotes"`
}

type PaymentIntentEnvelope struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	Description     string `json:"description"`
}

type PolicyEnvelope struct {
	Message string         `json:"message,omitempty"`
	Policy  *domain.Policy `json:"policy"`
}

type PoliciesEnvelope struct {
	Policies []domain.Policy `json:"policies"`
	Count    *int            `json:"count,omitempty"`
	Message  string          `json:"message,omitempty"`
}

type DocumentEnvelope struct {
	URL string `json:"url"`
}

type NotificationsEnvelope struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
	Count         int                   `json:"count"`
}

type NotificationEnvelope struct {
	Message      string               `json:"message"`
	Notification *domain.Notification `json:"notification"`
}

type MarkAllEnvelope struct {
	Message string `json:"message"`
	Updated int    `json:"updated"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Message: msg})
}

// httpError maps a service error to a status code and a short client-facing
// message. resource names the thing a NotFound refers to. Unclassified
// errors are logged and reported as a bare 500.
func httpError(w http.ResponseWriter, err error, resource string) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, domain.ErrExpired):
		writeError(w, http.StatusBadRequest, "OTP has expired")
	case errors.Is(err, domain.ErrInvalid):
		writeError(w, http.StatusBadRequest, "Invalid OTP")
	case errors.Is(err, domain.ErrTooManyAttempts):
		writeError(w, http.StatusTooManyRequests, "Too many invalid attempts, request a new OTP")
	case errors.Is(err, domain.ErrPaymentIncomplete):
		writeError(w, http.StatusBadRequest, "Payment not completed")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, domain.ErrDeliveryFailure):
		writeError(w, http.StatusInternalServerError, "Failed to send OTP email")
	case errors.Is(err, domain.ErrPaymentProvider):
		slog.Error("payment provider error", "err", err)
		writeError(w, http.StatusBadGateway, "Payment provider error")
	default:
		slog.Error("unhandled error", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// scopeError writes the resolver's own rejections, which read differently
// from the generic mapping. It reports whether a response was written.
func scopeError(w http.ResponseWriter, err error) bool {
	if errors.Is(err, domain.ErrBadRequest) {
		writeError(w, http.StatusBadRequest, "Email or token is required")
		return true
	}
	return false
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
