package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/insurancepro-api/internal/domain"
	"github.com/insurancepro-api/internal/pkg/id"
)

const (
	otpMin = 100000
	otpMax = 999999
)

// UserStore is the slice of the identity store the OTP flow needs.
type UserStore interface {
	UpsertOTP(ctx context.Context, email, newUserID, code string, expiresAt, now time.Time) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	CompleteOTP(ctx context.Context, email, code string, now time.Time) error
	IncrementAttempts(ctx context.Context, email string) error
	ClearOTP(ctx context.Context, email string) error
}

type Mailer interface {
	SendEmail(to, subject, htmlBody string) error
}

type TokenSigner interface {
	Sign(userID, email string) (string, error)
}

// VerifyResult is returned on a successful OTP verification.
type VerifyResult struct {
	Token string
	User  *domain.User
}

type Service interface {
	SendOTP(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, email, code string) (*VerifyResult, error)
}

// ServiceDeps bundles the collaborators and knobs of the OTP flow.
// Now and GenerateCode default to the wall clock and crypto/rand.
type ServiceDeps struct {
	UserRepo               UserStore
	Mailer                 Mailer
	JWTProvider            TokenSigner
	OTPExpiry              time.Duration
	MaxAttempts            int
	ClearOnDeliveryFailure bool
	Now                    func() time.Time
	GenerateCode           func() (string, error)
}

type service struct {
	ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.GenerateCode == nil {
		deps.GenerateCode = GenerateCode
	}
	return &service{ServiceDeps: deps}
}

// GenerateCode returns a 6-digit code drawn uniformly from [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+otpMin), nil
}

// NormalizeEmail is the natural-key form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SendOTP issues a fresh code for email and mails it. The record is written
// before delivery is attempted; when delivery fails the code stays stored
// unless ClearOnDeliveryFailure is set.
func (s *service) SendOTP(ctx context.Context, email string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return "", fmt.Errorf("email is required: %w", domain.ErrBadRequest)
	}

	code, err := s.GenerateCode()
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	now := s.Now().UTC()
	if _, err := s.UserRepo.UpsertOTP(ctx, email, id.New(), code, now.Add(s.OTPExpiry), now); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}

	if err := s.Mailer.SendEmail(email, otpSubject, otpEmailBody(code, s.OTPExpiry)); err != nil {
		slog.Error("failed to send otp email", "email", email, "err", err)
		if s.ClearOnDeliveryFailure {
			if cErr := s.UserRepo.ClearOTP(ctx, email); cErr != nil {
				slog.Warn("failed to clear undelivered otp", "email", email, "err", cErr)
			}
		}
		return "", fmt.Errorf("send otp email: %w", domain.ErrDeliveryFailure)
	}
	slog.Info("otp sent", "email", email)
	return email, nil
}

// VerifyOTP checks code against the pending challenge for email and, on
// success, marks the user verified and mints a bearer token.
// An instant exactly equal to the expiry is still accepted.
func (s *service) VerifyOTP(ctx context.Context, email, code string) (*VerifyResult, error) {
	email = NormalizeEmail(email)
	if email == "" || code == "" {
		return nil, fmt.Errorf("email and otp are required: %w", domain.ErrBadRequest)
	}

	u, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}

	now := s.Now().UTC()
	if u.OTPExpiresAt != nil && now.After(*u.OTPExpiresAt) {
		return nil, fmt.Errorf("otp has expired: %w", domain.ErrExpired)
	}
	if s.MaxAttempts > 0 && u.OTPAttempts >= s.MaxAttempts {
		return nil, fmt.Errorf("otp attempts exhausted: %w", domain.ErrTooManyAttempts)
	}
	if u.OTPCode == nil || *u.OTPCode != code {
		if s.MaxAttempts > 0 && u.OTPCode != nil {
			if err := s.UserRepo.IncrementAttempts(ctx, email); err != nil {
				slog.Warn("failed to record otp attempt", "email", email, "err", err)
			}
		}
		return nil, fmt.Errorf("invalid otp: %w", domain.ErrInvalid)
	}

	if err := s.UserRepo.CompleteOTP(ctx, email, code, now); err != nil {
		return nil, err
	}
	u.IsVerified = true
	u.OTPCode = nil
	u.OTPExpiresAt = nil
	u.OTPAttempts = 0
	u.UpdatedAt = now

	token, err := s.JWTProvider.Sign(u.UserID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &VerifyResult{Token: token, User: u}, nil
}
