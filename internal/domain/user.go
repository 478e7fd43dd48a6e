package domain

import "time"

// User is the identity record keyed by its lowercased email.
// OTPCode and OTPExpiresAt are nil when no challenge is pending.
type User struct {
	Email        string     `json:"email" dynamodbav:"email"`
	UserID       string     `json:"id" dynamodbav:"user_id"`
	OTPCode      *string    `json:"-" dynamodbav:"otp_code"`
	OTPExpiresAt *time.Time `json:"-" dynamodbav:"otp_expires_at"`
	OTPAttempts  int        `json:"-" dynamodbav:"otp_attempts"`
	IsVerified   bool       `json:"isVerified" dynamodbav:"is_verified"`
	CreatedAt    time.Time  `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" dynamodbav:"updated_at"`
}

type SendOTPRequest struct {
	Email string `json:"email" validate:"required"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}
