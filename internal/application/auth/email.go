package auth

import (
	"fmt"
	"time"
)

const otpSubject = "Your Car Insurance Login OTP"

func otpEmailBody(code string, lifetime time.Duration) string {
	minutes := int(lifetime.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f6f7f8;">
  <div style="background-color: white; border-radius: 12px; padding: 30px; text-align: center;">
    <h2 style="color: #0d141b; margin: 0 0 10px 0;">Welcome to InsurancePro</h2>
    <p style="color: #4c739a; margin: 0 0 20px 0;">Your OTP for login is:</p>
    <div style="background-color: #137fec; color: white; font-size: 36px; font-weight: bold; letter-spacing: 8px; padding: 20px; border-radius: 8px; font-family: monospace;">%s</div>
    <p style="color: #4c739a; margin: 20px 0 0 0;">This OTP will expire in %d minutes.</p>
    <p style="color: #999; font-size: 12px; margin-top: 20px;">If you didn't request this, please ignore this email.</p>
  </div>
</div>`, code, minutes)
}
