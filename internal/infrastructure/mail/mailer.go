package mail

import "github.com/insurancepro-api/internal/config"

// Mailer sends HTML emails.
type Mailer interface {
	SendEmail(to, subject, htmlBody string) error
}

// NewMailer picks SendGrid when an API key is configured and falls back to
// plain SMTP otherwise (MailHog/Mailpit in development).
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SendGridAPIKey != "" {
		return NewSendGridMailer(cfg.SendGridAPIKey, cfg.SenderEmail)
	}
	return NewSMTPMailer(cfg)
}
