package mail

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridMailer struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

func NewSendGridMailer(apiKey, from string) Mailer {
	return &sendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail("InsurancePro", from),
	}
}

func (m *sendGridMailer) SendEmail(to, subject, htmlBody string) error {
	msg := sgmail.NewSingleEmail(m.from, subject, sgmail.NewEmail("", to), "", htmlBody)
	resp, err := m.client.Send(msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	// SendGrid answers 202 Accepted on success; anything else carries an error body.
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
