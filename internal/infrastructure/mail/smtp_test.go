package mail

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/insurancepro-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMailer_PicksTransport(t *testing.T) {
	_, isSMTP := NewMailer(&config.Config{SMTPHost: "localhost", SMTPPort: "1025"}).(*smtpMailer)
	assert.True(t, isSMTP)

	_, isSendGrid := NewMailer(&config.Config{SendGridAPIKey: "SG.key", SenderEmail: "noreply@x.com"}).(*sendGridMailer)
	assert.True(t, isSendGrid)
}

func TestSMTPMailer_SendEmail(t *testing.T) {
	m := NewSMTPMailer(&config.Config{
		SMTPHost:    "mail.local",
		SMTPPort:    "2525",
		SenderEmail: "noreply@x.com",
	}).(*smtpMailer)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	var gotAuth smtp.Auth
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, msg
		return nil
	}

	require.NoError(t, m.SendEmail("a@x.com", "Hello", "<p>hi</p>"))
	assert.Equal(t, "mail.local:2525", gotAddr)
	assert.Nil(t, gotAuth)
	assert.Equal(t, "noreply@x.com", gotFrom)
	assert.Equal(t, []string{"a@x.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Hello\r\n")
	assert.Contains(t, string(gotMsg), "text/html")
	assert.Contains(t, string(gotMsg), "<p>hi</p>")
}

func TestSMTPMailer_UsesAuthWhenConfigured(t *testing.T) {
	m := NewSMTPMailer(&config.Config{
		SMTPHost:     "mail.local",
		SMTPPort:     "587",
		SMTPUsername: "user",
		SMTPPassword: "pass",
	}).(*smtpMailer)

	var gotAuth smtp.Auth
	m.send = func(_ string, a smtp.Auth, _ string, _ []string, _ []byte) error {
		gotAuth = a
		return errors.New("boom")
	}
	assert.EqualError(t, m.SendEmail("a@x.com", "s", "b"), "boom")
	assert.NotNil(t, gotAuth)
}
