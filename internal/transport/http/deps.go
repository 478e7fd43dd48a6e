package http

import (
	"time"

	"github.com/insurancepro-api/internal/application/auth"
	"github.com/insurancepro-api/internal/application/notification"
	"github.com/insurancepro-api/internal/application/payment"
	"github.com/insurancepro-api/internal/application/policy"
	jwtinfra "github.com/insurancepro-api/internal/infrastructure/jwt"
)

// PolicyRepository is the slice of the policy store the router wires into
// both the purchase flow and the lookup endpoints.
type PolicyRepository interface {
	payment.PolicyStore
	policy.PolicyStore
}

// NotificationRepository is the notification store used by the purchase flow
// and the inbox endpoints.
type NotificationRepository interface {
	payment.NotificationStore
	notification.NotificationStore
}

// DocumentStore archives and signs policy documents.
type DocumentStore interface {
	payment.DocumentStore
	policy.DocumentSigner
}

// Deps holds all infrastructure dependencies for the router.
// Publisher may be nil, which disables SNS fan-out.
type Deps struct {
	UserRepo         auth.UserStore
	PolicyRepo       PolicyRepository
	NotificationRepo NotificationRepository
	CounterRepo      payment.Counter
	Documents        DocumentStore
	Publisher        payment.Publisher
	Payments         payment.PaymentProcessor
	Mailer           auth.Mailer
	JWTProvider      *jwtinfra.Provider
	// Now and GenerateCode override the clock and OTP generator in tests.
	Now          func() time.Time
	GenerateCode func() (string, error)
}
