package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/insurancepro-api/internal/domain"
	"github.com/insurancepro-api/internal/pkg/id"
)

const policyCounter = "policy_number"

type PaymentProcessor interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency, description string, metadata map[string]string) (*domain.PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, id string) (*domain.PaymentIntent, error)
}

type PolicyStore interface {
	Put(ctx context.Context, p *domain.Policy) error
	SetDocumentKey(ctx context.Context, policyID, key string) error
}

type NotificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
}

type Counter interface {
	Next(ctx context.Context, name string) (int64, error)
}

type DocumentStore interface {
	Archive(ctx context.Context, key string, body []byte, contentType string) error
}

type Publisher interface {
	Publish(ctx context.Context, subject, message string) error
}

// TokenSubject extracts the user id from an optional bearer token.
type TokenSubject interface {
	UserID(token string) string
}

// IntentResult is what the client needs to complete a payment.
type IntentResult struct {
	ClientSecret    string
	PaymentIntentID string
	Description     string
}

type Service interface {
	CreateIntent(ctx context.Context, req domain.CreatePaymentIntentRequest) (*IntentResult, error)
	Confirm(ctx context.Context, req domain.ConfirmPaymentRequest) (*domain.Policy, error)
}

// ServiceDeps wires the payment flow. Documents and Publisher are optional.
type ServiceDeps struct {
	Processor      PaymentProcessor
	PolicyRepo     PolicyStore
	Notifications  NotificationStore
	Counters       Counter
	Documents      DocumentStore
	Publisher      Publisher
	Tokens         TokenSubject
	Currency       string
	PolicyValidity time.Duration
	Now            func() time.Time
}

type service struct {
	ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Currency == "" {
		deps.Currency = "inr"
	}
	return &service{ServiceDeps: deps}
}

func describe(car domain.CarDetails, plan domain.PlanDetails) string {
	return fmt.Sprintf("Car Insurance Policy - %d %s %s - %s", car.Year, car.Make, car.Model, plan.Type)
}

func (s *service) CreateIntent(ctx context.Context, req domain.CreatePaymentIntentRequest) (*IntentResult, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Amount <= 0 || req.CarDetails == nil || req.PlanDetails == nil {
		return nil, fmt.Errorf("missing required fields: %w", domain.ErrBadRequest)
	}

	description := describe(*req.CarDetails, *req.PlanDetails)
	metadata := map[string]string{
		"email":    email,
		"carMake":  req.CarDetails.Make,
		"carModel": req.CarDetails.Model,
		"carYear":  strconv.Itoa(int(req.CarDetails.Year)),
		"planType": req.PlanDetails.Type,
		"coverage": req.PlanDetails.Coverage,
	}
	minor := int64(math.Round(req.Amount * 100))

	intent, err := s.Processor.CreatePaymentIntent(ctx, minor, s.Currency, description, metadata)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	slog.Info("payment intent created", "payment_intent_id", intent.ID, "email", email, "amount", minor)
	return &IntentResult{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Description:     description,
	}, nil
}

// Confirm records the policy for a payment the processor reports as
// succeeded. The archived document and the SNS fan-out are best-effort.
func (s *service) Confirm(ctx context.Context, req domain.ConfirmPaymentRequest) (*domain.Policy, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if req.PaymentIntentID == "" || email == "" || req.CarDetails == nil || req.PlanDetails == nil {
		return nil, fmt.Errorf("missing required fields: %w", domain.ErrBadRequest)
	}

	intent, err := s.Processor.RetrievePaymentIntent(ctx, req.PaymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment intent: %w", err)
	}
	if intent.Status != domain.PaymentSucceeded {
		return nil, fmt.Errorf("payment intent %s is %s: %w", intent.ID, intent.Status, domain.ErrPaymentIncomplete)
	}

	seq, err := s.Counters.Next(ctx, policyCounter)
	if err != nil {
		return nil, fmt.Errorf("next policy number: %w", err)
	}

	now := s.Now().UTC()
	amount := req.Amount
	if amount <= 0 {
		amount = float64(intent.Amount) / 100
	}
	p := &domain.Policy{
		PolicyID:        id.New(),
		PolicyNumber:    fmt.Sprintf("POL-%d-%d", now.UnixMilli(), seq),
		Email:           email,
		CarDetails:      *req.CarDetails,
		PlanDetails:     *req.PlanDetails,
		Amount:          amount,
		PaymentStatus:   domain.PaymentSucceeded,
		PaymentIntentID: req.PaymentIntentID,
		ValidFrom:       now,
		ValidUpto:       now.Add(s.PolicyValidity),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if s.Tokens != nil {
		if uid := s.Tokens.UserID(req.Token); uid != "" {
			p.UserID = &uid
		}
	}

	if err := s.PolicyRepo.Put(ctx, p); err != nil {
		return nil, fmt.Errorf("save policy: %w", err)
	}
	s.archive(ctx, p)

	for _, n := range policyNotifications(p, now) {
		if err := s.Notifications.Put(ctx, n); err != nil {
			return nil, fmt.Errorf("save %s notification: %w", n.Type, err)
		}
		s.publish(ctx, n)
	}

	slog.Info("policy purchased", "policy_id", p.PolicyID, "policy_number", p.PolicyNumber, "email", email)
	return p, nil
}

// archive stores a saved policy as a JSON document and records its key.
func (s *service) archive(ctx context.Context, p *domain.Policy) {
	if s.Documents == nil {
		return
	}
	body, err := json.Marshal(p)
	if err != nil {
		slog.Warn("failed to encode policy document", "policy_id", p.PolicyID, "err", err)
		return
	}
	key := fmt.Sprintf("policies/%s/%s.json", p.PolicyID, p.PolicyNumber)
	if err := s.Documents.Archive(ctx, key, body, "application/json"); err != nil {
		slog.Warn("failed to archive policy document", "policy_id", p.PolicyID, "err", err)
		return
	}
	if err := s.PolicyRepo.SetDocumentKey(ctx, p.PolicyID, key); err != nil {
		slog.Warn("failed to record policy document key", "policy_id", p.PolicyID, "key", key, "err", err)
		return
	}
	p.DocumentKey = key
}

func (s *service) publish(ctx context.Context, n *domain.Notification) {
	if s.Publisher == nil {
		return
	}
	body, err := json.Marshal(n)
	if err != nil {
		slog.Warn("failed to encode notification", "notification_id", n.NotificationID, "err", err)
		return
	}
	if err := s.Publisher.Publish(ctx, n.Title, string(body)); err != nil {
		slog.Warn("failed to publish notification", "notification_id", n.NotificationID, "err", err)
	}
}

func policyNotifications(p *domain.Policy, now time.Time) []*domain.Notification {
	car := p.CarDetails
	meta := domain.NotificationMetadata{
		PolicyNumber:  p.PolicyNumber,
		CarDetails:    car,
		PlanType:      p.PlanDetails.Type,
		Amount:        p.Amount,
		PaymentStatus: domain.PaymentSucceeded,
	}
	// The purchase notice is stamped after the payment notice so that
	// newest-first listings show it on top.
	build := func(at time.Time, kind, title, message string) *domain.Notification {
		return &domain.Notification{
			NotificationID: id.New(),
			UserID:         p.UserID,
			Email:          p.Email,
			PolicyID:       p.PolicyID,
			Type:           kind,
			Title:          title,
			Message:        message,
			Status:         domain.NotificationUnread,
			Metadata:       meta,
			CreatedAt:      at,
			UpdatedAt:      at,
		}
	}

	return []*domain.Notification{
		build(now, domain.NotificationPaymentCompleted, "Payment Completed", fmt.Sprintf(
			"Payment of ₹%s has been successfully processed for your %d %s %s insurance policy.",
			formatRupees(p.Amount), car.Year, car.Make, car.Model)),
		build(now.Add(time.Millisecond), domain.NotificationPolicyPurchased, "Policy Purchased Successfully", fmt.Sprintf(
			"Your %s insurance policy for %d %s %s has been purchased. Policy Number: %s. Coverage: %s. Valid till %s.",
			p.PlanDetails.Type, car.Year, car.Make, car.Model, p.PolicyNumber, p.PlanDetails.Coverage, formatDate(p.ValidUpto))),
	}
}
