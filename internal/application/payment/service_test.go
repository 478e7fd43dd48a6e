package payment

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/insurancepro-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProcessor struct{ mock.Mock }

func (m *mockProcessor) CreatePaymentIntent(ctx context.Context, amount int64, currency, description string, metadata map[string]string) (*domain.PaymentIntent, error) {
	args := m.Called(ctx, amount, currency, description, metadata)
	pi, _ := args.Get(0).(*domain.PaymentIntent)
	return pi, args.Error(1)
}
func (m *mockProcessor) RetrievePaymentIntent(ctx context.Context, id string) (*domain.PaymentIntent, error) {
	args := m.Called(ctx, id)
	pi, _ := args.Get(0).(*domain.PaymentIntent)
	return pi, args.Error(1)
}

type mockPolicyStore struct{ mock.Mock }

func (m *mockPolicyStore) Put(ctx context.Context, p *domain.Policy) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockPolicyStore) SetDocumentKey(ctx context.Context, policyID, key string) error {
	return m.Called(ctx, policyID, key).Error(0)
}

type recordingNotifications struct {
	saved []*domain.Notification
	err   error
}

func (r *recordingNotifications) Put(_ context.Context, n *domain.Notification) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, n)
	return nil
}

type fixedCounter struct{ n int64 }

func (c *fixedCounter) Next(context.Context, string) (int64, error) { return c.n, nil }

type mockDocuments struct{ mock.Mock }

func (m *mockDocuments) Archive(ctx context.Context, key string, body []byte, contentType string) error {
	return m.Called(ctx, key, body, contentType).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, subject, message string) error {
	return m.Called(ctx, subject, message).Error(0)
}

type stubTokens map[string]string

func (s stubTokens) UserID(token string) string { return s[token] }

var (
	now  = time.Date(2024, 5, 10, 8, 30, 0, 0, time.UTC)
	car  = &domain.CarDetails{Make: "Honda", Model: "City", Year: 2021}
	plan = &domain.PlanDetails{Type: "Comprehensive", Coverage: "Full Coverage with Add-ons"}
)

// --- CreateIntent ---

func TestCreateIntent(t *testing.T) {
	proc := &mockProcessor{}
	proc.On("CreatePaymentIntent", mock.Anything, int64(2345050), "inr",
		"Car Insurance Policy - 2021 Honda City - Comprehensive",
		map[string]string{
			"email": "a@x.com", "carMake": "Honda", "carModel": "City", "carYear": "2021",
			"planType": "Comprehensive", "coverage": "Full Coverage with Add-ons",
		}).Return(&domain.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret"}, nil)

	svc := NewService(ServiceDeps{Processor: proc})
	res, err := svc.CreateIntent(context.Background(), domain.CreatePaymentIntentRequest{
		Email: "a@x.com", Amount: 23450.499, CarDetails: car, PlanDetails: plan,
	})

	require.NoError(t, err)
	assert.Equal(t, "pi_1", res.PaymentIntentID)
	assert.Equal(t, "pi_1_secret", res.ClientSecret)
	assert.Equal(t, "Car Insurance Policy - 2021 Honda City - Comprehensive", res.Description)
	proc.AssertExpectations(t)
}

func TestCreateIntent_MissingFields(t *testing.T) {
	proc := &mockProcessor{}
	svc := NewService(ServiceDeps{Processor: proc})
	cases := []domain.CreatePaymentIntentRequest{
		{Amount: 100, CarDetails: car, PlanDetails: plan},
		{Email: "a@x.com", CarDetails: car, PlanDetails: plan},
		{Email: "a@x.com", Amount: 100, PlanDetails: plan},
		{Email: "a@x.com", Amount: 100, CarDetails: car},
	}
	for _, req := range cases {
		_, err := svc.CreateIntent(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrBadRequest)
	}
	proc.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateIntent_ProcessorError(t *testing.T) {
	proc := &mockProcessor{}
	proc.On("CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrPaymentProvider)

	_, err := NewService(ServiceDeps{Processor: proc}).CreateIntent(context.Background(), domain.CreatePaymentIntentRequest{
		Email: "a@x.com", Amount: 10, CarDetails: car, PlanDetails: plan,
	})
	assert.ErrorIs(t, err, domain.ErrPaymentProvider)
}

// --- Confirm ---

func confirmDeps(proc *mockProcessor, policies *mockPolicyStore, notes *recordingNotifications) ServiceDeps {
	return ServiceDeps{
		Processor:      proc,
		PolicyRepo:     policies,
		Notifications:  notes,
		Counters:       &fixedCounter{n: 7},
		Tokens:         stubTokens{"good": "u1"},
		PolicyValidity: 365 * 24 * time.Hour,
		Now:            func() time.Time { return now },
	}
}

func confirmReq(token string) domain.ConfirmPaymentRequest {
	return domain.ConfirmPaymentRequest{
		PaymentIntentID: "pi_1", Email: "A@x.com", CarDetails: car, PlanDetails: plan,
		Amount: 25000, Token: token,
	}
}

func TestConfirm_CreatesPolicyAndNotifications(t *testing.T) {
	proc := &mockProcessor{}
	policies := &mockPolicyStore{}
	notes := &recordingNotifications{}
	proc.On("RetrievePaymentIntent", mock.Anything, "pi_1").
		Return(&domain.PaymentIntent{ID: "pi_1", Status: "succeeded", Amount: 2500000}, nil)
	policies.On("Put", mock.Anything, mock.AnythingOfType("*domain.Policy")).Return(nil)

	p, err := NewService(confirmDeps(proc, policies, notes)).Confirm(context.Background(), confirmReq("good"))
	require.NoError(t, err)

	assert.Equal(t, "POL-1715329800000-7", p.PolicyNumber)
	require.NotNil(t, p.UserID)
	assert.Equal(t, "u1", *p.UserID)
	assert.Equal(t, "a@x.com", p.Email)
	assert.Equal(t, domain.PaymentSucceeded, p.PaymentStatus)
	assert.Equal(t, "pi_1", p.PaymentIntentID)
	assert.Equal(t, now, p.ValidFrom)
	assert.Equal(t, now.Add(365*24*time.Hour), p.ValidUpto)
	assert.Empty(t, p.DocumentKey, "no document store configured")

	require.Len(t, notes.saved, 2)
	paid, bought := notes.saved[0], notes.saved[1]
	assert.Equal(t, domain.NotificationPaymentCompleted, paid.Type)
	assert.Equal(t, "Payment of ₹25,000 has been successfully processed for your 2021 Honda City insurance policy.", paid.Message)
	assert.Equal(t, domain.NotificationPolicyPurchased, bought.Type)
	assert.Equal(t, "Your Comprehensive insurance policy for 2021 Honda City has been purchased. "+
		"Policy Number: POL-1715329800000-7. Coverage: Full Coverage with Add-ons. Valid till 5/10/2025.", bought.Message)
	assert.True(t, bought.CreatedAt.After(paid.CreatedAt))
	for _, n := range notes.saved {
		assert.Equal(t, domain.NotificationUnread, n.Status)
		assert.Equal(t, p.PolicyID, n.PolicyID)
		assert.Equal(t, p.UserID, n.UserID)
		assert.Equal(t, p.PolicyNumber, n.Metadata.PolicyNumber)
		assert.Equal(t, 25000.0, n.Metadata.Amount)
	}
}

func TestConfirm_InvalidTokenLeavesUserIDUnset(t *testing.T) {
	proc := &mockProcessor{}
	policies := &mockPolicyStore{}
	proc.On("RetrievePaymentIntent", mock.Anything, "pi_1").Return(&domain.PaymentIntent{ID: "pi_1", Status: "succeeded"}, nil)
	policies.On("Put", mock.Anything, mock.Anything).Return(nil)

	p, err := NewService(confirmDeps(proc, policies, &recordingNotifications{})).Confirm(context.Background(), confirmReq("forged"))
	require.NoError(t, err)
	assert.Nil(t, p.UserID)
}

func TestConfirm_AmountFallsBackToIntent(t *testing.T) {
	proc := &mockProcessor{}
	policies := &mockPolicyStore{}
	proc.On("RetrievePaymentIntent", mock.Anything, "pi_1").Return(&domain.PaymentIntent{ID: "pi_1", Status: "succeeded", Amount: 1999950}, nil)
	policies.On("Put", mock.Anything, mock.Anything).Return(nil)

	req := confirmReq("")
	req.Amount = 0
	p, err := NewService(confirmDeps(proc, policies, &recordingNotifications{})).Confirm(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 19999.5, p.Amount)
}

func TestConfirm_PaymentNotSucceeded(t *testing.T) {
	proc := &mockProcessor{}
	policies := &mockPolicyStore{}
	proc.On("RetrievePaymentIntent", mock.Anything, "pi_1").Return(&domain.PaymentIntent{ID: "pi_1", Status: "requires_payment_method"}, nil)

	_, err := NewService(confirmDeps(proc, policies, &recordingNotifications{})).Confirm(context.Background(), confirmReq(""))
	assert.ErrorIs(t, err, domain.ErrPaymentIncomplete)
	policies.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestConfirm_MissingFields(t *testing.T) {
	proc := &mockProcessor{}
	req := confirmReq("")
	req.PaymentIntentID = ""
	_, err := NewService(confirmDeps(proc, &mockPolicyStore{}, &recordingNotifications{})).Confirm(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	proc.AssertNotCalled(t, "RetrievePaymentIntent", mock.Anything, mock.Anything)
}

func TestConfirm_UnknownIntent(t *testing.T) {
	proc := &mockProcessor{}
	proc.On("RetrievePaymentIntent", mock.Anything, "pi_1").Return(nil, domain.ErrNotFound)

	_, err := NewService(confirmDeps(proc, &mockPolicyStore{}, &recordingNotifications{})).Confirm(context.Background(), confirmReq(""))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirm_ArchivesAndPublishes(t *testing.T) {
	proc := &mockProcessor{}
	policies := &mockPolicyStore{}
	docs := &mockDocuments{}
	pub := &mockPublisher{}
	notes := &recordingNotifications{}
	proc.On("RetrievePaymentIntent", mock.Anything, "pi_1").Return(&domain.PaymentIntent{ID: "pi_1", Status: "succeeded"}, nil)
	docs.On("Archive", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(body []byte) bool {
		var p domain.Policy
		return json.Unmarshal(body, &p) == nil && p.PolicyNumber == "POL-1715329800000-7"
	}), "application/json").Return(nil)
	policies.On("Put", mock.Anything, mock.MatchedBy(func(p *domain.Policy) bool {
		return p.DocumentKey == ""
	})).Return(nil)
	policies.On("SetDocumentKey", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "policies/") && strings.HasSuffix(key, "/POL-1715329800000-7.json")
	})).Return(nil)
	pub.On("Publish", mock.Anything, "Payment Completed", mock.Anything).Return(nil)
	pub.On("Publish", mock.Anything, "Policy Purchased Successfully", mock.Anything).Return(errors.New("sns down"))

	deps := confirmDeps(proc, policies, notes)
	deps.Documents = docs
	deps.Publisher = pub
	p, err := NewService(deps).Confirm(context.Background(), confirmReq("good"))

	require.NoError(t, err, "publish failures are not fatal")
	assert.Contains(t, p.DocumentKey, p.PolicyID)
	assert.Len(t, notes.saved, 2)
	docs.AssertExpectations(t)
	policies.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestConfirm_PolicySaveFailureSkipsArchive(t *testing.T) {
	proc := &mockProcessor{}
	policies := &mockPolicyStore{}
	docs := &mockDocuments{}
	proc.On("RetrievePaymentIntent", mock.Anything, "pi_1").Return(&domain.PaymentIntent{ID: "pi_1", Status: "succeeded"}, nil)
	policies.On("Put", mock.Anything, mock.Anything).Return(errors.New("throttled"))

	deps := confirmDeps(proc, policies, &recordingNotifications{})
	deps.Documents = docs
	_, err := NewService(deps).Confirm(context.Background(), confirmReq(""))

	require.Error(t, err)
	docs.AssertNotCalled(t, "Archive", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirm_DocumentKeyFailureIsNotFatal(t *testing.T) {
	proc := &mockProcessor{}
	policies := &mockPolicyStore{}
	docs := &mockDocuments{}
	notes := &recordingNotifications{}
	proc.On("RetrievePaymentIntent", mock.Anything, "pi_1").Return(&domain.PaymentIntent{ID: "pi_1", Status: "succeeded"}, nil)
	policies.On("Put", mock.Anything, mock.Anything).Return(nil)
	docs.On("Archive", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	policies.On("SetDocumentKey", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("throttled"))

	deps := confirmDeps(proc, policies, notes)
	deps.Documents = docs
	p, err := NewService(deps).Confirm(context.Background(), confirmReq(""))

	require.NoError(t, err)
	assert.Empty(t, p.DocumentKey)
	assert.Len(t, notes.saved, 2)
}

func TestConfirm_ArchiveFailureIsNotFatal(t *testing.T) {
	proc := &mockProcessor{}
	policies := &mockPolicyStore{}
	docs := &mockDocuments{}
	proc.On("RetrievePaymentIntent", mock.Anything, "pi_1").Return(&domain.PaymentIntent{ID: "pi_1", Status: "succeeded"}, nil)
	docs.On("Archive", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("s3 down"))
	policies.On("Put", mock.Anything, mock.Anything).Return(nil)

	deps := confirmDeps(proc, policies, &recordingNotifications{})
	deps.Documents = docs
	p, err := NewService(deps).Confirm(context.Background(), confirmReq(""))
	require.NoError(t, err)
	assert.Empty(t, p.DocumentKey)
}

func TestConfirm_NotificationStoreFailure(t *testing.T) {
	proc := &mockProcessor{}
	policies := &mockPolicyStore{}
	proc.On("RetrievePaymentIntent", mock.Anything, "pi_1").Return(&domain.PaymentIntent{ID: "pi_1", Status: "succeeded"}, nil)
	policies.On("Put", mock.Anything, mock.Anything).Return(nil)

	_, err := NewService(confirmDeps(proc, policies, &recordingNotifications{err: errors.New("throttled")})).
		Confirm(context.Background(), confirmReq(""))
	assert.Error(t, err)
}
