package stripe

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/insurancepro-api/internal/domain"
)

// Client talks to the payment processor's REST API. Intent lifecycle,
// card handling and idempotency all stay on the processor's side.
type Client struct {
	http *resty.Client
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewClient(baseURL, secretKey string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth(secretKey, "").
		SetTimeout(15 * time.Second).
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

// CreatePaymentIntent creates an intent for amount expressed in the currency's
// smallest unit.
func (c *Client) CreatePaymentIntent(ctx context.Context, amount int64, currency, description string, metadata map[string]string) (*domain.PaymentIntent, error) {
	form := map[string]string{
		"amount":                             strconv.FormatInt(amount, 10),
		"currency":                           currency,
		"description":                        description,
		"statement_descriptor":               "INSURANCEPRO CAR INS",
		"automatic_payment_methods[enabled]": "true",
	}
	for k, v := range metadata {
		form["metadata["+k+"]"] = v
	}

	var out domain.PaymentIntent
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&out).
		SetError(&apiErr).
		Post("/v1/payment_intents")
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %v: %w", err, domain.ErrPaymentProvider)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("create payment intent: status %d %s: %w", resp.StatusCode(), apiErr.Error.Message, domain.ErrPaymentProvider)
	}
	return &out, nil
}

// RetrievePaymentIntent fetches the current state of an intent.
func (c *Client) RetrievePaymentIntent(ctx context.Context, id string) (*domain.PaymentIntent, error) {
	var out domain.PaymentIntent
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&out).
		SetError(&apiErr).
		Get("/v1/payment_intents/{id}")
	if err != nil {
		return nil, fmt.Errorf("retrieve payment intent: %v: %w", err, domain.ErrPaymentProvider)
	}
	if resp.StatusCode() == 404 {
		return nil, fmt.Errorf("payment intent %s: %w", id, domain.ErrNotFound)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("retrieve payment intent: status %d %s: %w", resp.StatusCode(), apiErr.Error.Message, domain.ErrPaymentProvider)
	}
	return &out, nil
}
