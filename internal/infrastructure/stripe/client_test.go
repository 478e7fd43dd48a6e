package stripe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/insurancepro-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentIntent_SendsForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sk_test", user)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "1550050", r.PostForm.Get("amount"))
		assert.Equal(t, "inr", r.PostForm.Get("currency"))
		assert.Equal(t, "a@x.com", r.PostForm.Get("metadata[email]"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "pi_1", "client_secret": "pi_1_secret", "status": "requires_payment_method", "amount": 1550050, "currency": "inr",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test")
	pi, err := c.CreatePaymentIntent(context.Background(), 1550050, "inr", "desc", map[string]string{"email": "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "pi_1", pi.ID)
	assert.Equal(t, "pi_1_secret", pi.ClientSecret)
}

func TestCreatePaymentIntent_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"type":"card_error","message":"declined"}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "sk_test").CreatePaymentIntent(context.Background(), 100, "inr", "d", nil)
	assert.ErrorIs(t, err, domain.ErrPaymentProvider)
	assert.ErrorContains(t, err, "declined")
}

func TestRetrievePaymentIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents/pi_9", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_9","status":"succeeded","amount":100}`))
	}))
	defer srv.Close()

	pi, err := NewClient(srv.URL, "sk_test").RetrievePaymentIntent(context.Background(), "pi_9")
	require.NoError(t, err)
	assert.Equal(t, "succeeded", pi.Status)
}

func TestRetrievePaymentIntent_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"No such payment_intent"}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "sk_test").RetrievePaymentIntent(context.Background(), "pi_missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
