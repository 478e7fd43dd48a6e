package handler

import (
	"log/slog"
	"net/http"

	"github.com/insurancepro-api/internal/application/payment"
	"github.com/insurancepro-api/internal/domain"
	"github.com/insurancepro-api/internal/pkg/validate"
	"github.com/insurancepro-api/internal/transport/http/middleware"
)

// PaymentHandler handles payment intent creation and confirmation.
type PaymentHandler struct {
	svc payment.Service
}

func NewPaymentHandler(svc payment.Service) *PaymentHandler { return &PaymentHandler{svc: svc} }

func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePaymentIntentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		slog.Debug("create payment intent rejected", "err", err)
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	res, err := h.svc.CreateIntent(r.Context(), req)
	if err != nil {
		httpError(w, err, "Payment intent")
		return
	}
	writeJSON(w, http.StatusOK, PaymentIntentEnvelope{
		ClientSecret:    res.ClientSecret,
		PaymentIntentID: res.PaymentIntentID,
		Description:     res.Description,
	})
}

func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req domain.ConfirmPaymentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		slog.Debug("confirm payment rejected", "err", err)
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	req.Token = middleware.Token(r, req.Token)
	p, err := h.svc.Confirm(r.Context(), req)
	if err != nil {
		httpError(w, err, "Payment intent")
		return
	}
	writeJSON(w, http.StatusOK, PolicyEnvelope{Message: "Payment successful", Policy: p})
}
