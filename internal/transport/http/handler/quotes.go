package handler

import (
	"net/http"

	"github.com/insurancepro-api/internal/application/quote"
	"github.com/insurancepro-api/internal/domain"
	"github.com/insurancepro-api/internal/pkg/validate"
)

type QuoteHandler struct {
	svc quote.Service
}

func NewQuoteHandler(svc quote.Service) *QuoteHandler { return &QuoteHandler{svc: svc} }

func (h *QuoteHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req domain.QuoteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Car year, make and model are required")
		return
	}
	quotes, err := h.svc.Generate(req)
	if err != nil {
		httpError(w, err, "Quote")
		return
	}
	writeJSON(w, http.StatusOK, QuotesEnvelope{Quotes: quotes})
}
