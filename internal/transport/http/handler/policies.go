package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/insurancepro-api/internal/application/policy"
	"github.com/insurancepro-api/internal/domain"
	"github.com/insurancepro-api/internal/transport/http/middleware"
)

// ScopeResolver turns a token and/or email into the owner a query is filtered by.
type ScopeResolver interface {
	Resolve(token, email string) (domain.Scope, error)
}

// PolicyHandler handles policy lookup endpoints.
type PolicyHandler struct {
	svc    policy.Service
	access ScopeResolver
}

func NewPolicyHandler(svc policy.Service, access ScopeResolver) *PolicyHandler {
	return &PolicyHandler{svc: svc, access: access}
}

func (h *PolicyHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	scope, err := h.access.Resolve(middleware.Token(r, q.Get("token")), q.Get("email"))
	if err != nil {
		if !scopeError(w, err) {
			httpError(w, err, "Policy")
		}
		return
	}
	policies, err := h.svc.List(r.Context(), scope)
	if err != nil {
		httpError(w, err, "Policy")
		return
	}
	if len(policies) == 0 {
		writeJSON(w, http.StatusOK, PoliciesEnvelope{Policies: []domain.Policy{}, Message: "No policies found"})
		return
	}
	count := len(policies)
	writeJSON(w, http.StatusOK, PoliciesEnvelope{Policies: policies, Count: &count})
}

func (h *PolicyHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "policyId"))
	if err != nil {
		httpError(w, err, "Policy")
		return
	}
	writeJSON(w, http.StatusOK, PolicyEnvelope{Policy: p})
}

func (h *PolicyHandler) Document(w http.ResponseWriter, r *http.Request) {
	url, err := h.svc.DocumentURL(r.Context(), chi.URLParam(r, "policyId"))
	if err != nil {
		httpError(w, err, "Policy document")
		return
	}
	writeJSON(w, http.StatusOK, DocumentEnvelope{URL: url})
}
