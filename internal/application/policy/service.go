package policy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/insurancepro-api/internal/domain"
)

const documentURLTTL = 15 * time.Minute

type PolicyStore interface {
	Get(ctx context.Context, policyID string) (*domain.Policy, error)
	ListByScope(ctx context.Context, scope domain.Scope) ([]domain.Policy, error)
}

type DocumentSigner interface {
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Service interface {
	List(ctx context.Context, scope domain.Scope) ([]domain.Policy, error)
	Get(ctx context.Context, policyID string) (*domain.Policy, error)
	DocumentURL(ctx context.Context, policyID string) (string, error)
}

type service struct {
	repo      PolicyStore
	documents DocumentSigner
}

func NewService(repo PolicyStore, documents DocumentSigner) Service {
	return &service{repo: repo, documents: documents}
}

func (s *service) List(ctx context.Context, scope domain.Scope) ([]domain.Policy, error) {
	policies, err := s.repo.ListByScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	if policies == nil {
		policies = []domain.Policy{}
	}
	return policies, nil
}

func (s *service) Get(ctx context.Context, policyID string) (*domain.Policy, error) {
	if strings.TrimSpace(policyID) == "" {
		return nil, fmt.Errorf("policy id is required: %w", domain.ErrBadRequest)
	}
	return s.repo.Get(ctx, policyID)
}

// DocumentURL returns a short-lived download link for the archived policy
// document.
func (s *service) DocumentURL(ctx context.Context, policyID string) (string, error) {
	p, err := s.Get(ctx, policyID)
	if err != nil {
		return "", err
	}
	if p.DocumentKey == "" || s.documents == nil {
		return "", fmt.Errorf("policy document not found: %w", domain.ErrNotFound)
	}
	return s.documents.SignedURL(ctx, p.DocumentKey, documentURLTTL)
}
