package access

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/insurancepro-api/internal/domain"
	jwtinfra "github.com/insurancepro-api/internal/infrastructure/jwt"
)

type TokenVerifier interface {
	Verify(token string) (*jwtinfra.Claims, error)
}

// Resolver decides whose resources a request may read, given a bearer token
// and/or a bare email.
//
// A token that verifies always wins and the email is ignored. A token that
// fails verification degrades to the email when one is supplied. The email
// path is taken verbatim and proves nothing about its owner.
type Resolver struct {
	verifier TokenVerifier
}

func NewResolver(verifier TokenVerifier) *Resolver {
	return &Resolver{verifier: verifier}
}

func (r *Resolver) Resolve(token, email string) (domain.Scope, error) {
	token = strings.TrimSpace(token)
	if token == "" && email == "" {
		return domain.Scope{}, fmt.Errorf("token or email is required: %w", domain.ErrBadRequest)
	}

	if token != "" {
		claims, err := r.verifier.Verify(token)
		if err == nil {
			return domain.Scope{UserID: claims.UserID}, nil
		}
		slog.Debug("bearer token rejected", "err", err, "emailFallback", email != "")
		if email == "" {
			return domain.Scope{}, fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
		}
	}
	return domain.Scope{Email: email}, nil
}

// UserID returns the token subject when token verifies, and "" otherwise.
// Used where a token is optional and carries no fallback.
func (r *Resolver) UserID(token string) string {
	if token = strings.TrimSpace(token); token == "" {
		return ""
	}
	claims, err := r.verifier.Verify(token)
	if err != nil {
		return ""
	}
	return claims.UserID
}
