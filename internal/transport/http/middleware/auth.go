package middleware

import (
	"net/http"
	"strings"
)

// Token returns the bearer credential a request carries. An explicit value
// taken from the query string or body wins; otherwise the Authorization
// header is consulted. Verification is left to the caller.
func Token(r *http.Request, explicit string) string {
	if t := strings.TrimSpace(explicit); t != "" {
		return t
	}
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}
