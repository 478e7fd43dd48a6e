package domain

// Scope is the identity a resource query is filtered by. Exactly one of
// UserID and Email is set.
type Scope struct {
	UserID string
	Email  string
}

// ByUser reports whether the scope came from a verified bearer token.
func (s Scope) ByUser() bool { return s.UserID != "" }
