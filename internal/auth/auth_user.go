package auth

import "taskhub/internal/model"

// AuthUser is the transient identity derived from a verified token. It is
// never persisted; it exists only for per-request authorization checks.
type AuthUser struct {
	ID    uint
	Email string
	Role  model.UserRole
}

// FromClaims rebuilds the request identity from validated claims.
func FromClaims(c *Claims) AuthUser {
	return AuthUser{
		ID:    c.UserID,
		Email: c.Email,
		Role:  c.Role,
	}
}
