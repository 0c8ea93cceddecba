package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionPayload captures the data available when minting a session token.
// IsAdmin is a snapshot taken at issuance, not a live lookup.
type SessionPayload struct {
	UserID  uuid.UUID
	Email   string
	IsAdmin bool
}

// SessionClaims is the signed payload inside a session token. Validity is
// determined entirely by signature and expiry; nothing is persisted.
type SessionClaims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// UserID returns the subject parsed as a UUID, or uuid.Nil when absent or
// malformed.
func (c *SessionClaims) UserID() uuid.UUID {
	if c == nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil
	}
	return id
}
