package accounts

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the verified contents of a bearer token. The subject is
// always the account id the token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	UID string `json:"uid,omitempty"`
}

// AccountID parses the account id the token is bound to.
func (c *Claims) AccountID() (uuid.UUID, error) {
	id := c.UID
	if id == "" {
		id = c.RegisteredClaims.Subject
	}
	return uuid.Parse(id)
}

// Expires returns the expiration time, zero when absent.
func (c *Claims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAtTime returns the issuance time, zero when absent.
func (c *Claims) IssuedAtTime() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
